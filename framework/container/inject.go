package container

import (
	"fmt"
	"reflect"
)

// TagKey is the struct tag read by RegisterFactory and RegisterInstanceOf.
// A field tagged `ioc:"inject"` is a dependency.
const TagKey = "ioc"

const injectTag = "inject"

// Initializer is implemented by concrete types that need to finish
// construction after their fields are injected. An Init error fails the
// Resolve (or RegisterInstanceOf) that built the value.
type Initializer interface {
	Init() error
}

// builder constructs C values for abstract type I.
type builder[I any] struct {
	concrete reflect.Type
	pointer  bool // *C implements I, otherwise C does
	fields   []int
	deps     []reflect.Type
}

func newBuilder[I, C any]() (*builder[I], error) {
	abstract := TypeOf[I]()
	concrete := TypeOf[C]()

	if concrete.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidConcrete, concrete)
	}

	b := &builder[I]{concrete: concrete}
	switch {
	case reflect.PointerTo(concrete).AssignableTo(abstract):
		b.pointer = true
	case concrete.AssignableTo(abstract):
	default:
		return nil, fmt.Errorf("%w: neither %s nor *%s implements %s",
			ErrInvalidConcrete, concrete, concrete, typeName(abstract))
	}

	for i := 0; i < concrete.NumField(); i++ {
		field := concrete.Field(i)
		if field.Tag.Get(TagKey) != injectTag {
			continue
		}
		if !field.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s is tagged for injection but unexported",
				ErrInvalidConcrete, concrete, field.Name)
		}
		b.fields = append(b.fields, i)
		b.deps = append(b.deps, field.Type)
	}

	return b, nil
}

// checkDistinct rejects concretes whose fresh values cannot be told apart.
func (b *builder[I]) checkDistinct() error {
	if b.concrete.Size() == 0 {
		return fmt.Errorf("%w: %s has zero size; every new value would share one address",
			ErrInvalidConcrete, b.concrete)
	}
	return nil
}

// build makes one value: allocate, inject fields left to right, Init.
func (b *builder[I]) build(c *Container) (I, error) {
	var zero I

	args, err := c.resolveAll(b.deps)
	if err != nil {
		return zero, err
	}

	ptr := reflect.New(b.concrete)
	for i, index := range b.fields {
		ptr.Elem().Field(index).Set(args[i])
	}

	obj := ptr
	if !b.pointer {
		obj = ptr.Elem()
	}

	if initializer, ok := obj.Interface().(Initializer); ok {
		if err := initializer.Init(); err != nil {
			return zero, err
		}
	}

	return as[I](obj), nil
}
