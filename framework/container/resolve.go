package container

import (
	"fmt"
	"reflect"
	"time"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// resolveAll resolves deps in order and stops at the first failure, returning
// that error as-is.
func (c *Container) resolveAll(deps []reflect.Type) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(deps))
	for i, dep := range deps {
		v, err := c.resolveType(dep)
		if err != nil {
			return nil, err
		}
		args[i] = valueOf(dep, v)
	}
	return args, nil
}

// resolveType is Resolve for a type known only at run time.
func (c *Container) resolveType(abstract reflect.Type) (any, error) {
	start := time.Now()

	v, err := c.produce(abstract)

	c.fireAfterResolving(abstract, time.Since(start), err)
	return v, err
}

func (c *Container) produce(abstract reflect.Type) (any, error) {
	f, err := c.lookup(abstract)
	if err != nil {
		return nil, err
	}
	if got := f.produces(); got != abstract {
		return nil, bindingMismatch(abstract, got)
	}
	return f.produceAny()
}

// ── Functors ──────────────────────────────────────────────────────────────────

type functor struct {
	fn       reflect.Value
	deps     []reflect.Type
	hasError bool
}

// inspectFunctor validates a creation function for abstract and records its
// parameter types as the dependency list.
func inspectFunctor(fn any, abstract reflect.Type) (*functor, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidFunctor)
	}
	val := reflect.ValueOf(fn)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %s is not a function", ErrInvalidFunctor, typ)
	}
	if val.IsNil() {
		return nil, fmt.Errorf("%w: nil %s", ErrInvalidFunctor, typ)
	}
	if typ.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic %s", ErrInvalidFunctor, typ)
	}
	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return nil, fmt.Errorf("%w: %s must return (T) or (T, error)", ErrInvalidFunctor, typ)
	}
	if typ.NumOut() == 2 && typ.Out(1) != errorType {
		return nil, fmt.Errorf("%w: second result of %s must be error", ErrInvalidFunctor, typ)
	}
	if !typ.Out(0).AssignableTo(abstract) {
		return nil, fmt.Errorf("%w: %s returns %s, not assignable to %s",
			ErrInvalidFunctor, typ, typ.Out(0), typeName(abstract))
	}

	deps := make([]reflect.Type, typ.NumIn())
	for i := range deps {
		deps[i] = typ.In(i)
	}

	return &functor{fn: val, deps: deps, hasError: typ.NumOut() == 2}, nil
}

func (f *functor) call(args []reflect.Value) (reflect.Value, error) {
	results := f.fn.Call(args)
	if f.hasError && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	return results[0], nil
}

// ── Value plumbing ────────────────────────────────────────────────────────────

// valueOf boxes a resolved value as a reflect.Value of exactly type t, so a
// nil interface still produces a usable zero argument.
func valueOf(t reflect.Type, v any) reflect.Value {
	rv := reflect.New(t).Elem()
	if v != nil {
		rv.Set(reflect.ValueOf(v))
	}
	return rv
}

// as converts v to T. v must be assignable to T.
func as[T any](v reflect.Value) T {
	var out T
	if v.IsValid() {
		reflect.ValueOf(&out).Elem().Set(v)
	}
	return out
}
