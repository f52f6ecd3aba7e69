package container

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnregisteredType is matched (errors.Is) by every resolution of a
	// type that has no binding.
	ErrUnregisteredType = errors.New("container: unregistered type")

	// ErrBindingMismatch means the handle stored under a type's identity was
	// built for another type. Only reachable if identities are allocated
	// outside the container.
	ErrBindingMismatch = errors.New("container: binding does not match requested type")

	// ErrInvalidFunctor is returned when RegisterFunctor is given something
	// that is not a usable creation function.
	ErrInvalidFunctor = errors.New("container: invalid functor")

	// ErrInvalidConcrete is returned when RegisterFactory or
	// RegisterInstanceOf is given a concrete type that cannot be built or
	// does not implement the abstract type.
	ErrInvalidConcrete = errors.New("container: invalid concrete type")
)

// UnregisteredTypeError names the abstract type that had no binding.
type UnregisteredTypeError struct {
	Type reflect.Type
	ID   TypeID
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("container: no binding registered for [%s]", typeName(e.Type))
}

// Is makes errors.Is(err, ErrUnregisteredType) hold.
func (e *UnregisteredTypeError) Is(target error) bool {
	return target == ErrUnregisteredType
}

// IsUnregistered reports whether err (or anything it wraps) is a missing
// binding.
func IsUnregistered(err error) bool {
	return errors.Is(err, ErrUnregisteredType)
}

func bindingMismatch(want, got reflect.Type) error {
	return fmt.Errorf("%w: want %s, stored %s", ErrBindingMismatch, typeName(want), typeName(got))
}

// typeName is the package-qualified name used in errors and Bindings.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	if t.Kind() == reflect.Ptr {
		return "*" + typeName(t.Elem())
	}
	return t.String()
}
