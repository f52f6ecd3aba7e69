package container

import "reflect"

// factoryRoot is the erased handle the container stores per TypeID. Every
// handle stored under TypeOf[T]'s identity is a *typedFactory[T] (or a
// deferredFactory placeholder for it); Resolve relies on that and reports
// ErrBindingMismatch if it is ever broken.
type factoryRoot interface {
	// produces is the abstract type this factory was registered for.
	produces() reflect.Type

	// produceAny runs the factory and returns the value boxed as any.
	produceAny() (any, error)

	// dependencies lists the declared dependency types in resolution order.
	dependencies() []reflect.Type
}

// typedFactory wraps a creation function for T.
type typedFactory[T any] struct {
	functor  func() (T, error)
	deps     []reflect.Type
	instance bool
}

func newTypedFactory[T any](functor func() (T, error), deps []reflect.Type) *typedFactory[T] {
	return &typedFactory[T]{functor: functor, deps: deps}
}

// newInstanceFactory closes over obj; every produce returns the same value.
func newInstanceFactory[T any](obj T) *typedFactory[T] {
	return &typedFactory[T]{
		functor:  func() (T, error) { return obj, nil },
		instance: true,
	}
}

func (f *typedFactory[T]) produce() (T, error) { return f.functor() }

func (f *typedFactory[T]) produces() reflect.Type { return TypeOf[T]() }

func (f *typedFactory[T]) produceAny() (any, error) {
	v, err := f.functor()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (f *typedFactory[T]) dependencies() []reflect.Type { return f.deps }

// deferredFactory stands in for a type provided by a deferred ServiceProvider.
// The container calls load on first lookup, passing itself; load is expected
// to replace this placeholder with a real binding.
type deferredFactory struct {
	abstract reflect.Type
	loader   *loader
	load     func(via *Container) error
}

func (f *deferredFactory) produces() reflect.Type { return f.abstract }

// produceAny is never reached: lookup swaps the placeholder out first.
func (f *deferredFactory) produceAny() (any, error) {
	return nil, &UnregisteredTypeError{Type: f.abstract}
}

func (f *deferredFactory) dependencies() []reflect.Type { return nil }
