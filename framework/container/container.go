package container

import (
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"sync"
	"time"
)

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger sets the logger used for registration events. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTypeIDs scopes the container's type identities to a. Containers built
// without it share the process-wide allocator.
func WithTypeIDs(a *TypeIDAllocator) Option {
	return func(c *Container) {
		if a != nil {
			c.ids = a
		}
	}
}

// ResolveHook observes a finished resolution of abstract. err is nil on
// success.
type ResolveHook func(abstract reflect.Type, elapsed time.Duration, err error)

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps abstract types to creation strategies.
//
// It supports:
//   - RegisterInstance: one pre-built value for every Resolve (singleton)
//   - RegisterInstanceOf: build once now, then behave as RegisterInstance
//   - RegisterFactory: a fresh value per Resolve, fields injected by tag
//   - RegisterFunctor: a creation function whose parameters are dependencies
//   - Resolve / MustResolve (generic)
//
// There is one binding per abstract type; registering again replaces it.
// Resolution is synchronous and recursive; dependency cycles are not
// detected.
type Container struct {
	*state

	// deferred loads in progress on this call path; see ProviderRegistry
	loading []*loader
}

// state is shared by a container and the views handed to deferred providers
// while they load.
type state struct {
	mu sync.RWMutex

	ids *TypeIDAllocator

	// type identity → binding
	bindings map[TypeID]factoryRoot

	afterResolving []ResolveHook

	logger *slog.Logger
}

// New creates a container holding a single binding: itself, as *Container.
func New(opts ...Option) *Container {
	c := &Container{state: &state{
		ids:      processTypeIDs,
		bindings: make(map[TypeID]factoryRoot),
		logger:   slog.Default(),
	}}
	for _, opt := range opts {
		opt(c)
	}
	RegisterInstance(c, c)
	return c
}

// loadingWith returns a view of c that also records l as loading.
func (c *Container) loadingWith(l *loader) *Container {
	return &Container{state: c.state, loading: append(slices.Clone(c.loading), l)}
}

// isLoading reports whether l is still loading further up this call path.
func (c *Container) isLoading(l *loader) bool {
	for _, x := range c.loading {
		if x == l && !l.done.Load() {
			return true
		}
	}
	return false
}

// TypeIDs returns the allocator the container keys its bindings with.
func (c *Container) TypeIDs() *TypeIDAllocator { return c.ids }

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterInstance binds I to obj. Every Resolve[I] returns obj itself.
//
//	amd := &hardware.AMDProcessor{}
//	container.RegisterInstance[hardware.Processor](c, amd)
func RegisterInstance[I any](c *Container, obj I) {
	c.store(TypeOf[I](), newInstanceFactory(obj))
}

// RegisterFunctor binds I to a creation function. functor must have the
// shape func(D1, ..., Dn) I or func(D1, ..., Dn) (I, error). On every
// Resolve[I] the parameters are resolved left to right from c and functor is
// called with them; an error it returns is passed through unchanged.
//
//	container.RegisterFunctor[*hardware.Computer](c, hardware.NewComputer)
func RegisterFunctor[I any](c *Container, functor any) error {
	abstract := TypeOf[I]()
	fn, err := inspectFunctor(functor, abstract)
	if err != nil {
		return err
	}
	for _, dep := range fn.deps {
		c.ids.Of(dep)
	}

	c.store(abstract, newTypedFactory(func() (I, error) {
		var zero I
		args, err := c.resolveAll(fn.deps)
		if err != nil {
			return zero, err
		}
		out, err := fn.call(args)
		if err != nil {
			return zero, err
		}
		return as[I](out), nil
	}, fn.deps))
	return nil
}

// RegisterFactory binds I to the struct type C. Every Resolve[I] allocates
// a new C, resolves its `ioc:"inject"` fields in declaration order and calls
// Init if C implements Initializer. *C (or C) must implement I, and C must
// have at least one byte of state: Go gives every zero-size allocation the
// same address, so a factory of struct{} could not hand out distinct objects.
//
//	container.RegisterFactory[hardware.Processor, hardware.IntelProcessor](c)
func RegisterFactory[I, C any](c *Container) error {
	b, err := newBuilder[I, C]()
	if err != nil {
		return err
	}
	if err := b.checkDistinct(); err != nil {
		return err
	}
	for _, dep := range b.deps {
		c.ids.Of(dep)
	}

	c.store(TypeOf[I](), newTypedFactory(func() (I, error) {
		return b.build(c)
	}, b.deps))
	return nil
}

// RegisterInstanceOf builds one C right away (resolving its dependencies
// once) and binds I to that single value, as RegisterInstance does.
//
//	container.RegisterInstanceOf[hardware.Processor, hardware.IntelProcessor](c)
func RegisterInstanceOf[I, C any](c *Container) error {
	b, err := newBuilder[I, C]()
	if err != nil {
		return err
	}
	obj, err := b.build(c)
	if err != nil {
		return err
	}
	RegisterInstance(c, obj)
	return nil
}

// store is the single write path; every caller passes the factory built for
// the same type it passes as t.
func (c *Container) store(t reflect.Type, f factoryRoot) {
	id := c.ids.Of(t)

	c.mu.Lock()
	_, replaced := c.bindings[id]
	c.bindings[id] = f
	c.mu.Unlock()

	if replaced {
		c.logger.Debug("container: binding replaced", "type", typeName(t), "id", int(id))
		return
	}
	c.logger.Debug("container: binding registered", "type", typeName(t), "id", int(id))
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns a value for I from its binding.
//
//	cpu, err := container.Resolve[hardware.Processor](c)
//
// A type that was never registered yields an *UnregisteredTypeError.
func Resolve[I any](c *Container) (I, error) {
	abstract := TypeOf[I]()
	start := time.Now()

	v, err := resolveTyped[I](c, abstract)

	c.fireAfterResolving(abstract, time.Since(start), err)
	return v, err
}

func resolveTyped[I any](c *Container, abstract reflect.Type) (I, error) {
	var zero I
	f, err := c.lookup(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := f.(*typedFactory[I])
	if !ok {
		return zero, bindingMismatch(abstract, f.produces())
	}
	return typed.produce()
}

// MustResolve is like Resolve but panics on error.
func MustResolve[I any](c *Container) I {
	v, err := Resolve[I](c)
	if err != nil {
		panic(err)
	}
	return v
}

// lookup finds the binding for t, loading a deferred provider first if the
// binding is still a placeholder.
func (c *Container) lookup(t reflect.Type) (factoryRoot, error) {
	id := c.ids.Of(t)

	c.mu.RLock()
	f, ok := c.bindings[id]
	c.mu.RUnlock()

	if !ok {
		return nil, &UnregisteredTypeError{Type: t, ID: id}
	}

	d, isDeferred := f.(*deferredFactory)
	if !isDeferred {
		return f, nil
	}
	// The provider's own Register is asking for a type it has not bound yet.
	if c.isLoading(d.loader) {
		return nil, &UnregisteredTypeError{Type: t, ID: id}
	}
	if err := d.load(c); err != nil {
		return nil, err
	}

	c.mu.RLock()
	f, ok = c.bindings[id]
	c.mu.RUnlock()

	if _, still := f.(*deferredFactory); !ok || still {
		return nil, &UnregisteredTypeError{Type: t, ID: id}
	}
	return f, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether I has a binding (deferred bindings count).
func Bound[I any](c *Container) bool {
	id := c.ids.Of(TypeOf[I]())
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[id]
	return ok
}

// Forget removes the binding for I. Values already resolved stay valid.
func Forget[I any](c *Container) {
	id := c.ids.Of(TypeOf[I]())
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, id)
}

// Flush removes every binding, including the container's own.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[TypeID]factoryRoot)
}

// Bindings returns the sorted names of every bound type (for debugging).
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings))
	for _, f := range c.bindings {
		out = append(out, typeName(f.produces()))
	}
	sort.Strings(out)
	return out
}

// Dependencies returns the declared dependency types of I's binding, in
// resolution order. Instances and unbound types have none.
func Dependencies[I any](c *Container) []reflect.Type {
	id := c.ids.Of(TypeOf[I]())
	c.mu.RLock()
	f, ok := c.bindings[id]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	deps := f.dependencies()
	out := make([]reflect.Type, len(deps))
	copy(out, deps)
	return out
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a hook fired after every resolution, including
// the nested ones made for dependencies.
func (c *Container) AfterResolving(hook ResolveHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, hook)
}

func (c *Container) fireAfterResolving(abstract reflect.Type, elapsed time.Duration, err error) {
	c.mu.RLock()
	hooks := c.afterResolving
	c.mu.RUnlock()
	for _, hook := range hooks {
		hook(abstract, elapsed, err)
	}
}
