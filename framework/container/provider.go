package container

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register binds services into the container. Boot runs after every eager
// provider has registered, so it may resolve anything.
//
//	type HardwareProvider struct{ container.BaseProvider }
//
//	func (p *HardwareProvider) Register(app *container.Container) error {
//	    return container.RegisterFactory[hardware.Processor, hardware.AMDProcessor](app)
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here; use Boot for that.
	Register(app *Container) error

	// Boot is called after all providers are registered.
	Boot(app *Container) error

	// Provides lists the abstract types this provider binds. Only consulted
	// for deferred providers.
	Provides() []reflect.Type

	// IsDeferred makes the provider lazy: Register runs on the first
	// resolution of one of its Provides types.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable no-op implementation of Boot, Provides and
// IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error  { return nil }
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) ones. Deferred providers may be loaded from
// concurrent resolutions; each loads exactly once.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	deferred   map[reflect.Type]ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
	loaders    map[ServiceProvider]*loader
}

type loader struct {
	once sync.Once
	err  error
	done atomic.Bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[reflect.Type]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
		loaders:    make(map[ServiceProvider]*loader),
	}
}

// Register adds a provider. Eager providers register immediately (and boot
// immediately if the registry is already booted); deferred providers leave a
// placeholder binding for each type they provide. Registering the same
// provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		l := &loader{}
		r.loaders[provider] = l
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
		}
		r.mu.Unlock()

		for _, abstract := range provider.Provides() {
			r.app.store(abstract, &deferredFactory{
				abstract: abstract,
				loader:   l,
				load:     func(via *Container) error { return r.load(provider, l, via) },
			})
		}
		return nil
	}
	r.mu.Unlock()

	return r.activate(provider, r.app)
}

// load registers a deferred provider for real. Concurrent callers wait for
// the first one and share its error. The provider sees a view of the
// container that knows it is loading, so a Register that resolves one of
// the provider's own types before binding it gets an UnregisteredTypeError
// instead of waiting on itself.
func (r *ProviderRegistry) load(provider ServiceProvider, l *loader, via *Container) error {
	l.once.Do(func() {
		defer l.done.Store(true)
		r.mu.Lock()
		for abstract, p := range r.deferred {
			if p == provider {
				delete(r.deferred, abstract)
			}
		}
		r.mu.Unlock()
		l.err = r.activate(provider, via.loadingWith(l))
	})
	return l.err
}

func (r *ProviderRegistry) activate(provider ServiceProvider, app *Container) error {
	if err := provider.Register(app); err != nil {
		return fmt.Errorf("container: register %T: %w", provider, err)
	}

	r.mu.Lock()
	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	if booted {
		if err := provider.Boot(app); err != nil {
			return fmt.Errorf("container: boot %T: %w", provider, err)
		}
	}
	return nil
}

// Boot calls Boot on every registered provider, once. Providers registered
// (or loaded) later are booted as they arrive.
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	providers := slices.Clone(r.eager)
	r.mu.Unlock()

	for _, provider := range providers {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("container: boot %T: %w", provider, err)
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns every provider that has registered its bindings.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.eager)
}

// Deferred returns the types still waiting on a deferred provider.
func (r *ProviderRegistry) Deferred() []reflect.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reflect.Type, 0, len(r.deferred))
	for abstract := range r.deferred {
		out = append(out, abstract)
	}
	return out
}
