// Package container provides a small type-keyed IoC (Inversion of Control)
// container and a Service Provider system for Go.
//
// # Overview
//
// The container maps an abstract type (usually an interface) to one creation
// strategy. Each abstract type gets a dense integer identity (TypeID) the
// first time it is referenced; bindings are stored under that identity.
// There is exactly one binding per abstract type, and registering again
// replaces it.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot() (safe to resolve everything after this)
//  4. Resolve what you need
//
// # Bindings
//
//	// Pre-built value, the same object on every Resolve
//	container.RegisterInstance[hardware.Processor](c, amd)
//
//	// Built once, now, from its dependencies; then as above
//	container.RegisterInstanceOf[hardware.Processor, hardware.IntelProcessor](c)
//
//	// A new value per Resolve, `ioc:"inject"` fields resolved each time
//	container.RegisterFactory[hardware.Processor, hardware.AMDProcessor](c)
//
//	// A creation function; its parameters are the dependencies
//	container.RegisterFunctor[*hardware.Computer](c, hardware.NewComputer)
//
// Dependencies are resolved from the same container, left to right, every
// time the binding runs. There is no cycle detection: a binding that
// (indirectly) depends on itself recurses until the stack is exhausted.
//
// # Resolving
//
//	cpu, err := container.Resolve[hardware.Processor](c)
//	if container.IsUnregistered(err) {
//	    // nothing was bound for hardware.Processor
//	}
//
//	// Panicking variant for wiring code
//	pc := container.MustResolve[*hardware.Computer](c)
//
// Errors returned by a creation function or by Initializer.Init reach the
// caller of Resolve unchanged.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return container.RegisterFunctor[*Mailer](app, NewMailer)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool { return true }
//	func (p *HeavyProvider) Provides() []reflect.Type {
//	    return []reflect.Type{container.TypeOf[*Heavy]()}
//	}
//
// Register on a deferred provider runs on the first Resolve of a type it
// provides.
//
// # Concurrency
//
// Registration and resolution may run on several goroutines. A deferred
// provider loads once even when its types are first resolved concurrently.
// While it loads, its Register sees the placeholders for its own types as
// unregistered, so resolving one of them before binding it is an error
// rather than a wait. The values a binding produces get no synchronization
// from the container.
package container
