package providers

import (
	"errors"
	"log/slog"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/metrics"
	"github.com/km-arc/go-ioc/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration.
//
// Bound abstracts:
//   - *config.Config (Config, or config.Load(EnvFiles...) when nil)
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Load(p.EnvFiles...)
	}
	container.RegisterInstance(app, cfg)
	return nil
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound abstracts:
//   - *slog.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *slog.Logger
}

var errNoLogger = errors.New("providers: LoggingServiceProvider needs a Logger")

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	if p.Logger == nil {
		return errNoLogger
	}
	container.RegisterInstance(app, p.Logger)
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. The router is built once,
// at registration, with the logger bound by LoggingServiceProvider.
//
// Bound abstracts:
//   - *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return container.RegisterInstanceOf[*routing.Router, routing.Router](app)
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider counts every resolution and exposes the counters on
// /metrics.
//
// Bound abstracts:
//   - *metrics.Resolver
type MetricsServiceProvider struct {
	container.BaseProvider
	Namespace string
	Path      string // default: "/metrics"
}

func (p *MetricsServiceProvider) Register(app *container.Container) error {
	container.RegisterInstance(app, metrics.New(p.Namespace))
	return nil
}

func (p *MetricsServiceProvider) Boot(app *container.Container) error {
	m, err := container.Resolve[*metrics.Resolver](app)
	if err != nil {
		return err
	}
	app.AfterResolving(m.ObserveResolve)

	router, err := container.Resolve[*routing.Router](app)
	if err != nil {
		return err
	}
	path := p.Path
	if path == "" {
		path = "/metrics"
	}
	router.Handle(path, m.Handler())
	return nil
}
