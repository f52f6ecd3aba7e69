package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/logging"
	"github.com/km-arc/go-ioc/framework/providers"
	"github.com/km-arc/go-ioc/framework/routing"
)

const shutdownTimeout = 10 * time.Second

// Application is the top-level application container. It embeds the IoC
// Container so user code can call the container helpers on it directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	config *config.Config
	logger *slog.Logger
}

// New loads the configuration from envFiles and the environment, then
// creates the application logging to stderr.
func New(envFiles ...string) (*Application, error) {
	return NewWithConfig(config.Load(envFiles...), os.Stderr)
}

// NewWithConfig creates the application from cfg. Type identities start at
// cfg.Container.TypeIDBase and logs go to logOut.
func NewWithConfig(cfg *config.Config, logOut io.Writer) (*Application, error) {
	ids := container.NewTypeIDAllocator(container.TypeID(cfg.Container.TypeIDBase))
	log := logging.New(cfg.Log, logOut)

	c := container.New(container.WithLogger(log), container.WithTypeIDs(ids))
	a := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		config:    cfg,
		logger:    log,
	}

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: log},
		&providers.RoutingServiceProvider{},
		&providers.MetricsServiceProvider{Namespace: cfg.App.Name},
	} {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers. With APP_DEBUG set it also
// mounts the runtime profiler under /debug.
func (a *Application) Boot() error {
	if a.Providers.Booted() {
		return nil
	}
	if err := a.Providers.Boot(); err != nil {
		return err
	}
	if !a.IsDebug() {
		return nil
	}
	router, err := a.Router()
	if err != nil {
		return err
	}
	router.Mount("/debug", middleware.Profiler())
	a.logger.Debug("http: profiler mounted", "path", "/debug/pprof/")
	return nil
}

// Config returns the configuration the application was built with.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Router resolves the HTTP router.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container)
}

// Run boots the application (if needed) and serves HTTP on the configured
// port until ctx is done, then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.config.Addr())
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener. It closes ln.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if err := a.Boot(); err != nil {
		ln.Close()
		return err
	}
	router, err := a.Router()
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("http: serving",
			"app", a.config.App.Name, "env", a.Environment(), "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		a.logger.Info("http: shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }

// IsDebug reports whether APP_DEBUG is set.
func (a *Application) IsDebug() bool { return a.config.App.Debug }
