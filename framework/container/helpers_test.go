package container_test

import (
	"errors"
	"testing"

	"github.com/km-arc/go-ioc/framework/container"
)

// Shared test types and constructors used across test files.

type greeter interface {
	Greet() string
}

type englishGreeter struct{ Name string }

func (g *englishGreeter) Greet() string { return "hello" }

type spanishGreeter struct{ Name string }

func (g *spanishGreeter) Greet() string { return "hola" }

// silentGreeter has no state; every *silentGreeter may share one address.
type silentGreeter struct{}

func (silentGreeter) Greet() string { return "" }

type testConfig struct{ DSN string }
type testLogger struct{ Prefix string }

type testDatabase struct {
	Config *testConfig
	Logger *testLogger
}

// testRepo is built by RegisterFactory; its tagged fields are dependencies.
type testRepo struct {
	DB      *testDatabase `ioc:"inject"`
	Logger  *testLogger   `ioc:"inject"`
	Comment string
}

func (r *testRepo) Greet() string { return "repo:" + r.Logger.Prefix }

// initRepo fails construction from Init.
type initRepo struct {
	Logger *testLogger `ioc:"inject"`
	ready  bool
}

var errInitFailed = errors.New("init failed")

func (r *initRepo) Greet() string { return "init" }

func (r *initRepo) Init() error {
	if r.Logger.Prefix == "" {
		return errInitFailed
	}
	r.ready = true
	return nil
}

// endpoint is registered by value: RegisterFactory[endpoint, endpoint].
type endpoint struct {
	Logger *testLogger `ioc:"inject"`
	URL    string
}

type hiddenDependency struct {
	logger *testLogger `ioc:"inject"`
}

func (h *hiddenDependency) Greet() string { return "" }

func newTestLogger() *testLogger { return &testLogger{Prefix: "app"} }
func newTestConfig() *testConfig { return &testConfig{DSN: "postgres://localhost"} }

func newTestDatabase(cfg *testConfig, log *testLogger) *testDatabase {
	return &testDatabase{Config: cfg, Logger: log}
}

// mustRegisterFunctor calls t.Fatal if registration fails.
func mustRegisterFunctor[I any](t *testing.T, c *container.Container, functor any) {
	t.Helper()
	if err := container.RegisterFunctor[I](c, functor); err != nil {
		t.Fatalf("RegisterFunctor: %v", err)
	}
}

// mustRegisterFactory calls t.Fatal if registration fails.
func mustRegisterFactory[I, C any](t *testing.T, c *container.Container) {
	t.Helper()
	if err := container.RegisterFactory[I, C](c); err != nil {
		t.Fatalf("RegisterFactory: %v", err)
	}
}

// isolated returns a container with its own identity space.
func isolated() *container.Container {
	return container.New(container.WithTypeIDs(container.NewTypeIDAllocator(0)))
}
