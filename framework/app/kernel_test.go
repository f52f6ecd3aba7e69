package app_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appproviders "github.com/km-arc/go-ioc/app/providers"
	"github.com/km-arc/go-ioc/framework/app"
	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "Bench", Env: "testing", Port: "0"},
		Container: config.ContainerConfig{TypeIDBase: 1000},
		Log:       config.LogConfig{Level: "debug", Format: "text"},
	}
}

func TestNewWithConfig_Wiring(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig()
	a, err := app.NewWithConfig(cfg, &logs)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}

	if a.TypeIDs().Base() != 1000 {
		t.Errorf("allocator base: got %d", a.TypeIDs().Base())
	}
	if got, ok := a.TypeIDs().Type(1000); !ok || got != container.TypeOf[*container.Container]() {
		t.Errorf("first identity should be the container itself, got %v", got)
	}
	if container.MustResolve[*config.Config](a.Container) != cfg {
		t.Error("config should be bound")
	}
	if _, err := a.Router(); err != nil {
		t.Errorf("Router: %v", err)
	}
	if _, err := container.Resolve[*metrics.Resolver](a.Container); err != nil {
		t.Errorf("metrics: %v", err)
	}
	if !strings.Contains(logs.String(), "container: binding registered") {
		t.Errorf("debug registration logs missing:\n%s", logs.String())
	}
	if a.Environment() != "testing" || a.IsDebug() {
		t.Errorf("environment helpers: env %q, debug %v", a.Environment(), a.IsDebug())
	}
}

func TestBoot_ProfilerOnlyInDebug(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  int
	}{
		{"debug", true, http.StatusOK},
		{"not debug", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.App.Debug = tt.debug
			a, err := app.NewWithConfig(cfg, io.Discard)
			if err != nil {
				t.Fatalf("NewWithConfig: %v", err)
			}
			if err := a.Boot(); err != nil {
				t.Fatalf("Boot: %v", err)
			}
			// A second Boot must not mount twice.
			if err := a.Boot(); err != nil {
				t.Fatalf("second Boot: %v", err)
			}
			router, err := a.Router()
			if err != nil {
				t.Fatalf("Router: %v", err)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
			if rec.Code != tt.want {
				t.Errorf("GET /debug/pprof/: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body)
}

func TestServe_GracefulShutdown(t *testing.T) {
	a, err := app.NewWithConfig(testConfig(), io.Discard)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if err := a.Register(&appproviders.HardwareServiceProvider{}); err != nil {
		t.Fatal(err)
	}
	if err := a.Register(&appproviders.RouteServiceProvider{}); err != nil {
		t.Fatal(err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	status, body := get(t, base+"/computer")
	if status != http.StatusOK || !strings.Contains(body, "Ryzen7") {
		t.Errorf("GET /computer: %d %s", status, body)
	}
	status, body = get(t, base+"/metrics")
	if status != http.StatusOK || !strings.Contains(body, `bench_container_resolves_total`) {
		t.Errorf("GET /metrics: %d", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
