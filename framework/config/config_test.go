package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/km-arc/go-ioc/framework/config"
)

var keys = []string{
	"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_PORT", "APP_SERVE",
	"IOC_TYPE_ID_BASE", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets every key for the duration of the test. t.Setenv restores
// the previous value afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.App.Name != "GoIoC" || cfg.App.Env != "local" || !cfg.App.Debug {
		t.Errorf("app defaults: %+v", cfg.App)
	}
	if cfg.App.Port != "8000" || cfg.Addr() != ":8000" {
		t.Errorf("port: %q / %q", cfg.App.Port, cfg.Addr())
	}
	if cfg.App.Serve {
		t.Error("Serve should default to false")
	}
	if cfg.Container.TypeIDBase != config.DefaultTypeIDBase {
		t.Errorf("TypeIDBase: got %d", cfg.Container.TypeIDBase)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults: %+v", cfg.Log)
	}
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	body := "APP_NAME=Workshop\nAPP_PORT=9090\nAPP_SERVE=true\nIOC_TYPE_ID_BASE=1000\nLOG_LEVEL=DEBUG\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv.Load sets real env vars; make sure they are removed afterwards.
	for _, k := range keys {
		k := k
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	cfg := config.Load(path)

	if cfg.App.Name != "Workshop" || cfg.App.Port != "9090" || !cfg.App.Serve {
		t.Errorf("app: %+v", cfg.App)
	}
	if cfg.Container.TypeIDBase != 1000 {
		t.Errorf("TypeIDBase: got %d", cfg.Container.TypeIDBase)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level should be lower-cased: %q", cfg.Log.Level)
	}
}

func TestLoad_ProductionDefaultsToJSON(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.Log.Format != "json" {
		t.Errorf("Format: got %q, want json", cfg.Log.Format)
	}

	t.Setenv("LOG_FORMAT", "text")
	if cfg := config.Load(filepath.Join(t.TempDir(), "missing.env")); cfg.Log.Format != "text" {
		t.Errorf("explicit LOG_FORMAT should win, got %q", cfg.Log.Format)
	}
}

func TestHelpers(t *testing.T) {
	t.Setenv("IOC_TEST_STR", "v")
	t.Setenv("IOC_TEST_INT", "42")
	t.Setenv("IOC_TEST_BAD_INT", "forty")
	t.Setenv("IOC_TEST_BOOL", "true")
	t.Setenv("IOC_TEST_BAD_BOOL", "maybe")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Get set", config.Get("IOC_TEST_STR", "d"), "v"},
		{"Get fallback", config.Get("IOC_TEST_UNSET", "d"), "d"},
		{"GetInt set", config.GetInt("IOC_TEST_INT", 1), 42},
		{"GetInt malformed", config.GetInt("IOC_TEST_BAD_INT", 1), 1},
		{"GetBool set", config.GetBool("IOC_TEST_BOOL", false), true},
		{"GetBool malformed", config.GetBool("IOC_TEST_BAD_BOOL", false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
