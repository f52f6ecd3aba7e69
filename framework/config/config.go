package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the typed configuration of the application and its container.
type Config struct {
	App       AppConfig
	Container ContainerConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
	Serve bool // start the HTTP API after the demo
}

// ContainerConfig tunes the type identity allocator of the application
// container.
type ContainerConfig struct {
	TypeIDBase int
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
}

// DefaultTypeIDBase is the first type identity handed out by the
// application container.
const DefaultTypeIDBase = 115094801

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	appEnv := env("APP_ENV", "local")
	format := "text"
	if appEnv == "production" {
		format = "json"
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoIoC"),
			Env:   appEnv,
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
			Serve: envBool("APP_SERVE", false),
		},
		Container: ContainerConfig{
			TypeIDBase: GetInt("IOC_TYPE_ID_BASE", DefaultTypeIDBase),
		},
		Log: LogConfig{
			Level:  strings.ToLower(env("LOG_LEVEL", "info")),
			Format: strings.ToLower(env("LOG_FORMAT", format)),
		},
	}
}

// Addr is the listen address for the HTTP API.
func (c *Config) Addr() string {
	return ":" + c.App.Port
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
