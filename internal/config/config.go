package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port string

	// Env is "dev" (default) or "prod". Prod switches the default log format to json.
	Env string

	// LogFormat is "console" or "json". LogLevel is any zap level name.
	LogFormat string
	LogLevel  string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// CORSAllowedOrigins is a list of origins allowed for CORS. "*" allows any origin.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). An explicitly empty value disables CORS.
	CORSAllowedOrigins []string

	// MaxBodyBytes caps request bodies on POST and PUT (default 1 MiB).
	MaxBodyBytes int64

	// RateLimitPerMinute is the per-IP request budget. 0 disables rate limiting.
	RateLimitPerMinute int
	RateLimitBurst     int

	// AuditCapacity is the number of audit entries kept in memory.
	AuditCapacity int

	ShutdownTimeout time.Duration
}

// TLSEnabled reports whether both TLS files are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Load reads an optional env file (ENV_FILE, or .env in the working directory)
// and then the process environment.
func Load() (Config, error) {
	if f := os.Getenv("ENV_FILE"); f != "" {
		if err := godotenv.Load(f); err != nil {
			return Config{}, errors.Wrapf(err, "load env file %s", f)
		}
	} else {
		// A missing .env is fine; configuration may come from the environment alone.
		_ = godotenv.Load()
	}

	env := getEnv("ENV", "dev")
	defaultFormat := "console"
	if env == "prod" {
		defaultFormat = "json"
	}

	cfg := Config{
		Port: getEnv("PORT", "8080"),
		Env:  env,

		LogFormat: getEnv("LOG_FORMAT", defaultFormat),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		CORSAllowedOrigins: parseCORSOrigins(getEnvAllowEmpty("CORS_ALLOWED_ORIGINS", "*")),

		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),

		RateLimitPerMinute: getEnvIntAllowZero("RATE_LIMIT_PER_MINUTE", 0),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),

		AuditCapacity: getEnvIntAllowZero("AUDIT_CAPACITY", 1000),

		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("PORT must not be empty")
	case c.Env != "dev" && c.Env != "prod":
		return errors.Errorf("ENV must be dev or prod, got %q", c.Env)
	case c.LogFormat != "console" && c.LogFormat != "json":
		return errors.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	case (c.TLSCertFile == "") != (c.TLSKeyFile == ""):
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	case c.AuditCapacity <= 0:
		return errors.New("AUDIT_CAPACITY must be positive")
	case c.RateLimitPerMinute < 0:
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// getEnvIntAllowZero is getEnvInt without the positivity filter, so Validate sees bad values.
func getEnvIntAllowZero(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAllowEmpty returns fallback only when key is unset, so an empty value can switch a feature off.
func getEnvAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
