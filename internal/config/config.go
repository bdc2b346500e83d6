// Package config loads the service configuration from the environment.
//
// Variables are read once at startup (a `.env` file is honoured), mapped
// into the Config struct with koanf, completed with defaults and validated
// so the process fails fast on a bad setup.
//
// Two spellings are accepted:
//   - the legacy unprefixed variables PORT, MLAB_URI and DB_NAME;
//   - prefixed, dot-nested variables such as TRACKER_STORE.DRIVER or
//     TRACKER_SERVER.PORT. A prefixed variable wins over its legacy twin.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TRACKER_"

// Supported store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// legacyKeys maps the unprefixed variables of earlier deployments onto koanf keys.
var legacyKeys = map[string]string{
	"PORT":     "server.port",
	"MLAB_URI": "store.uri",
	"DB_NAME":  "store.database",
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because the whole block is optional; defaults
// are injected when it is missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Events        EventsConfig         `koanf:"events"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds. A RateLimit of zero disables request throttling.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	RateLimit          float64  `koanf:"rate_limit" validate:"min=0"`
}

// StoreConfig selects and configures the backing store.
//
// URI is a mongodb:// or postgres:// connection string depending on Driver.
// Database names the mongo database; postgres takes it from the URI.
type StoreConfig struct {
	Driver         string        `koanf:"driver" validate:"required,oneof=mongo postgres memory"`
	URI            string        `koanf:"uri" validate:"required_unless=Driver memory"`
	Database       string        `koanf:"database" validate:"required_if=Driver mongo"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"min=1s"`
	MaxConns       int32         `koanf:"max_conns" validate:"min=0"`
}

// EventsConfig configures the Kafka publisher. No brokers means events are
// dropped silently.
type EventsConfig struct {
	Brokers     []string `koanf:"brokers"`
	TopicPrefix string   `koanf:"topic_prefix"`
}

// Enabled reports whether at least one broker is configured.
func (e EventsConfig) Enabled() bool {
	return len(e.Brokers) > 0
}

// LoadConfig reads the environment into a validated Config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	legacy := env.Provider("", ".", func(s string) string {
		// An empty key tells the provider to skip the variable.
		return legacyKeys[s]
	})
	if err := k.Load(legacy, nil); err != nil {
		return nil, fmt.Errorf("loading legacy env variables: %w", err)
	}

	prefixed := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills every zero-valued optional field.
func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "local"
	}

	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	c.Server.CORSAllowedOrigins = splitAndTrim(c.Server.CORSAllowedOrigins)
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMongo
	}
	if c.Store.ConnectTimeout == 0 {
		c.Store.ConnectTimeout = 10 * time.Second
	}

	c.Events.Brokers = splitAndTrim(c.Events.Brokers)

	defaults := DefaultObservabilityConfig()
	if c.Observability == nil {
		c.Observability = defaults
	} else {
		c.Observability.fillFrom(defaults)
	}
	c.Observability.ServiceName = "exercise-tracker"
	c.Observability.Environment = c.Primary.Env
}

// splitAndTrim flattens comma separated entries and drops blanks, so both
// `a,b` and a pre-split list end up the same.
func splitAndTrim(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
