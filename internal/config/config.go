// Package config loads and validates application configuration.
//
// Configuration comes from environment variables (optionally seeded from a
// .env file via godotenv autoload), is unmarshalled into typed structs with
// koanf, and validated with go-playground/validator so the process fails
// fast on missing or malformed values.
//
// Env vars use the NYUMBA_ prefix with dots for nesting, e.g.
// NYUMBA_DATABASE.HOST -> Config.Database.Host.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Autoload: if a .env file exists it is loaded into the process
	// environment before anything reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication secrets.
//
// SecretKey signs the back-office admin JWTs; ClerkSecretKey authenticates
// against the hosted identity provider for end users.
type AuthConfig struct {
	SecretKey      string `koanf:"secret_key" validate:"required"`
	ClerkSecretKey string `koanf:"clerk_secret_key"`
	TokenTTLHours  int    `koanf:"token_ttl_hours"`
}

// IntegrationConfig holds credentials and endpoints for external
// collaborators consumed as black boxes: transactional email, SMS/WhatsApp,
// the media store and the geocoding provider.
type IntegrationConfig struct {
	ResendAPIKey     string `koanf:"resend_api_key"`
	EmailFromName    string `koanf:"email_from_name"`
	EmailFromAddress string `koanf:"email_from_address"`
	AdminEmail       string `koanf:"admin_email"`

	TwilioAccountSID string `koanf:"twilio_account_sid"`
	TwilioAuthToken  string `koanf:"twilio_auth_token"`
	TwilioFromNumber string `koanf:"twilio_from_number"`

	MediaUploadURL string `koanf:"media_upload_url"`
	MediaAPIKey    string `koanf:"media_api_key"`

	GeocodeURL    string `koanf:"geocode_url"`
	GeocodeAPIKey string `koanf:"geocode_api_key"`
}

// Load reads configuration from environment variables, unmarshals it into
// Config, validates it and applies observability defaults.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// Only env vars with the NYUMBA_ prefix are read; the prefix is
	// stripped and the remainder lowercased to form the koanf key path.
	err := k.Load(env.Provider("NYUMBA_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "NYUMBA_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err = k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err = validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Auth.TokenTTLHours <= 0 {
		mainConfig.Auth.TokenTTLHours = 24
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry stays
	// consistently labelled regardless of env var contents.
	mainConfig.Observability.ServiceName = "nyumba"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
