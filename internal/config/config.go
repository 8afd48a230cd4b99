// Package config loads the client configuration from the config file,
// a local .env, and SCHOOLCTL_* environment variables, in increasing
// priority.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/schoolctl/schoolctl/internal/errors"
)

// Config is the resolved client configuration.
type Config struct {
	// APIBaseURL is the backend base URL, no trailing slash.
	APIBaseURL string `yaml:"api_base_url" validate:"required,url"`

	// RequestTimeout bounds each outbound request.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// SessionFile is where the session record is persisted.
	SessionFile string `yaml:"session_file"`

	// SessionPassphrase, when set, switches the session file to
	// encrypted storage. Usually supplied via environment, not the file.
	SessionPassphrase string `yaml:"session_passphrase"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:     "http://localhost:8000",
		RequestTimeout: 15 * time.Second,
		SessionFile:    filepath.Join(homeDir(), ".schoolctl", "session.json"),
		LogLevel:       "warn",
		LogFormat:      "text",
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(homeDir(), ".schoolctl", "config.yaml")
}

// Load resolves the configuration: defaults, then the config file if it
// exists, then .env, then environment variables.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeConfigParse,
				"failed to parse "+path, err).
				WithSuggestion("Check the YAML syntax of the config file")
		}
	} else if !os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeConfigNotFound, "failed to read "+path, err)
	}

	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, errors.NewConfigInvalidError(err.Error())
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCHOOLCTL_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SCHOOLCTL_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("SCHOOLCTL_SESSION_PASSPHRASE"); v != "" {
		cfg.SessionPassphrase = v
	}
	if v := os.Getenv("SCHOOLCTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SCHOOLCTL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("SCHOOLCTL_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
