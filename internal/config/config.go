package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	ServerPort     string `env:"SERVER_PORT" env-default:"8080" env-description:"HTTP listen port"`
	GinMode        string `env:"GIN_MODE" env-default:"debug" env-description:"gin mode: debug, release or test"`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info" env-description:"logrus level"`
	SessionSecret  string `env:"SESSION_SECRET" env-required:"true" env-description:"HMAC key for session cookies"`
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"file" env-description:"file or postgres"`
	UsersFile      string `env:"USERS_FILE" env-default:"users.json" env-description:"credentials document"`
	DataFile       string `env:"DATA_FILE" env-default:"data.csv" env-description:"records document"`
	DB             DBConfig
}

// Load reads an optional .env file and binds the environment into a Config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found or error loading, relying on environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints cleanenv cannot express
func (c *Config) Validate() error {
	var problems []string

	if c.SessionSecret == "" {
		problems = append(problems, "SESSION_SECRET must not be empty")
	}

	switch c.StorageBackend {
	case BackendFile:
		if c.UsersFile == "" || c.DataFile == "" {
			problems = append(problems, "USERS_FILE and DATA_FILE must not be empty")
		}
	case BackendPostgres:
		if err := c.DB.Validate(); err != nil {
			problems = append(problems, err.Error())
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be '%s' or '%s'", c.StorageBackend, BackendFile, BackendPostgres))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid gin mode '%s'", c.GinMode))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
