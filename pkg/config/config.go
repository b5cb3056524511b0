// Package config provides configuration management for the invoice manager.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/hamon-in/invoice/pkg/pathutil"
)

// Defaults used when neither a flag nor the environment sets a value.
const (
	DefaultEditor = "vi"
	DefaultFormat = "text"
)

// Config represents the application configuration.
type Config struct {
	DBPath    string `validate:"required"`
	OutputDir string `validate:"required"`
	Editor    string `validate:"required"`
	Format    string `validate:"oneof=text pdf"`
	Debug     bool
}

// Overrides holds values given on the command line. Empty fields leave the
// loaded value untouched.
type Overrides struct {
	DBPath    string
	OutputDir string
	Editor    string
	Format    string
	Debug     bool
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	debug, err := parseBoolEnv("INVOICE_DEBUG", false)
	if err != nil {
		return nil, err
	}

	editor := os.Getenv("INVOICE_EDITOR")
	if editor == "" {
		editor = getEnvOrDefault("EDITOR", DefaultEditor)
	}

	return &Config{
		DBPath:    getEnvOrDefault("INVOICE_DB", pathutil.DefaultDatabasePath()),
		OutputDir: getEnvOrDefault("INVOICE_DIR", pathutil.DefaultOutputDir),
		Editor:    editor,
		Format:    getEnvOrDefault("INVOICE_FORMAT", DefaultFormat),
		Debug:     debug,
	}, nil
}

// Apply lets command-line values take precedence over the environment.
func (c *Config) Apply(o Overrides) {
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.Editor != "" {
		c.Editor = o.Editor
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Debug {
		c.Debug = true
	}
}

// Validate checks that every setting is present and the format is known.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w\nPlease check your .env file, environment variables or flags", err)
	}
	return nil
}

// Resolver builds the path resolver for the configured locations.
func (c *Config) Resolver() *pathutil.PathResolver {
	return pathutil.New(pathutil.Config{
		DatabasePath: c.DBPath,
		OutputDir:    c.OutputDir,
	})
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a boolean from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}
