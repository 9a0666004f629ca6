// Package config handles application configuration.
//
// It provides:
//   - Flag parsing with CLI arguments
//   - Environment variable support (with CLI override)
//   - Configuration validation
//   - Precedence: CLI flags > environment variables > defaults
//
// Supported environment variables:
//   - HUUM_USERNAME: Huum account username (required)
//   - HUUM_PASSWORD: Huum account password (required)
//   - HUUM_BASE_URL: Override for the Huum API base URL
//   - HUUM_PORT: HTTP server port
//   - HUUM_SCRAPE_TIMEOUT: Timeout for API requests (seconds)
//   - HUUM_LOG_LEVEL: Logging level (debug, info, warn, error)
//   - HUUM_LOG_FORMAT: Logging format (json, text)
//
// Credentials live here, on the caller side: the huum client itself takes
// them as explicit constructor arguments.
//
// Example usage:
//
//	cfg := config.Load()
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
package config

import (
	"flag"
	"fmt"
	"os"
)

// Config holds the application configuration
type Config struct {
	// Huum account credentials
	Username string
	Password string

	// Huum API configuration
	BaseURL string

	// Server configuration
	Port int

	// Collection configuration
	ScrapeTimeout int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load parses environment variables and command-line flags and returns a Config
// Precedence: CLI flags > environment variables > defaults
func Load() *Config {
	return LoadWithArgs(os.Args[1:])
}

// LoadWithArgs loads configuration with explicit arguments (useful for testing)
func LoadWithArgs(args []string) *Config {
	cfg := &Config{}

	envUsername := os.Getenv("HUUM_USERNAME")
	envPassword := os.Getenv("HUUM_PASSWORD")
	envBaseURL := os.Getenv("HUUM_BASE_URL")
	envPort := os.Getenv("HUUM_PORT")
	envScrapeTimeout := os.Getenv("HUUM_SCRAPE_TIMEOUT")
	envLogLevel := os.Getenv("HUUM_LOG_LEVEL")
	envLogFormat := os.Getenv("HUUM_LOG_FORMAT")

	if envLogLevel == "" {
		envLogLevel = "info"
	}
	if envLogFormat == "" {
		envLogFormat = "text"
	}

	// Create a new FlagSet for this invocation (allows multiple calls in tests)
	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&cfg.Username, "username", envUsername, "Huum account username (env: HUUM_USERNAME, required)")
	fs.StringVar(&cfg.Password, "password", envPassword, "Huum account password (env: HUUM_PASSWORD, required)")
	fs.StringVar(&cfg.BaseURL, "base-url", envBaseURL, "Huum API base URL override (env: HUUM_BASE_URL, optional)")
	fs.IntVar(&cfg.Port, "port", parseEnvInt(envPort, 9730), "HTTP server listen port (env: HUUM_PORT)")
	fs.IntVar(&cfg.ScrapeTimeout, "scrape-timeout", parseEnvInt(envScrapeTimeout, 10), "Maximum time in seconds to wait for API response (env: HUUM_SCRAPE_TIMEOUT)")
	fs.StringVar(&cfg.LogLevel, "log-level", envLogLevel, "Logging verbosity: debug, info, warn, error (env: HUUM_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format", envLogFormat, "Logging format: json, text (env: HUUM_LOG_FORMAT)")

	// FlagSet is configured with ContinueOnError, so parse errors are handled gracefully
	_ = fs.Parse(args)

	return cfg
}

// parseEnvInt parses an environment variable as an integer, returning default if invalid
func parseEnvInt(envValue string, defaultValue int) int {
	if envValue == "" {
		return defaultValue
	}
	var result int
	_, err := fmt.Sscanf(envValue, "%d", &result)
	if err != nil {
		return defaultValue
	}
	return result
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("username and password are required (use -username/-password flags or HUUM_USERNAME/HUUM_PASSWORD env vars)")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}

	if c.ScrapeTimeout < 1 {
		return fmt.Errorf("invalid scrape-timeout: %d (must be at least 1 second)", c.ScrapeTimeout)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log-level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid log-format: %s (must be 'json' or 'text')", c.LogFormat)
	}

	return nil
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf("Config{Username: %s, Port: %d, ScrapeTimeout: %ds, LogLevel: %s, LogFormat: %s}",
		c.Username, c.Port, c.ScrapeTimeout, c.LogLevel, c.LogFormat)
}
