package domain

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadConfig.
const (
	EnvAPIKey    = "LINEAR_API_KEY"
	EnvAPIURL    = "LINEAR_API_URL"
	EnvTransport = "LINEAR_MCP_TRANSPORT"
	EnvLogLevel  = "LINEAR_MCP_LOG_LEVEL"
)

// Defaults applied before the configuration file and environment.
const (
	DefaultAPIURL          = "https://api.linear.app/graphql"
	DefaultUserLookupLimit = 250
	DefaultHTTPHost        = "127.0.0.1"
	DefaultHTTPPort        = 8080
)

// ErrMissingAPIKey is returned when no Linear credential is configured.
var ErrMissingAPIKey = errors.New(EnvAPIKey + " environment variable is required")

// Config represents the server configuration.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Linear    LinearConfig    `yaml:"linear"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TransportConfig defines transport settings.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings.
// Only used when transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LinearConfig defines how the Linear API is reached.
type LinearConfig struct {
	APIURL   string `yaml:"api_url"`
	AuthType string `yaml:"auth_type"` // "apikey" or "oauth"

	// APIKey is only ever read from the environment.
	APIKey string `yaml:"-"`

	// UserLookupLimit bounds the user page fetched when resolving an
	// assignee or email.
	UserLookupLimit int `yaml:"user_lookup_limit"`
}

// LoggingConfig defines log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// DefaultConfig returns a configuration for the stdio transport against the
// public Linear API.
func DefaultConfig() *Config {
	return &Config{
		Transport: TransportConfig{
			Type: "stdio",
			HTTP: HTTPConfig{
				Host: DefaultHTTPHost,
				Port: DefaultHTTPPort,
			},
		},
		Linear: LinearConfig{
			APIURL:          DefaultAPIURL,
			AuthType:        APIKeyAuth.String(),
			UserLookupLimit: DefaultUserLookupLimit,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// and the process environment, then validates it.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigWithEnv(path, os.Getenv)
}

// LoadConfigWithEnv is LoadConfig with an injectable environment lookup.
// An empty path skips the file.
func LoadConfigWithEnv(path string, getenv func(string) string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("configuration file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
		}
	}

	config.ApplyEnv(getenv)

	if err := config.Validate(); err != nil {
		if errors.Is(err, ErrMissingAPIKey) {
			return nil, err
		}
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ApplyEnv overlays values from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		c.Linear.APIKey = v
	}
	if v := getenv(EnvAPIURL); v != "" {
		c.Linear.APIURL = v
	}
	if v := getenv(EnvTransport); v != "" {
		c.Transport.Type = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for completeness and correctness.
// A missing API key is reported on its own as ErrMissingAPIKey; other
// problems are aggregated into a single error.
func (c *Config) Validate() error {
	if c.Linear.APIKey == "" {
		return ErrMissingAPIKey
	}

	var errors []string

	if err := c.validateTransport(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.Linear.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.Logging.Level))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var errors []string

	if c.Transport.Type == "" {
		errors = append(errors, "transport type is required")
	} else if c.Transport.Type != "stdio" && c.Transport.Type != "http" {
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	if c.Transport.Type == "http" {
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates the Linear API settings.
func (lc *LinearConfig) Validate() error {
	var errors []string

	if lc.APIURL == "" {
		errors = append(errors, "linear api_url is required")
	} else {
		parsedURL, err := url.Parse(lc.APIURL)
		if err != nil {
			errors = append(errors, fmt.Sprintf("linear api_url is invalid: %v", err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, "linear api_url must use http or https scheme")
		} else if parsedURL.Host == "" {
			errors = append(errors, "linear api_url must include a host")
		}
	}

	if _, err := ParseAuthType(lc.AuthType); err != nil {
		errors = append(errors, err.Error())
	}

	if lc.UserLookupLimit <= 0 || lc.UserLookupLimit > MaxPageSize {
		errors = append(errors, fmt.Sprintf("invalid user_lookup_limit %d: must be between 1 and %d", lc.UserLookupLimit, MaxPageSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
