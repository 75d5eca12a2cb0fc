package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"linear-mcp-server/internal/domain"
)

// TestExitMessage tests the stderr diagnostic for startup failures
func TestExitMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing api key",
			err:  domain.ErrMissingAPIKey,
			want: "LINEAR_API_KEY environment variable is required",
		},
		{
			name: "wrapped missing api key",
			err:  fmt.Errorf("startup: %w", domain.ErrMissingAPIKey),
			want: "startup: LINEAR_API_KEY environment variable is required",
		},
		{
			name: "other failure",
			err:  errors.New("failed to start transport"),
			want: "Fatal error: failed to start transport",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitMessage(tt.err); got != tt.want {
				t.Errorf("exitMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestConfigurationLoading tests that a configuration file and the environment combine
func TestConfigurationLoading(t *testing.T) {
	configContent := `
transport:
  type: http
  http:
    host: 0.0.0.0
    port: 9090

linear:
  auth_type: oauth
  user_lookup_limit: 100

logging:
  level: debug
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	env := map[string]string{domain.EnvAPIKey: "lin_oauth_testtoken123"}
	config, err := domain.LoadConfigWithEnv(path, func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if config.Transport.Type != "http" {
		t.Errorf("Expected transport type 'http', got '%s'", config.Transport.Type)
	}
	if config.Transport.HTTP.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", config.Transport.HTTP.Port)
	}
	if config.Linear.APIURL != domain.DefaultAPIURL {
		t.Errorf("Expected default api url, got '%s'", config.Linear.APIURL)
	}
	if config.Linear.UserLookupLimit != 100 {
		t.Errorf("Expected user lookup limit 100, got %d", config.Linear.UserLookupLimit)
	}

	authManager, err := domain.NewAuthenticationManagerFromConfig(config)
	if err != nil {
		t.Fatalf("Failed to create authentication manager: %v", err)
	}
	if err := authManager.ValidateCredentials(); err != nil {
		t.Errorf("Expected valid credentials, got: %v", err)
	}
}
