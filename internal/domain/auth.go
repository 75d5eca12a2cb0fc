package domain

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// AuthType defines supported authentication methods.
type AuthType int

const (
	// APIKeyAuth sends a personal API key as the raw Authorization header.
	APIKeyAuth AuthType = iota
	// OAuthAuth sends an OAuth access token as a Bearer Authorization header.
	OAuthAuth
)

// String returns the string representation of AuthType.
func (a AuthType) String() string {
	switch a {
	case APIKeyAuth:
		return "apikey"
	case OAuthAuth:
		return "oauth"
	default:
		return "unknown"
	}
}

// ParseAuthType converts a configuration string to AuthType.
// The empty string selects APIKeyAuth.
func ParseAuthType(s string) (AuthType, error) {
	switch s {
	case "", "apikey":
		return APIKeyAuth, nil
	case "oauth":
		return OAuthAuth, nil
	default:
		return APIKeyAuth, fmt.Errorf("linear auth_type '%s' is invalid: must be 'apikey' or 'oauth'", s)
	}
}

// Credentials stores the Linear credential.
type Credentials struct {
	Type  AuthType
	Token string
}

// AuthenticationManager builds HTTP clients that authenticate against Linear.
type AuthenticationManager struct {
	credentials *Credentials
	base        http.RoundTripper
}

// NewAuthenticationManager creates a new authentication manager.
func NewAuthenticationManager(credentials *Credentials) *AuthenticationManager {
	return &AuthenticationManager{
		credentials: credentials,
		base:        http.DefaultTransport,
	}
}

// NewAuthenticationManagerFromConfig creates an authentication manager from a configuration.
func NewAuthenticationManagerFromConfig(config *Config) (*AuthenticationManager, error) {
	authType, err := ParseAuthType(config.Linear.AuthType)
	if err != nil {
		return nil, err
	}
	return NewAuthenticationManager(&Credentials{
		Type:  authType,
		Token: config.Linear.APIKey,
	}), nil
}

// WithBaseTransport replaces the round tripper authenticated requests are
// sent through. It is used by tests.
func (am *AuthenticationManager) WithBaseTransport(base http.RoundTripper) *AuthenticationManager {
	am.base = base
	return am
}

// GetAuthenticatedClient returns an HTTP client that adds the Authorization
// header to every request.
// Returns an error if the credentials are missing or invalid.
func (am *AuthenticationManager) GetAuthenticatedClient(ctx context.Context) (*http.Client, error) {
	if err := am.ValidateCredentials(); err != nil {
		return nil, err
	}

	switch am.credentials.Type {
	case OAuthAuth:
		source := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: am.credentials.Token,
			TokenType:   "Bearer",
		})
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: am.base})
		return oauth2.NewClient(ctx, source), nil
	default:
		return &http.Client{
			Transport: &apiKeyTransport{
				base:   am.base,
				apiKey: am.credentials.Token,
			},
		}, nil
	}
}

// ValidateCredentials checks that a usable credential is configured.
func (am *AuthenticationManager) ValidateCredentials() error {
	if am.credentials == nil {
		return fmt.Errorf("credentials cannot be nil")
	}

	switch am.credentials.Type {
	case APIKeyAuth, OAuthAuth:
		if am.credentials.Token == "" {
			return ErrMissingAPIKey
		}
	default:
		return fmt.Errorf("invalid authentication type: %v", am.credentials.Type)
	}

	return nil
}

// apiKeyTransport is an http.RoundTripper that adds a Linear API key.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

// RoundTrip implements http.RoundTripper.
func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("Authorization", t.apiKey)

	return t.base.RoundTrip(clonedReq)
}
