package oauth2

import (
	"crypto/tls"
	"errors"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrClientIDMustBeSet = errors.New("clientID must be set")
	ErrTokenURLRequired  = errors.New("tokenURL must be set")
)

// Config describes a client-credentials grant against a token endpoint.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	// APIClient performs the authenticated requests. Defaults to
	// http.DefaultClient.
	APIClient *http.Client

	// TLS applies to the token endpoint connection only.
	TLS *tls.Config
}

func (cfg Config) validate() error {
	var missing []error

	if cfg.ClientID == "" {
		missing = append(missing, ErrClientIDMustBeSet)
	}

	if cfg.TokenURL == "" {
		missing = append(missing, ErrTokenURLRequired)
	}

	return errors.Join(missing...)
}

// NewClient returns an http.Client that fetches client-credentials tokens
// and injects them as Bearer headers on every request.
func NewClient(cfg Config) (*http.Client, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	tokenClient := http.DefaultClient
	if cfg.TLS != nil {
		tokenClient = &http.Client{
			Transport: &http.Transport{TLSClientConfig: cfg.TLS},
		}
	}

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}

	return &http.Client{
		Transport: NewTokenInjector(cfg.APIClient, tokenClient, credentials),
	}, nil
}
