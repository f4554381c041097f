package oauth2_test

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bostads-AB-Mimer/onecore-keys/utils/oauth2"
)

func TestNewClientValidatesConfig(t *testing.T) {
	tests := []struct {
		name       string
		cfg        oauth2.Config
		wantErrors []error
	}{
		{
			name: "MissingTokenURL",
			cfg: oauth2.Config{
				ClientID:     "onecore-keys",
				ClientSecret: "onecore-keys-secret",
			},
			wantErrors: []error{oauth2.ErrTokenURLRequired},
		},
		{
			name: "MissingClientID",
			cfg: oauth2.Config{
				ClientSecret: "onecore-keys-secret",
				TokenURL:     "https://auth.onecore.test/oauth/token",
			},
			wantErrors: []error{oauth2.ErrClientIDMustBeSet},
		},
		{
			name: "EmptyConfig",
			wantErrors: []error{
				oauth2.ErrClientIDMustBeSet,
				oauth2.ErrTokenURLRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := oauth2.NewClient(tt.cfg)

			assert.Nil(t, client)

			for _, wantErr := range tt.wantErrors {
				assert.ErrorIs(t, err, wantErr)
			}
		})
	}
}

func TestNewClientReturnsInjectingClient(t *testing.T) {
	client, err := oauth2.NewClient(oauth2.Config{
		ClientID:     "onecore-keys",
		ClientSecret: "onecore-keys-secret",
		TokenURL:     "https://auth.onecore.test/oauth/token",
		Scopes:       []string{"contacts:read", "leasing:read"},
	})
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.IsType(t, &oauth2.TokenInjector{}, client.Transport)
}

func TestNewClientWithTLSConfig(t *testing.T) {
	client, err := oauth2.NewClient(oauth2.Config{
		ClientID:     "onecore-keys",
		ClientSecret: "onecore-keys-secret",
		TokenURL:     "https://auth.onecore.test/oauth/token",
		TLS:          &tls.Config{MinVersion: tls.VersionTLS12},
	})
	require.NoError(t, err)
	assert.IsType(t, &oauth2.TokenInjector{}, client.Transport)
}
