package oauth2

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
)

var (
	ErrFetchToken    = errors.New("failed to fetch access token")
	ErrRefreshToken  = errors.New("failed to refresh access token")
	ErrRequestFailed = errors.New("authenticated request failed")
)

// TokenInjector is an http.RoundTripper that puts a client-credentials
// bearer token on every outgoing request. The first token is fetched on
// first use and kept until it expires, then replaced.
type TokenInjector struct {
	apiClient   *http.Client
	tokenClient *http.Client
	credentials *clientcredentials.Config
	token       *oauth2.Token
}

// NewTokenInjector wires up a TokenInjector. Requests go out through
// apiClient, token fetches through tokenClient.
func NewTokenInjector(
	apiClient *http.Client,
	tokenClient *http.Client,
	credentials *clientcredentials.Config,
) *TokenInjector {
	if apiClient == nil {
		apiClient = http.DefaultClient
	}

	return &TokenInjector{
		apiClient:   apiClient,
		tokenClient: tokenClient,
		credentials: credentials,
	}
}

// RoundTrip injects the bearer token and executes the request.
func (inj *TokenInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := inj.bearer(req.Context())
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := inj.apiClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(ErrRequestFailed, err)
	}

	return resp, nil
}

// bearer returns a valid token, fetching the first one or replacing an
// expired one through the token endpoint.
func (inj *TokenInjector) bearer(ctx context.Context) (*oauth2.Token, error) {
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, inj.tokenClient)
	source := inj.credentials.TokenSource(tokenCtx)

	if inj.token == nil {
		token, err := source.Token()
		if err != nil {
			return nil, errs.Wrap(ErrFetchToken, err)
		}

		inj.token = token

		return token, nil
	}

	token, err := oauth2.ReuseTokenSource(inj.token, source).Token()
	if err != nil {
		return nil, errs.Wrap(ErrRefreshToken, err)
	}

	inj.token = token

	return token, nil
}
