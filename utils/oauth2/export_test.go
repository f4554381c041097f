package oauth2

import "golang.org/x/oauth2"

// ExportToken returns the cached token. Testing only.
func (inj *TokenInjector) ExportToken() *oauth2.Token {
	return inj.token
}

// SetToken seeds the cached token so tests can exercise the reuse and
// refresh paths. Testing only.
func (inj *TokenInjector) SetToken(token *oauth2.Token) {
	inj.token = token
}
