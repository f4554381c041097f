package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/clients"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/controllers/keys"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/middleware"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/sql"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
)

const TestHostPrefix = "http://keys.test/v1/"

// NewAPIServer mounts the API routes over the given database and object
// store. Authentication is left off so tests do not have to mint tokens.
func NewAPIServer(tb testing.TB, db *gorm.DB, store storage.ObjectStore) http.Handler {
	tb.Helper()

	r := sql.NewRepository(db)

	factory, err := clients.NewFactory(config.Services{})
	assert.NoError(tb, err)

	return startAPIServer(keys.NewAPIController(r, store, factory))
}

func startAPIServer(controller *keys.APIController) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.PanicRecovery())

	r.Mount("/v1", controller.Routes())

	return r
}

func GetTestURL(tb testing.TB, path string) string {
	tb.Helper()

	u, err := url.JoinPath(TestHostPrefix, path)
	assert.NoError(tb, err)

	// JoinPath escapes the query separator, undo that so endpoints can
	// carry query strings.
	uHex, err := url.PathUnescape(u)
	assert.NoError(tb, err)

	return uHex
}

// RequestOptions describes one request against the test server. Body is
// only read on methods that carry one; build it with WithString or
// WithJSON.
type RequestOptions struct {
	Method   string
	Endpoint string
	Body     io.Reader
	Headers  map[string]string
}

// WithString turns a plain string into a request body.
func WithString(tb testing.TB, i any) io.Reader {
	tb.Helper()

	str, ok := i.(string)
	if !ok {
		assert.Fail(tb, "request body must be a string")
	}

	return strings.NewReader(str)
}

// WithJSON serializes i into a JSON request body.
func WithJSON(tb testing.TB, i any) io.Reader {
	tb.Helper()

	bs, err := json.Marshal(i)
	assert.NoError(tb, err)

	return bytes.NewReader(bs)
}

// GetJSONBody decodes the recorded response body into T. Error responses
// decode into write.ErrorMessage.
func GetJSONBody[T any](tb testing.TB, w *httptest.ResponseRecorder) T {
	tb.Helper()

	var out T

	err := json.Unmarshal(w.Body.Bytes(), &out)
	assert.NoError(tb, err)

	return out
}

// NewHTTPRequest builds a request against the test host. Methods that
// carry a body default to a JSON content type.
func NewHTTPRequest(tb testing.TB, opt RequestOptions) *http.Request {
	tb.Helper()

	r, err := http.NewRequestWithContext(
		tb.Context(),
		opt.Method,
		GetTestURL(tb, opt.Endpoint),
		opt.Body,
	)
	assert.NoError(tb, err)

	switch opt.Method {
	case http.MethodGet, http.MethodDelete:
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		r.Header.Set("Content-Type", "application/json")
	default:
		assert.Fail(tb, "unsupported method "+opt.Method)
	}

	// Explicit headers win over the method defaults, so scan uploads can
	// carry their real content type.
	for k, v := range opt.Headers {
		r.Header.Set(k, v)
	}

	return r
}

// MakeHTTPRequest runs one request through the handler and returns the
// recorded response.
func MakeHTTPRequest(tb testing.TB, server http.Handler, opt RequestOptions) *httptest.ResponseRecorder {
	tb.Helper()

	req := NewHTTPRequest(tb, opt)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	return w
}
