package clients

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/oauth2"
)

// restClient is the shared transport of the downstream service adapters.
// Platform services answer with a {"content": ...} envelope.
type restClient struct {
	service string
	baseURL string
	client  *http.Client
}

func newRESTClient(service string, cfg config.RESTService) (*restClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	if cfg.OAuth.TokenURL != "" {
		var err error

		httpClient, err = oauth2.NewClient(oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			APIClient:    &http.Client{Timeout: cfg.Timeout},
		})
		if err != nil {
			return nil, err
		}
	}

	return &restClient{
		service: service,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		client:  httpClient,
	}, nil
}

// getJSON runs a GET against path and decodes the response body into out.
// Non-2xx statuses come back as a categorized AdapterError so callers can
// branch on the failure bucket instead of raw status codes. Failures are
// logged here and returned, never panicked.
func (c *restClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errs.Wrap(ErrBuildRequest, err)
	}

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn(ctx, "downstream request failed",
			slog.String("service", c.service),
			slog.String("path", path),
			log.ErrorAttr(err),
		)

		return errs.Wrap(ErrExecuteRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		adapterErr := NewAdapterError(c.service, resp.StatusCode)

		log.Warn(ctx, "downstream request rejected",
			slog.String("service", c.service),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return adapterErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(ErrDecodeResponse, err)
	}

	return nil
}
