package write

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

// ContentResponse is the single-resource envelope.
type ContentResponse struct {
	Content any `json:"content"`
}

// ListResponse is the collection envelope with pagination metadata and
// window links.
type ListResponse struct {
	Content any   `json:"content"`
	Meta    Meta  `json:"_meta"`
	Links   Links `json:"_links"`
}

type Meta struct {
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
	Page         int `json:"page"`
	Limit        int `json:"limit"`
}

// Links carries relative URLs into the result window. Next and Prev are
// omitted at the window edges.
type Links struct {
	Self  string  `json:"self"`
	First string  `json:"first"`
	Last  string  `json:"last"`
	Next  *string `json:"next,omitempty"`
	Prev  *string `json:"prev,omitempty"`
}

// ErrorMessage is the error envelope. Internal detail stays out of it.
type ErrorMessage struct {
	Error string `json:"error"`
}

// PanicMessage is the envelope for errors that escaped the handler chain.
type PanicMessage struct {
	ErrorMessage string `json:"errorMessage"`
	Message      string `json:"message"`
}

// JSON writes content wrapped in the single-resource envelope.
func JSON(ctx context.Context, w http.ResponseWriter, status int, content any) {
	respond(ctx, w, status, ContentResponse{Content: content})
}

// List writes content wrapped in the collection envelope, deriving _meta and
// _links from the request URL and the pagination window.
func List(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	content any,
	totalRecords int,
	pagination repo.Pagination,
) {
	totalPages := pagination.TotalPages(totalRecords)

	links := Links{
		Self:  pageLink(r.URL, pagination.Page, pagination.Limit),
		First: pageLink(r.URL, 1, pagination.Limit),
		Last:  pageLink(r.URL, totalPages, pagination.Limit),
	}

	if pagination.Page < totalPages {
		links.Next = ptr.PointTo(pageLink(r.URL, pagination.Page+1, pagination.Limit))
	}

	if pagination.Page > 1 {
		links.Prev = ptr.PointTo(pageLink(r.URL, pagination.Page-1, pagination.Limit))
	}

	respond(ctx, w, http.StatusOK, ListResponse{
		Content: content,
		Meta: Meta{
			TotalRecords: totalRecords,
			TotalPages:   totalPages,
			Page:         pagination.Page,
			Limit:        pagination.Limit,
		},
		Links: links,
	})
}

// ErrorResponse writes an error envelope to the client and logs the exposed
// code. Only the message reaches the client.
func ErrorResponse(ctx context.Context, w http.ResponseWriter, apiErr *apierrors.APIError) {
	log.Info(ctx, "request failed",
		slog.String("code", apiErr.Code),
		slog.Int("status", apiErr.Status))

	respond(ctx, w, apiErr.Status, ErrorMessage{Error: apiErr.Message})
}

// DomainError maps an internal error chain to its exposed form and writes it.
func DomainError(ctx context.Context, w http.ResponseWriter, err error) {
	ErrorResponse(ctx, w, apierrors.APIErrorMapper.Transform(err))
}

// PanicResponse reports an error that escaped the handler chain.
func PanicResponse(ctx context.Context, w http.ResponseWriter, err error) {
	respond(ctx, w, http.StatusInternalServerError, PanicMessage{
		ErrorMessage: err.Error(),
		Message:      "Internal server error",
	})
}

func respond(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Error(ctx, "failed to encode response", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(data)
	if err != nil {
		log.Error(ctx, "failed to write response", err)
	}
}

func pageLink(u *url.URL, page, limit int) string {
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	link := url.URL{Path: u.Path, RawQuery: query.Encode()}

	return link.String()
}
