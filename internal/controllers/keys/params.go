package keys

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
)

const maxJSONBodySize = 1 << 20

// decodeBody reads a JSON request body into T, rejecting unknown fields.
// On failure the error response has already been written.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	var payload T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&payload)
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.JSONDecodeError())

		return nil, false
	}

	return &payload, true
}

// pathID parses the {id} route parameter. On failure the error response has
// already been written.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.BadParamsError("Invalid id"))

		return uuid.Nil, false
	}

	return id, true
}

func parsePagination(w http.ResponseWriter, r *http.Request) (repo.Pagination, bool) {
	page, ok := queryInt(w, r, "page", 1)
	if !ok {
		return repo.Pagination{}, false
	}

	limit, ok := queryInt(w, r, "limit", repo.DefaultLimit)
	if !ok {
		return repo.Pagination{}, false
	}

	return repo.NewPagination(page, limit), true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.BadParamsError(name+" must be an integer"))

		return 0, false
	}

	return value, true
}

func queryBool(w http.ResponseWriter, r *http.Request, name string) (*bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.BadParamsError(name+" must be a boolean"))

		return nil, false
	}

	return &value, true
}

func queryUUID(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	value, err := uuid.Parse(raw)
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.BadParamsError(name+" must be a UUID"))

		return nil, false
	}

	return &value, true
}
