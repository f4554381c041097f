package clients_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/clients"
)

func TestNewAdapterError(t *testing.T) {
	tests := []struct {
		name             string
		status           int
		expectedCategory clients.Category
	}{
		{name: "BadRequest", status: http.StatusBadRequest, expectedCategory: clients.CategoryBadRequest},
		{name: "Unauthorized", status: http.StatusUnauthorized, expectedCategory: clients.CategoryUnauthorized},
		{name: "Forbidden", status: http.StatusForbidden, expectedCategory: clients.CategoryForbidden},
		{name: "NotFound", status: http.StatusNotFound, expectedCategory: clients.CategoryNotFound},
		{name: "Conflict", status: http.StatusConflict, expectedCategory: clients.CategoryConflict},
		{name: "ServerError", status: http.StatusInternalServerError, expectedCategory: clients.CategoryUnknown},
		{name: "Teapot", status: http.StatusTeapot, expectedCategory: clients.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := clients.NewAdapterError("contacts", tt.status)

			assert.Equal(t, tt.expectedCategory, err.Category)
			assert.Equal(t, tt.status, err.Status)
			assert.Contains(t, err.Error(), "contacts")
			assert.Contains(t, err.Error(), string(tt.expectedCategory))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "NotFoundError",
			err:      clients.NewAdapterError("leasing", http.StatusNotFound),
			expected: true,
		},
		{
			name:     "WrappedNotFoundError",
			err:      fmt.Errorf("lookup failed: %w", clients.NewAdapterError("leasing", http.StatusNotFound)),
			expected: true,
		},
		{
			name:     "ConflictError",
			err:      clients.NewAdapterError("leasing", http.StatusConflict),
			expected: false,
		},
		{
			name:     "PlainError",
			err:      errors.New("boom"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clients.IsNotFound(tt.err))
		})
	}
}
