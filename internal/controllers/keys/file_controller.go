package keys

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/api/write"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/apierrors"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

// GetFile streams a stored object by its full name. Object names contain
// slashes, so the route matches the whole remainder of the path.
func (c *APIController) GetFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := chi.URLParam(r, "*")
	if name == "" {
		write.ErrorResponse(ctx, w, apierrors.BadParamsError("Invalid file name"))

		return
	}

	if !c.store.FileExists(ctx, name) {
		write.ErrorResponse(ctx, w, apierrors.FileNotFoundError())

		return
	}

	reader, err := c.store.DownloadFile(ctx, name)
	if err != nil {
		write.DomainError(ctx, w, err)

		return
	}
	defer reader.Close()

	streamAttachment(ctx, w, reader, name)
}

// streamAttachment writes an object as a file download. Headers are
// committed before the copy starts, so a failing copy can only be logged.
func streamAttachment(ctx context.Context, w http.ResponseWriter, reader io.Reader, name string) {
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(name)+`"`)

	_, err := io.Copy(w, reader)
	if err != nil {
		log.Error(ctx, "failed to stream file", err, slog.String("file", name))
	}
}
