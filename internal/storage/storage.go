package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo describes a stored object.
type FileInfo struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// ObjectStore is the object storage surface for receipt documents and
// uploaded scans. Objects are addressed by name only.
type ObjectStore interface {
	// UploadFile stores content under name, forwarding the exact byte
	// length and content type, and returns the name it was stored under.
	UploadFile(ctx context.Context, name string, content []byte, contentType string) (string, error)

	// DownloadFile opens the named object for reading.
	DownloadFile(ctx context.Context, name string) (io.ReadCloser, error)

	// FileExists reports whether a stat of the named object succeeds.
	FileExists(ctx context.Context, name string) bool

	// ListFiles returns objects whose names start with prefix. An empty
	// prefix lists everything. Errors on the listing stream propagate.
	ListFiles(ctx context.Context, prefix string) ([]FileInfo, error)

	// DeleteFile removes the named object.
	DeleteFile(ctx context.Context, name string) error

	// PresignedURL returns a time-limited download URL for the named object.
	PresignedURL(ctx context.Context, name string, expiry time.Duration) (string, error)
}
