package testutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/storage"
)

type memoryObject struct {
	content      []byte
	contentType  string
	lastModified time.Time
}

// MemoryStore is an in-memory object store for tests.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject
}

var _ storage.ObjectStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
	}
}

func (s *MemoryStore) UploadFile(_ context.Context, name string, content []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[name] = memoryObject{
		content:      bytes.Clone(content),
		contentType:  contentType,
		lastModified: time.Now().UTC(),
	}

	return name, nil
}

func (s *MemoryStore) DownloadFile(_ context.Context, name string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("object %s not found", name)
	}

	return io.NopCloser(bytes.NewReader(obj.content)), nil
}

func (s *MemoryStore) FileExists(_ context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.objects[name]

	return ok
}

func (s *MemoryStore) ListFiles(_ context.Context, prefix string) ([]storage.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]storage.FileInfo, 0, len(s.objects))

	for name, obj := range s.objects {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		infos = append(infos, storage.FileInfo{
			Name:         name,
			Size:         int64(len(obj.content)),
			ContentType:  obj.contentType,
			LastModified: obj.lastModified,
		})
	}

	slices.SortFunc(infos, func(a, b storage.FileInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	return infos, nil
}

func (s *MemoryStore) DeleteFile(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, name)

	return nil
}

func (s *MemoryStore) PresignedURL(_ context.Context, name string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[name]; !ok {
		return "", fmt.Errorf("object %s not found", name)
	}

	return "https://storage.test/" + name + "?expiry=" + expiry.String(), nil
}

// ObjectCount reports how many objects the store currently holds.
func (s *MemoryStore) ObjectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.objects)
}
