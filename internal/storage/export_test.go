package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// NewStoreWithClient builds a MinioStore around a mock client.
func NewStoreWithClient(client objectAPI, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

// MockMinioClient records what the store forwards to the MinIO SDK so the
// adapter tests can run without a live object store. Listings are served
// from Objects, filtered by the requested prefix the way the server would.
type MockMinioClient struct {
	Objects []minio.ObjectInfo

	BucketExistsResult bool
	BucketExistsErr    error
	MakeBucketErr      error
	PutErr             error
	GetErr             error
	StatErr            error
	RemoveErr          error
	PresignErr         error

	MadeBucket     string
	PutBucket      string
	PutName        string
	PutSize        int64
	PutContentType string
	PutContent     []byte
	StatName       string
	ListPrefix     string
	RemovedName    string
	PresignedName  string
}

var _ objectAPI = (*MockMinioClient)(nil)

func (m *MockMinioClient) BucketExists(_ context.Context, _ string) (bool, error) {
	return m.BucketExistsResult, m.BucketExistsErr
}

func (m *MockMinioClient) MakeBucket(_ context.Context, bucketName string, _ minio.MakeBucketOptions) error {
	m.MadeBucket = bucketName

	return m.MakeBucketErr
}

func (m *MockMinioClient) PutObject(
	_ context.Context,
	bucketName, objectName string,
	reader io.Reader,
	objectSize int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	if m.PutErr != nil {
		return minio.UploadInfo{}, m.PutErr
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}

	m.PutBucket = bucketName
	m.PutName = objectName
	m.PutSize = objectSize
	m.PutContentType = opts.ContentType
	m.PutContent = content

	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func (m *MockMinioClient) GetObject(
	_ context.Context,
	_, _ string,
	_ minio.GetObjectOptions,
) (*minio.Object, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	return &minio.Object{}, nil
}

func (m *MockMinioClient) StatObject(
	_ context.Context,
	_, objectName string,
	_ minio.StatObjectOptions,
) (minio.ObjectInfo, error) {
	m.StatName = objectName

	if m.StatErr != nil {
		return minio.ObjectInfo{}, m.StatErr
	}

	return minio.ObjectInfo{Key: objectName}, nil
}

func (m *MockMinioClient) ListObjects(
	_ context.Context,
	_ string,
	opts minio.ListObjectsOptions,
) <-chan minio.ObjectInfo {
	m.ListPrefix = opts.Prefix

	ch := make(chan minio.ObjectInfo, len(m.Objects))

	for _, obj := range m.Objects {
		if obj.Err != nil || strings.HasPrefix(obj.Key, opts.Prefix) {
			ch <- obj
		}
	}

	close(ch)

	return ch
}

func (m *MockMinioClient) RemoveObject(
	_ context.Context,
	_, objectName string,
	_ minio.RemoveObjectOptions,
) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}

	m.RemovedName = objectName

	return nil
}

func (m *MockMinioClient) PresignedGetObject(
	_ context.Context,
	bucketName, objectName string,
	_ time.Duration,
	_ url.Values,
) (*url.URL, error) {
	if m.PresignErr != nil {
		return nil, m.PresignErr
	}

	m.PresignedName = objectName

	return &url.URL{Scheme: "https", Host: "minio.test", Path: "/" + bucketName + "/" + objectName}, nil
}
