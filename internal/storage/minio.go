package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/config"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
)

var (
	ErrCreateClient = errors.New("failed to create storage client")
	ErrEnsureBucket = errors.New("failed to ensure storage bucket")
	ErrUploadFile   = errors.New("failed to upload file")
	ErrDownloadFile = errors.New("failed to download file")
	ErrListFiles    = errors.New("failed to list files")
	ErrDeleteFile   = errors.New("failed to delete file")
	ErrPresignedURL = errors.New("failed to create presigned URL")
)

// objectAPI is the slice of the MinIO client the store calls. Tests
// substitute a recording mock for it.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
	GetObject(
		ctx context.Context,
		bucketName, objectName string,
		opts minio.GetObjectOptions,
	) (*minio.Object, error)
	StatObject(
		ctx context.Context,
		bucketName, objectName string,
		opts minio.StatObjectOptions,
	) (minio.ObjectInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(
		ctx context.Context,
		bucketName, objectName string,
		expires time.Duration,
		reqParams url.Values,
	) (*url.URL, error)
}

var _ objectAPI = (*minio.Client)(nil)

// MinioStore stores objects in a single MinIO bucket.
type MinioStore struct {
	client objectAPI
	bucket string
}

var _ ObjectStore = (*MinioStore)(nil)

func NewMinioStore(cfg config.Storage) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errs.Wrap(ErrCreateClient, err)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
// Called once at startup.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errs.Wrap(ErrEnsureBucket, err)
	}

	if exists {
		return nil
	}

	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil {
		return errs.Wrap(ErrEnsureBucket, err)
	}

	return nil
}

func (s *MinioStore) UploadFile(
	ctx context.Context,
	name string,
	content []byte,
	contentType string,
) (string, error) {
	_, err := s.client.PutObject(
		ctx, s.bucket, name,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		log.Error(ctx, "error uploading file", err)
		return "", errs.Wrap(ErrUploadFile, err)
	}

	return name, nil
}

func (s *MinioStore) DownloadFile(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		log.Error(ctx, "error downloading file", err)
		return nil, errs.Wrap(ErrDownloadFile, err)
	}

	return obj, nil
}

func (s *MinioStore) FileExists(ctx context.Context, name string) bool {
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	return err == nil
}

func (s *MinioStore) ListFiles(ctx context.Context, prefix string) ([]FileInfo, error) {
	var files []FileInfo

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			log.Error(ctx, "error listing files", obj.Err)
			return nil, errs.Wrap(ErrListFiles, obj.Err)
		}

		files = append(files, FileInfo{
			Name:         obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}

	return files, nil
}

func (s *MinioStore) DeleteFile(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
	if err != nil {
		log.Error(ctx, "error deleting file", err)
		return errs.Wrap(ErrDeleteFile, err)
	}

	return nil
}

func (s *MinioStore) PresignedURL(
	ctx context.Context,
	name string,
	expiry time.Duration,
) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, name, expiry, url.Values{})
	if err != nil {
		log.Error(ctx, "error creating presigned URL", err)
		return "", errs.Wrap(ErrPresignedURL, err)
	}

	return u.String(), nil
}
