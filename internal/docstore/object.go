package docstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// objectAPI is the slice of the MinIO client the store uses, so tests can
// run without a server.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// ObjectStore keeps each profile document as a JSON object in a bucket.
type ObjectStore struct {
	api    objectAPI
	bucket string
	prefix string
}

var _ Handle = (*ObjectStore)(nil)

// NewObjectStore creates an ObjectStore on a real *minio.Client.
func NewObjectStore(ctx context.Context, client *minio.Client, bucket, prefix string) (*ObjectStore, error) {
	return newObjectStoreWithAPI(ctx, minioClientWrapper{c: client}, bucket, prefix)
}

func newObjectStoreWithAPI(ctx context.Context, api objectAPI, bucket, prefix string) (*ObjectStore, error) {
	s := &ObjectStore{api: api, bucket: bucket, prefix: prefix}
	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("docstore: %w", err)
	}
	return s, nil
}

func (s *ObjectStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// objectName maps a document key to its object path.
func (s *ObjectStore) objectName(key string) string {
	return s.prefix + key + ".json"
}

// Fetch implements Store. MinIO reports a missing object either on
// GetObject or on the first Read, so both paths map NoSuchKey.
func (s *ObjectStore) Fetch(ctx context.Context, userID string) ([]byte, error) {
	key := Key(userID)

	rc, err := s.api.GetObject(ctx, s.bucket, s.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, unavailable("fetch", key, err)
	}
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, unavailable("fetch", key, err)
	}
	return body, nil
}

// Write implements Store.
func (s *ObjectStore) Write(ctx context.Context, userID string, doc []byte) error {
	key := Key(userID)
	_, err := s.api.PutObject(ctx, s.bucket, s.objectName(key), bytes.NewReader(doc), int64(len(doc)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return unavailable("write", key, err)
	}
	return nil
}

// Close implements Handle. The MinIO client holds no connection to release.
func (s *ObjectStore) Close() error { return nil }

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
