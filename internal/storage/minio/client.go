package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/storefront/internal/model"
)

// objectAPI is the subset of *minio.Client the storage client needs.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

type clientAdapter struct{ c *minio.Client }

func (a clientAdapter) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return a.c.BucketExists(ctx, bucketName)
}

func (a clientAdapter) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return a.c.MakeBucket(ctx, bucketName, opts)
}

func (a clientAdapter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return a.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (a clientAdapter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := a.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (a clientAdapter) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return a.c.RemoveObject(ctx, bucketName, objectName, opts)
}

func (a clientAdapter) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return a.c.StatObject(ctx, bucketName, objectName, opts)
}

var _ model.Storage = (*Client)(nil)

// Client stores blobs as objects under a prefix of a single bucket.
type Client struct {
	api         objectAPI
	bucket      string
	prefix      string
	contentType string
}

// Option configures a Client.
type Option func(*Client)

// WithPrefix places every key under prefix.
func WithPrefix(prefix string) Option {
	return func(c *Client) { c.prefix = prefix }
}

// WithContentType sets the content type written with every object.
func WithContentType(contentType string) Option {
	return func(c *Client) { c.contentType = contentType }
}

// NewClient creates a storage client on top of a real *minio.Client.
func NewClient(ctx context.Context, client *minio.Client, bucket string, opts ...Option) (*Client, error) {
	return newClient(ctx, clientAdapter{c: client}, bucket, opts...)
}

func newClient(ctx context.Context, api objectAPI, bucket string, opts ...Option) (*Client, error) {
	c := &Client{
		api:         api,
		bucket:      bucket,
		contentType: "application/octet-stream",
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (c *Client) objectName(key string) string {
	if c.prefix == "" {
		return key
	}
	return path.Join(c.prefix, key)
}

// Upload writes reader to key, replacing any existing object.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader) error {
	size := int64(-1)
	if l, ok := reader.(interface{ Len() int }); ok {
		size = int64(l.Len())
	}

	_, err := c.api.PutObject(ctx, c.bucket, c.objectName(key), reader, size, minio.PutObjectOptions{
		ContentType: c.contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download opens the object at key. A missing object yields model.ErrNotFound.
func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	exists, err := c.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	obj, err := c.api.GetObject(ctx, c.bucket, c.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

// Delete removes the object at key.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.api.RemoveObject(ctx, c.bucket, c.objectName(key), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists reports whether an object is stored at key.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.api.StatObject(ctx, c.bucket, c.objectName(key), minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
