package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront/internal/model"
)

// memObjects is an in-memory objectAPI.
type memObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	objects     map[string][]byte
	lastSize    int64
	lastOptions minioLib.PutObjectOptions

	putErr    error
	getErr    error
	removeErr error
	statErr   error
}

func newMemObjects() *memObjects {
	return &memObjects{bucketExists: true, objects: map[string][]byte{}}
}

func (m *memObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return m.bucketExists, m.bucketExistsErr
}

func (m *memObjects) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	if m.makeBucketErr != nil {
		return m.makeBucketErr
	}
	m.madeBucket = true
	return nil
}

func (m *memObjects) PutObject(_ context.Context, _ string, name string, reader io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if m.putErr != nil {
		return minioLib.UploadInfo{}, m.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	m.objects[name] = data
	m.lastSize = size
	m.lastOptions = opts
	return minioLib.UploadInfo{Key: name, Size: int64(len(data))}, nil
}

func (m *memObjects) GetObject(_ context.Context, _ string, name string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return io.NopCloser(bytes.NewReader(m.objects[name])), nil
}

func (m *memObjects) RemoveObject(_ context.Context, _ string, name string, _ minioLib.RemoveObjectOptions) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.objects, name)
	return nil
}

func (m *memObjects) StatObject(_ context.Context, _ string, name string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	if m.statErr != nil {
		return minioLib.ObjectInfo{}, m.statErr
	}
	if _, ok := m.objects[name]; !ok {
		return minioLib.ObjectInfo{}, minioLib.ErrorResponse{Code: "NoSuchKey"}
	}
	return minioLib.ObjectInfo{Key: name}, nil
}

func TestNewClient_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		api := newMemObjects()
		c, err := newClient(ctx, api, "snapshots")
		require.NoError(t, err)
		assert.Equal(t, "snapshots", c.bucket)
		assert.False(t, api.madeBucket)
	})

	t.Run("missing bucket is created", func(t *testing.T) {
		api := newMemObjects()
		api.bucketExists = false
		_, err := newClient(ctx, api, "snapshots")
		require.NoError(t, err)
		assert.True(t, api.madeBucket)
	})

	t.Run("exists check fails", func(t *testing.T) {
		api := newMemObjects()
		api.bucketExistsErr = errors.New("boom")
		c, err := newClient(ctx, api, "snapshots")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})

	t.Run("create fails", func(t *testing.T) {
		api := newMemObjects()
		api.bucketExists = false
		api.makeBucketErr = errors.New("denied")
		_, err := newClient(ctx, api, "snapshots")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create bucket")
	})
}

func TestClient_UploadDownload(t *testing.T) {
	ctx := context.Background()
	api := newMemObjects()
	c, err := newClient(ctx, api, "b", WithPrefix("clients/42"), WithContentType("application/json"))
	require.NoError(t, err)

	require.NoError(t, c.Upload(ctx, "viento-store", bytes.NewReader([]byte(`{"v":1}`))))
	assert.Contains(t, api.objects, "clients/42/viento-store")
	assert.Equal(t, int64(7), api.lastSize)
	assert.Equal(t, "application/json", api.lastOptions.ContentType)

	rc, err := c.Download(ctx, "viento-store")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(data))
}

func TestClient_UploadUnknownSize(t *testing.T) {
	ctx := context.Background()
	api := newMemObjects()
	c, err := newClient(ctx, api, "b")
	require.NoError(t, err)

	require.NoError(t, c.Upload(ctx, "k", io.MultiReader(bytes.NewReader([]byte("abc")))))
	assert.Equal(t, int64(-1), api.lastSize)
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("upload", func(t *testing.T) {
		api := newMemObjects()
		api.putErr = errors.New("put-fail")
		c := &Client{api: api, bucket: "b"}
		err := c.Upload(ctx, "k", bytes.NewReader(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})

	t.Run("download missing", func(t *testing.T) {
		c := &Client{api: newMemObjects(), bucket: "b"}
		rc, err := c.Download(ctx, "absent")
		assert.Nil(t, rc)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("download get fails", func(t *testing.T) {
		api := newMemObjects()
		api.objects["k"] = []byte("x")
		api.getErr = errors.New("get-fail")
		c := &Client{api: api, bucket: "b"}
		_, err := c.Download(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})

	t.Run("delete", func(t *testing.T) {
		api := newMemObjects()
		api.removeErr = errors.New("remove-fail")
		c := &Client{api: api, bucket: "b"}
		err := c.Delete(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})

	t.Run("stat", func(t *testing.T) {
		api := newMemObjects()
		api.statErr = errors.New("stat-fail")
		c := &Client{api: api, bucket: "b"}
		ok, err := c.Exists(ctx, "k")
		assert.False(t, ok)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stat object")
	})
}

func TestClient_ExistsAndDelete(t *testing.T) {
	ctx := context.Background()
	api := newMemObjects()
	c := &Client{api: api, bucket: "b"}

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Upload(ctx, "k", bytes.NewReader([]byte("x"))))
	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))
	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
