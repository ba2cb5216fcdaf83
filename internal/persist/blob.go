package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/store"
)

var _ store.Persister = (*Blob)(nil)

// DefaultBlobTimeout bounds a single load or save against blob storage.
const DefaultBlobTimeout = 5 * time.Second

// Blob keeps the snapshot as one object in a model.Storage.
type Blob struct {
	storage model.Storage
	key     string
	timeout time.Duration
}

// NewBlob returns a Blob persister storing the snapshot under key.
func NewBlob(storage model.Storage, key string, timeout time.Duration) *Blob {
	if timeout <= 0 {
		timeout = DefaultBlobTimeout
	}
	return &Blob{storage: storage, key: key, timeout: timeout}
}

func (b *Blob) Load() (store.Snapshot, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	rc, err := b.storage.Download(ctx, b.key)
	if errors.Is(err, model.ErrNotFound) {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snapshot, err := store.DecodeSnapshot(data)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (b *Blob) Save(snapshot store.Snapshot) error {
	data, err := store.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.storage.Upload(ctx, b.key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}
