package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

// StorageKey names the persisted record in whatever backend holds it.
const StorageKey = "viento-store"

// snapshotVersion is bumped when the persisted layout changes incompatibly.
const snapshotVersion = 0

// Persister loads and saves the persisted part of the state. Save is called
// on every change to that part, so implementations should be quick.
type Persister interface {
	// Load returns false when nothing has been persisted yet.
	Load() (Snapshot, bool, error)
	Save(snapshot Snapshot) error
}

// Snapshot is the persisted subset of State.
type Snapshot struct {
	CartItems        []model.CartItem `json:"cartItems"`
	SelectedCategory *uuid.UUID       `json:"selectedCategory"`
	User             *model.User      `json:"user"`
	Session          *model.Session   `json:"session"`
}

type envelope struct {
	State   Snapshot `json:"state"`
	Version int      `json:"version"`
}

// EncodeSnapshot serializes a snapshot into its persisted JSON form.
func EncodeSnapshot(snapshot Snapshot) ([]byte, error) {
	if snapshot.CartItems == nil {
		snapshot.CartItems = []model.CartItem{}
	}

	data, err := json.Marshal(envelope{State: snapshot, Version: snapshotVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses the persisted JSON form.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if env.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	return env.State, nil
}
