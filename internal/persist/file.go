package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dtroode/storefront/internal/store"
)

var _ store.Persister = (*File)(nil)

// File keeps the snapshot in a single JSON file. Writes go to a temporary
// file in the same directory which then replaces the target.
type File struct {
	path string
}

// NewFile returns a File persister writing to dir/<key>.json.
func NewFile(dir, key string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &File{path: filepath.Join(dir, key+".json")}, nil
}

// Path returns the file the snapshot is written to.
func (f *File) Path() string {
	return f.path
}

func (f *File) Load() (store.Snapshot, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("failed to read state file: %w", err)
	}

	snapshot, err := store.DecodeSnapshot(data)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (f *File) Save(snapshot store.Snapshot) error {
	data, err := store.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
