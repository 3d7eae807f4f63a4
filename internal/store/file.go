package store

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const fileNamePattern = "kv_%s.json" // keyed by hash

// File stores one JSON file per key inside a directory.
type File struct {
	dir string
}

// fileEntry is the on-disk format. The key is kept alongside the value so a
// hash collision is detected rather than returning another key's data.
type fileEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFile creates a File store rooted at dir.
// If dir is empty, it defaults to ~/.local/share/prayer-planner/.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "prayer-planner")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %s: %w", dir, err)
	}

	return &File{dir: dir}, nil
}

// fileKey builds a deterministic, filesystem-safe name for a key.
func fileKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, fmt.Sprintf(fileNamePattern, fileKey(key)))
}

// Get implements Store.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false, fmt.Errorf("corrupt store file for %q: %w", key, err)
	}
	if entry.Key != key {
		return "", false, nil
	}
	return entry.Value, true, nil
}

// Set implements Store. Writes go through a temp file and a rename.
func (f *File) Set(_ context.Context, key, value string) error {
	data, err := json.Marshal(fileEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal store entry: %w", err)
	}

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
