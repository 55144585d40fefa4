// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ripplesocial/ripple/internal/platform/constants"
)

// # Credential Storage

// Keystore is the durable slot holding the credential pair between runs.
//
// # Lifecycle
//
// Both tokens are written together on register/login, read on every
// authenticated request, and deleted together on logout or rehydration
// failure. Access is last-writer-wins; implementations must be safe for
// concurrent use.
type Keystore interface {
	// Access returns the persisted access token, or "" when absent.
	Access() (string, error)
	// Refresh returns the persisted refresh token, or "" when absent.
	Refresh() (string, error)
	// SetPair persists both tokens together.
	SetPair(access, refresh string) error
	// Clear deletes both tokens. Clearing an empty store is a no-op.
	Clear() error
}

// # File-Backed Keystore

// FileKeystore persists the credential pair as a small JSON file, the
// durable-storage analog of a browser's localStorage slot.
//
// # Security
//
// The file and its parent directory are created with owner-only permissions
// (0600 / 0700). Tokens are opaque strings; the remote server is the only
// party that can validate them.
type FileKeystore struct {
	path string
	mu   sync.Mutex
}

// NewFileKeystore constructs a [FileKeystore] rooted at path.
// The file is created lazily on the first write.
func NewFileKeystore(path string) *FileKeystore {
	return &FileKeystore{path: path}
}

// Access returns the persisted access token, or "" when absent.
func (store *FileKeystore) Access() (string, error) {
	pair, err := store.read()
	if err != nil {
		return "", err
	}
	return pair[constants.KeystoreAccessKey], nil
}

// Refresh returns the persisted refresh token, or "" when absent.
func (store *FileKeystore) Refresh() (string, error) {
	pair, err := store.read()
	if err != nil {
		return "", err
	}
	return pair[constants.KeystoreRefreshKey], nil
}

// SetPair persists both tokens together.
//
// The write is atomic: a temp file in the same directory is renamed over
// the target, so a crash mid-write never leaves a truncated token file.
func (store *FileKeystore) SetPair(access, refresh string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("keystore: create directory: %w", err)
	}

	raw, err := json.Marshal(map[string]string{
		constants.KeystoreAccessKey:  access,
		constants.KeystoreRefreshKey: refresh,
	})
	if err != nil {
		return fmt.Errorf("keystore: marshal tokens: %w", err)
	}

	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("keystore: write tokens: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		return fmt.Errorf("keystore: commit tokens: %w", err)
	}

	return nil
}

// Clear deletes the token file. A missing file is not an error.
func (store *FileKeystore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("keystore: clear tokens: %w", err)
	}
	return nil
}

// read loads the token file. A missing file yields an empty pair.
func (store *FileKeystore) read() (map[string]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	raw, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("keystore: read tokens: %w", err)
	}

	pair := map[string]string{}
	if err := json.Unmarshal(raw, &pair); err != nil {
		// A corrupt token file is equivalent to no tokens: the next
		// rehydration will fail closed into the anonymous state.
		return map[string]string{}, nil
	}
	return pair, nil
}

// # In-Memory Keystore

// MemoryKeystore is a volatile [Keystore] for tests and ephemeral sessions.
type MemoryKeystore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryKeystore constructs an empty [MemoryKeystore].
func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{}
}

// Access returns the stored access token, or "" when absent.
func (store *MemoryKeystore) Access() (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.access, nil
}

// Refresh returns the stored refresh token, or "" when absent.
func (store *MemoryKeystore) Refresh() (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.refresh, nil
}

// SetPair stores both tokens together.
func (store *MemoryKeystore) SetPair(access, refresh string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.access, store.refresh = access, refresh
	return nil
}

// Clear deletes both tokens.
func (store *MemoryKeystore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.access, store.refresh = "", ""
	return nil
}
