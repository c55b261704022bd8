package storefront

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore persists the authentication token across client restarts.
// Get returns "" when no token is held. Writes are best-effort: a failed
// persist does not invalidate the in-process session.
type TokenStore interface {
	Get() string
	Set(token string) error
	Delete() error
}

// tokenFile is the on-disk format of the file token store.
type tokenFile struct {
	Token string `json:"token"`
}

// FileTokenStore persists the token to a JSON file with atomic writes.
type FileTokenStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewFileTokenStore creates or opens a token store at the given path.
// If the file doesn't exist, an empty store is created. If the directory
// doesn't exist, it is created with 0700 permissions.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	store := &FileTokenStore{path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	if err := store.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return store, nil
}

// load reads the persisted token from disk. Returns os.ErrNotExist if the
// file doesn't exist, which is not an error for new stores.
func (s *FileTokenStore) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	// Empty file is valid - treat as no token
	if len(data) == 0 {
		return nil
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("token store corrupted: %w", err)
	}

	s.token = tf.Token
	return nil
}

// syncLocked writes the token atomically using the temp file + rename
// pattern. Must be called with the write lock held.
func (s *FileTokenStore) syncLocked() error {
	data, err := json.Marshal(tokenFile{Token: s.token})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// Get returns the persisted token, or "" if none.
func (s *FileTokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set persists the token. An empty token is equivalent to Delete.
func (s *FileTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s.syncLocked()
}

// Delete removes the persisted token.
func (s *FileTokenStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return s.syncLocked()
}

// Path returns the store file path.
func (s *FileTokenStore) Path() string {
	return s.path
}

// MemoryTokenStore holds the token in process memory only.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// NoopTokenStore is the token store for environments without persistent
// storage: it never holds a token and silently accepts writes. Callers that
// fail to open a FileTokenStore should degrade to this rather than erroring.
type NoopTokenStore struct{}

func (NoopTokenStore) Get() string      { return "" }
func (NoopTokenStore) Set(string) error { return nil }
func (NoopTokenStore) Delete() error    { return nil }
