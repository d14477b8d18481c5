package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the session as a JSON file, the CLI analogue of
// browser storage. The file is created with mode 0600 since it holds a
// bearer token.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "carelink", "session.json"), nil
}

func (f *FileStore) Current() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Token == "" || !s.Role.Valid() {
		// A corrupt or tampered file is the same as no session.
		return nil, ErrNoSession
	}
	return &s, nil
}

func (f *FileStore) Set(s *Session) error {
	if s == nil {
		return fmt.Errorf("nil session")
	}
	if !s.Role.Valid() {
		return fmt.Errorf("refusing to store session with role %q", s.Role)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemStore is an in-memory store for tests and the embedded demo flows.
type MemStore struct {
	mu   sync.Mutex
	sess *Session
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, ErrNoSession
	}
	cp := *m.sess
	return &cp, nil
}

func (m *MemStore) Set(s *Session) error {
	if s == nil {
		return fmt.Errorf("nil session")
	}
	if !s.Role.Valid() {
		return fmt.Errorf("refusing to store session with role %q", s.Role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sess = &cp
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
