package session

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// Well-known keys. Values are stored as strings; booleans use "true"/"false".
const (
	KeyToken       = "token"
	KeyIsLoggedIn  = "is_logged_in"
	KeyURL         = "url"
	KeySite        = "site"
	KeySelectedEID = "selected_eid"
	KeyVibrate     = "vibrate"
	KeyBeep        = "beep"
)

// ErrNotFound is returned by Get for a key that was never set.
var ErrNotFound = errors.New("session: key not found")

// Store is a small persistent key/value file holding the device session:
// the backend token, the selected site and event, and scanner preferences.
// When constructed with a key the file is sealed with XChaCha20-Poly1305;
// without one it is plain JSON, for development setups.
type Store struct {
	mu   sync.Mutex
	path string
	key  []byte
	data map[string]string
}

// New opens (or creates) the store at path. key must be nil or exactly 32
// bytes. An unreadable or undecryptable file is treated as corrupt and
// reported, not silently reset.
func New(path string, key []byte) (*Store, error) {
	if key != nil && len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("session: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	s := &Store{path: path, key: key, data: map[string]string{}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: read %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return nil
	}

	if s.key != nil {
		aead, err := chacha20poly1305.NewX(s.key)
		if err != nil {
			return fmt.Errorf("session: init cipher: %w", err)
		}
		if len(raw) < aead.NonceSize() {
			return fmt.Errorf("session: %s is truncated", s.path)
		}
		nonce, box := raw[:aead.NonceSize()], raw[aead.NonceSize():]
		raw, err = aead.Open(nil, nonce, box, nil)
		if err != nil {
			return fmt.Errorf("session: decrypt %s: %w", s.path, err)
		}
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return fmt.Errorf("session: parse %s: %w", s.path, err)
	}
	return nil
}

// flush writes the whole map back to disk under the lock.
func (s *Store) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	if s.key != nil {
		aead, err := chacha20poly1305.NewX(s.key)
		if err != nil {
			return fmt.Errorf("session: init cipher: %w", err)
		}
		nonce := make([]byte, aead.NonceSize())
		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("session: nonce: %w", err)
		}
		raw = aead.Seal(nonce, nonce, raw, nil)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}

// Get returns the value for key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// GetDefault returns the value for key, or def when the key is absent.
func (s *Store) GetDefault(key, def string) string {
	if v, err := s.Get(key); err == nil {
		return v
	}
	return def
}

// snapshotLocked copies the map so a failed flush can restore it; memory
// never gets ahead of disk.
func (s *Store) snapshotLocked() map[string]string {
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Set stores key=value and persists immediately.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.snapshotLocked()
	s.data[key] = value
	if err := s.flush(); err != nil {
		s.data = old
		return err
	}
	return nil
}

// SetAll stores several keys in one write.
func (s *Store) SetAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.snapshotLocked()
	for k, v := range values {
		s.data[k] = v
	}
	if err := s.flush(); err != nil {
		s.data = old
		return err
	}
	return nil
}

// Delete removes keys and persists. Missing keys are not an error.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.snapshotLocked()
	for _, k := range keys {
		delete(s.data, k)
	}
	if err := s.flush(); err != nil {
		s.data = old
		return err
	}
	return nil
}

// Clear wipes the whole session, used on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.data
	s.data = map[string]string{}
	if err := s.flush(); err != nil {
		s.data = old
		return err
	}
	return nil
}
