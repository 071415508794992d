package keyvault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists key material on disk, one encrypted envelope per key
// role. Files are written 0600 inside a 0700 directory; the envelope key is
// derived from a device secret (typically an OS-keychain-held value or a
// user passphrase) so key material is never at rest in the clear.
type FileStore struct {
	dir    string
	secret []byte
	mu     sync.Mutex
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, deviceSecret []byte) (*FileStore, error) {
	if len(deviceSecret) == 0 {
		return nil, errors.New("device secret is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key store dir: %w", err)
	}

	secret := make([]byte, len(deviceSecret))
	copy(secret, deviceSecret)
	return &FileStore{dir: dir, secret: secret}, nil
}

// Get implements Store.
func (s *FileStore) Get(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return openEnvelope(s.secret, blob)
}

// Put implements Store.
func (s *FileStore) Put(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	N, r, p := scryptParamsDefault()
	blob, err := sealEnvelope(s.secret, data, N, r, p)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), blob, 0o600)
}

// Clear implements Store. It removes every stored envelope.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".enc") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) path(name string) string {
	// Role names are internal constants, but keep the filename boring anyway.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return filepath.Join(s.dir, safe+".enc")
}
