// Package storage persists the HR state as one versioned JSON blob on a key-value medium.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/celerix-dev/celerix-hrms/internal/vault"
)

var (
	// ErrKeyNotFound is returned by a Medium when nothing is stored under a key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrStorageUnavailable is returned when there is no medium to write to.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrMalformedState is returned when a stored blob cannot be accepted.
	ErrMalformedState = errors.New("malformed persisted state")
)

// Medium is a flat key-value store of raw bytes.
type Medium interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemoryMedium keeps values in process memory.
type MemoryMedium struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: make(map[string][]byte)}
}

func (m *MemoryMedium) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryMedium) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

// FileMedium stores each key as <dir>/<key>.json.
type FileMedium struct {
	Dir string
	mu  sync.Mutex // serialises writes to the directory
}

// NewFileMedium creates dir if needed.
func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileMedium{Dir: dir}, nil
}

func (f *FileMedium) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(f.Dir, key+".json"), nil
}

func (f *FileMedium) Get(key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	return b, err
}

// Set writes to a temporary file and renames it over the target, so a crash
// leaves either the old blob or the new one.
func (f *FileMedium) Set(key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// SealedMedium encrypts values with a vault key before handing them to Inner.
type SealedMedium struct {
	Inner Medium
	key   []byte
}

func NewSealedMedium(inner Medium, key []byte) (*SealedMedium, error) {
	if len(key) != vault.KeySize {
		return nil, vault.ErrKeySize
	}
	return &SealedMedium{Inner: inner, key: append([]byte(nil), key...)}, nil
}

func (s *SealedMedium) Get(key string) ([]byte, error) {
	sealed, err := s.Inner.Get(key)
	if err != nil {
		return nil, err
	}
	plain, err := vault.Open(sealed, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return plain, nil
}

func (s *SealedMedium) Set(key string, value []byte) error {
	sealed, err := vault.Seal(value, s.key)
	if err != nil {
		return err
	}
	return s.Inner.Set(key, sealed)
}
