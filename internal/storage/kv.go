package storage

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrNotFound is returned by KVStore.Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// validKeyPattern restricts keys to characters that are safe as file names.
var validKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// KVStore is key-value byte storage. Put overwrites the whole value.
type KVStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

func validateKey(key string) error {
	if !validKeyPattern.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV creates a KVStore that keeps values in process memory.
func NewMemoryKV() KVStore {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryKV) Put(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *memoryKV) Close() error {
	return nil
}
