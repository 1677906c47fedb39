package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFileName is held for the lifetime of a FileKV so only one process
// writes the data directory at a time.
const lockFileName = ".stm.lock"

type fileKV struct {
	dir  string
	ext  string
	lock *flock.Flock
}

// NewFileKV creates a KVStore that keeps each key in its own file under dir,
// named <key>.<ext>. It fails if another process holds the directory lock.
func NewFileKV(dir, ext string) (KVStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("opening file store: creating directory: %w", err)
	}

	lk := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("opening file store: acquiring lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("opening file store: %s is in use by another process", dir)
	}

	return &fileKV{dir: dir, ext: ext, lock: lk}, nil
}

func (f *fileKV) path(key string) string {
	name := key
	if f.ext != "" {
		name += "." + f.ext
	}
	return filepath.Join(f.dir, name)
}

func (f *fileKV) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Put writes value to a temporary file and renames it over the old one, so a
// crash mid-write never leaves a truncated value behind.
func (f *fileKV) Put(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	target := f.path(key)
	tmp := target + ".tmp"
	defer func() { _ = os.Remove(tmp) }()

	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("writing %s: replacing file: %w", key, err)
	}
	return nil
}

func (f *fileKV) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (f *fileKV) Close() error {
	if err := f.lock.Unlock(); err != nil {
		return fmt.Errorf("closing file store: %w", err)
	}
	return nil
}
