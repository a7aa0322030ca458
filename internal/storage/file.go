package storage

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// FileStore persists keys as a single JSON object on disk. Writes are
// synchronous; concurrent processes sharing the file may race, which is the
// accepted single-tab limitation of the original storage model.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{path: path, values: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fs.values); err != nil {
			// A corrupt file is treated as empty rather than fatal.
			fs.values = make(map[string]string)
		}
	}
	return fs, nil
}

func (f *FileStore) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flush()
}

func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

func (f *FileStore) flush() error {
	raw, err := json.Marshal(f.values)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}
