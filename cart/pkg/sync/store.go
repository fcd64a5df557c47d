package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	gosync "sync"
)

// LocalStore persists design-studio cart items on the device until a
// reconciliation run hands them to the server.
type LocalStore interface {
	Load(c context.Context) ([]LocalCartItem, error)
	Save(c context.Context, items []LocalCartItem) error
	Clear(c context.Context) error
}

// FileStore keeps the local cart in a single JSON file. A missing file
// reads as an empty cart.
type FileStore struct {
	mu   gosync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(_ context.Context) ([]LocalCartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading local cart file=%s with error=%w", f.path, err)
	}
	items := []LocalCartItem{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed decoding local cart file=%s with error=%w", f.path, err)
	}
	return items, nil
}

func (f *FileStore) Save(_ context.Context, items []LocalCartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed encoding local cart with error=%w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed writing local cart file=%s with error=%w", f.path, err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed removing local cart file=%s with error=%w", f.path, err)
	}
	return nil
}
