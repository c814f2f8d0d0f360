package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecocart/storefront/internal/cart/domain"
)

// FileStore persists the cart as a JSON snapshot on local disk, the server
// side equivalent of the browser's localStorage cart.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns an empty cart when no snapshot exists yet. A snapshot that
// exists but cannot be decoded is reported so the caller can start empty.
func (f *FileStore) Load() (domain.Cart, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Cart{}, nil
		}
		return domain.Cart{}, fmt.Errorf("read snapshot: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return cart, nil
}

// Save writes the snapshot through a temp file and rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (f *FileStore) Save(cart domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("swap snapshot: %w", err)
	}
	return nil
}
