package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AssetStore persists uploaded bytes and returns a public path under which
// the asset can be retrieved.
type AssetStore interface {
	Save(ctx context.Context, category, filename string, r io.Reader) (string, error)
}

// diskStore writes uploads below a root directory that is served under
// /uploads by the HTTP router.
type diskStore struct {
	root string
}

func NewDiskStore(root string) (AssetStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	return &diskStore{root: root}, nil
}

func (s *diskStore) Save(ctx context.Context, category, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(dir, filename)
	f, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", err
	}

	return fmt.Sprintf("/uploads/%s/%s", category, filename), nil
}
