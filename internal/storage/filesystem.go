package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists campaign cover images on the local filesystem. It is
// intended for development and single-node deployments where an object
// storage service is not available.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Write persists the provided bytes under a key derived from the campaign id
// and extension, and returns the storage key. Keys are cleaned to prevent
// directory traversal.
func (s *FileStore) Write(campaignID, ext string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: not initialized")
	}
	key := cleanKey("covers/" + campaignID + ext)
	if key == "" {
		return "", fmt.Errorf("storage: invalid key for campaign %q", campaignID)
	}
	path := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	return key, nil
}

// Open returns the absolute path for a stored key, verifying it stays inside
// the store root.
func (s *FileStore) Open(key string) (string, error) {
	if s == nil {
		return "", errors.New("storage: not initialized")
	}
	cleaned := cleanKey(key)
	if cleaned == "" {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	path := filepath.Join(s.basePath, filepath.FromSlash(cleaned))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("storage: stat %s: %w", cleaned, err)
	}
	return path, nil
}

func cleanKey(key string) string {
	cleaned := filepath.ToSlash(filepath.Clean(strings.TrimSpace(key)))
	if cleaned == "." || cleaned == "/" || strings.HasPrefix(cleaned, "../") || strings.HasPrefix(cleaned, "/") {
		return ""
	}
	return cleaned
}
