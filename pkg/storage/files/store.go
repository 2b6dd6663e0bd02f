package files

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps uploads on local disk under one base directory.
type Store struct {
	baseDir string
}

// New prepares the base directory and returns a store rooted there.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes data under name and returns the storage path together with
// the sha-256 checksum of the content. A write that fails midway removes
// the partial file before returning.
func (s *Store) Save(name string, data []byte) (string, string, error) {
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	dst := filepath.Join(s.baseDir, filepath.Base(name))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		_ = os.Remove(dst)
		return "", "", fmt.Errorf("store file: %w", err)
	}
	return dst, checksum, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
