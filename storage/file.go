package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/openreports/report-registry-client/interfaces"
)

// FileStore implements a content store on the local file system, addressed
// by the SHA-256 hash of the payload. It exists for development and tests.
type FileStore struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileStore creates a file content store under the specified directory.
func NewFileStore(baseDir string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileStore{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Upload writes the payload to disk and returns its hash as content id.
func (s *FileStore) Upload(ctx context.Context, data []byte) (interfaces.ContentID, error) {
	hash := sha256.Sum256(data)
	id := interfaces.ContentID(hex.EncodeToString(hash[:]))

	path := filepath.Join(s.baseDir, id.String())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write payload: %w", err)
	}

	s.log.Debug("Stored payload in file store",
		slog.String("path", path),
		slog.Int("size", len(data)))

	return id, nil
}

// Fetch reads a payload back by its content id.
func (s *FileStore) Fetch(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	path := filepath.Join(s.baseDir, id.String())

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, interfaces.ErrContentNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	return data, nil
}

// Available checks that the base directory exists.
func (s *FileStore) Available(ctx context.Context) bool {
	_, err := os.Stat(s.baseDir)
	return err == nil
}

// ContentURL returns a file URL for the payload.
func (s *FileStore) ContentURL(id interfaces.ContentID) string {
	return fmt.Sprintf("file://%s", filepath.Join(s.baseDir, id.String()))
}

// Name returns a unique identifier for this store backend.
func (s *FileStore) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.baseDir))
}

// LocationURI returns the URI that identifies this store backend.
func (s *FileStore) LocationURI() string {
	return s.locationURI
}
