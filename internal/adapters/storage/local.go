package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bitevents/internal/domain"
)

// localStore keeps uploaded blobs on the local filesystem under baseDir and
// serves them under urlPrefix (e.g. "/uploads").
type localStore struct {
	baseDir   string
	urlPrefix string
}

// NewLocalStore returns a FileStore rooted at baseDir.
func NewLocalStore(baseDir, urlPrefix string) domain.FileStore {
	return &localStore{
		baseDir:   baseDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (s *localStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	dest := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.urlPrefix + "/" + filepath.ToSlash(clean), nil
}

// Remove deletes the blob behind a URL previously returned by Save.
// Removing an already-absent file is not an error.
func (s *localStore) Remove(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.urlPrefix+"/")
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	err := os.Remove(filepath.Join(s.baseDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
