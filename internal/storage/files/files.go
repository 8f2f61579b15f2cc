package files

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads"

// Store keeps uploaded payment screenshots on local disk.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates the upload directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes image bytes under a random name derived from the original
// extension and returns the public URL path of the stored file.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", domainErrors.ErrEmptyImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join(PublicPrefix, name), nil
}

// Remove deletes the file behind a public URL path. A missing file is
// not an error; orders may reference images that were cleaned up.
func (s *Store) Remove(publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
