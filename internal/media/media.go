package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akulinich/foodgram-backend/internal/logger"
)

// Store writes uploaded media (recipe images, generated avatars) under a
// single root directory. Files are addressed by a category-relative path and
// served back over /media/.
type Store struct {
	root string
	log  *logger.Logger
}

func NewStore(root string, log *logger.Logger) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("media root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root %s: %w", root, err)
	}
	return &Store{root: root, log: log.With("service", "MediaStore")}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Save writes data under <root>/<category>/<name> and returns the path
// relative to the root.
func (s *Store) Save(category, name string, data []byte) (string, error) {
	rel := filepath.Join(category, name)
	full := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file %s: %w", rel, err)
	}
	return rel, nil
}

func (s *Store) Remove(rel string) error {
	if strings.TrimSpace(rel) == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.root, rel))
}

// URLPath maps a stored relative path to the public URL it is served from.
func (s *Store) URLPath(rel string) string {
	if rel == "" {
		return ""
	}
	return "/media/" + filepath.ToSlash(rel)
}
