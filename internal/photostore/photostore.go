// Package photostore persists uploaded photos on the local filesystem,
// grouped by kind (rental returns, issue reports).
package photostore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the uploads directory, for static serving.
func (s *Store) Root() string {
	return s.root
}

// Save writes an uploaded file under <root>/<kind>/ and returns its relative
// reference ("<kind>/<name>").
func (s *Store) Save(file *multipart.FileHeader, kind string) (string, error) {
	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext(file.Filename))
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(kind, name)), nil
}

func ext(filename string) string {
	e := filepath.Ext(filename)
	if e == "" {
		return ".jpg"
	}
	return e
}
