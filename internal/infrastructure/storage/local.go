package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/pkg/id"
)

// Store persists uploaded receipts and returns the relative path recorded on
// the claim.
type Store interface {
	Save(fh *multipart.FileHeader, subdir string) (string, error)
	Remove(path string) error
}

// LocalStore writes uploads under a base directory, one subdirectory per
// receipt category, with randomized names so original filenames never leak
// into paths.
type LocalStore struct {
	base string
}

func NewLocalStore(base string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{base: base}, nil
}

func (s *LocalStore) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(s.base, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := id.NewID32() + strings.ToLower(filepath.Ext(fh.Filename))
	full := filepath.Join(dir, name)
	dst, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(full)
		return "", err
	}
	return filepath.Join(subdir, name), nil
}

func (s *LocalStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.base, path))
}

// RequirePDF gates the special approval document, which must be a PDF.
func RequirePDF(fh *multipart.FileHeader) error {
	if strings.ToLower(filepath.Ext(fh.Filename)) != ".pdf" {
		return expense.Invalid("special approval document must be a PDF")
	}
	return nil
}
