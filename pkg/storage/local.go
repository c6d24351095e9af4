package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage writes uploads to a directory that the HTTP server exposes
// under /uploads.
type LocalStorage struct {
	dir       string
	publicURL string
	now       func() time.Time
}

func NewLocalStorage(dir, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, publicURL: strings.TrimRight(publicURL, "/"), now: time.Now}, nil
}

func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) ObjectName(filename string) string {
	return localName(filename, s.now())
}

func (s *LocalStorage) Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return s.publicURL + "/uploads/" + url.PathEscape(key), nil
}

// Delete accepts a public URL or a bare file name. A missing file is not an error.
func (s *LocalStorage) Delete(ctx context.Context, fileURL string) error {
	name := fileURL
	if i := strings.LastIndex(fileURL, "/uploads/"); i >= 0 {
		name = fileURL[i+len("/uploads/"):]
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		return nil
	}
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// resolve keeps every path inside the upload directory.
func (s *LocalStorage) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
