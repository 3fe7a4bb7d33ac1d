// Package blob persists uploaded files (CVs, validation documents,
// attachments) and hands back a public reference.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Meta describes an upload.
type Meta struct {
	Filename    string
	ContentType string
	Folder      string // e.g. "cv", "documents"
}

// Store is the blob-store contract: Store returns the public URL, Delete is
// best-effort and never fails the caller. Owns reports whether url points
// inside the store.
type Store interface {
	Store(ctx context.Context, r io.Reader, meta Meta) (string, error)
	Delete(ctx context.Context, url string)
	Owns(url string) bool
}

var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
}

// LocalStore writes files below Dir and serves them under PublicURL.
type LocalStore struct {
	Dir       string
	PublicURL string
	MaxBytes  int64
}

func NewLocalStore(dir, publicURL string, maxBytes int64) *LocalStore {
	return &LocalStore{Dir: dir, PublicURL: strings.TrimRight(publicURL, "/"), MaxBytes: maxBytes}
}

var _ Store = (*LocalStore)(nil)

func sanitizeFolder(folder string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" || folder == "." {
		return "misc"
	}
	return strings.ReplaceAll(folder, "..", "")
}

func (s *LocalStore) Store(_ context.Context, r io.Reader, meta Meta) (string, error) {
	ext := strings.ToLower(filepath.Ext(meta.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	folder := sanitizeFolder(meta.Folder)
	dir := filepath.Join(s.Dir, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	src := r
	if s.MaxBytes > 0 {
		src = io.LimitReader(r, s.MaxBytes+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.MaxBytes > 0 && n > s.MaxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	url := s.PublicURL + "/" + folder + "/" + name
	log.Printf("Blob stored: %s (%d bytes)", url, n)
	return url, nil
}

// relPath returns the path of url below PublicURL.
func (s *LocalStore) relPath(url string) (string, bool) {
	rel, ok := strings.CutPrefix(url, s.PublicURL+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") || strings.ContainsAny(rel, "?#\\") {
		return "", false
	}
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == "" {
		return "", false
	}
	return rel, true
}

func (s *LocalStore) Owns(url string) bool {
	_, ok := s.relPath(url)
	return ok
}

// Delete removes the file behind url. Unknown or foreign URLs are ignored.
func (s *LocalStore) Delete(_ context.Context, url string) {
	rel, ok := s.relPath(url)
	if !ok {
		return
	}
	full := filepath.Join(s.Dir, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Blob delete %s failed: %v", url, err)
	}
}
