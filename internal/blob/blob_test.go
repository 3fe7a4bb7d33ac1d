package blob_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recruit-api/internal/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_StoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	s := blob.NewLocalStore(dir, "/uploads/", 1024)
	ctx := context.Background()

	url, err := s.Store(ctx, strings.NewReader("%PDF-1.4"), blob.Meta{Filename: "cv.PDF", Folder: "cv"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/cv/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	full := filepath.Join(dir, "cv", filepath.Base(url))
	_, err = os.Stat(full)
	require.NoError(t, err)

	s.Delete(ctx, url)
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	// deleting twice or a foreign url is a no-op
	s.Delete(ctx, url)
	s.Delete(ctx, "https://elsewhere/x.pdf")
}

func TestLocalStore_Rejections(t *testing.T) {
	s := blob.NewLocalStore(t.TempDir(), "/uploads", 4)
	ctx := context.Background()

	_, err := s.Store(ctx, strings.NewReader("x"), blob.Meta{Filename: "run.sh"})
	assert.ErrorIs(t, err, blob.ErrUnsupportedType)

	_, err = s.Store(ctx, strings.NewReader("too long"), blob.Meta{Filename: "a.pdf"})
	assert.ErrorIs(t, err, blob.ErrTooLarge)
}

func TestLocalStore_FolderTraversal(t *testing.T) {
	dir := t.TempDir()
	s := blob.NewLocalStore(dir, "/uploads", 0)
	url, err := s.Store(context.Background(), strings.NewReader("x"), blob.Meta{Filename: "a.png", Folder: "../../etc"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/etc/"))
	_, err = os.Stat(filepath.Join(dir, "etc", filepath.Base(url)))
	assert.NoError(t, err)
}

func TestLocalStore_Owns(t *testing.T) {
	s := blob.NewLocalStore(t.TempDir(), "/uploads", 0)
	url, err := s.Store(context.Background(), strings.NewReader("x"), blob.Meta{Filename: "rc.pdf", Folder: "documents"})
	require.NoError(t, err)
	assert.True(t, s.Owns(url))
	assert.True(t, s.Owns("/uploads/documents/rc.pdf"))

	for _, foreign := range []string{
		"",
		"/uploads",
		"/uploads/",
		"/uploadsx/rc.pdf",
		"https://evil.test/rc.pdf",
		"/uploads/../secrets/key.pem",
		"/uploads/documents/rc.pdf?x=1",
	} {
		assert.False(t, s.Owns(foreign), foreign)
	}
}
