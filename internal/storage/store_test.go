package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	url, err := store.Save(context.Background(), BufferedFile{
		Field:       "nidCopy",
		Filename:    "national-id.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/upload/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	onDisk := filepath.Join(dir, strings.TrimPrefix(url, "/upload/"))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), content)
}

func TestDiskStore_SaveCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewDiskStore(dir)

	_, err := store.Save(context.Background(), BufferedFile{
		Field:    "taxCopy",
		Filename: "tax.txt",
		Content:  []byte("ok"),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDiskStore_RandomizedNamesNeverCollide(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	file := BufferedFile{Field: "businessPicture", Filename: "same.png", Content: []byte("x")}

	first, err := store.Save(context.Background(), file)
	require.NoError(t, err)
	second, err := store.Save(context.Background(), file)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDiskStore_RejectsEmptyContent(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	_, err := store.Save(context.Background(), BufferedFile{Field: "nidCopy", Filename: "x.pdf"})
	assert.Error(t, err)
}

func TestDiskStore_CancelledContext(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, BufferedFile{Field: "nidCopy", Filename: "x.pdf", Content: []byte("x")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSafeExt(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain", "photo.PNG", ".png"},
		{"no extension", "README", ""},
		{"traversal attempt", "../../etc/passwd", ""},
		{"weird characters", "doc.p%df", ""},
		{"too long", "archive.superduperlongext", ""},
		{"numeric", "slides.mp4", ".mp4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, safeExt(tc.filename))
		})
	}
}
