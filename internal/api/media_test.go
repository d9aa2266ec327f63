package api

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// memFile satisfies multipart.File over an in-memory buffer
type memFile struct {
	*bytes.Reader
}

func (f *memFile) Close() error { return nil }

// brokenSeekFile fails every rewind
type brokenSeekFile struct {
	*bytes.Reader
}

func (f *brokenSeekFile) Close() error { return nil }

func (f *brokenSeekFile) Seek(offset int64, whence int) (int64, error) {
	return 0, errors.New("seek failed")
}

func TestUploadToLocal_WritesFullContent(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("UPLOAD_DIR", dir)
	defer os.Unsetenv("UPLOAD_DIR")

	content := []byte("fresh tomatoes")
	file := &memFile{bytes.NewReader(content)}
	// Simulate a prior partial read so the rewind matters
	if _, err := io.CopyN(io.Discard, file, 5); err != nil {
		t.Fatalf("priming read failed: %v", err)
	}

	url, err := uploadToLocal("products/1/test.jpg", file)
	if err != nil {
		t.Fatalf("uploadToLocal() error = %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("url = %q, want /uploads/ prefix", url)
	}

	written, err := os.ReadFile(filepath.Join(dir, "products", "1", "test.jpg"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !bytes.Equal(written, content) {
		t.Errorf("written = %q, want %q", written, content)
	}
}

func TestUploadToLocal_FailedRewindIsAnError(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("UPLOAD_DIR", dir)
	defer os.Unsetenv("UPLOAD_DIR")

	file := &brokenSeekFile{bytes.NewReader([]byte("payload"))}
	if _, err := uploadToLocal("products/1/broken.jpg", file); err == nil {
		t.Error("uploadToLocal() should fail when the upload cannot be rewound")
	}
}
