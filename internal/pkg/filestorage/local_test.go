package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parsing multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestSaveFileWithPathRoundTrip(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}

	content := []byte("%PDF-1.4 test bytes")
	storedPath, err := ls.SaveFileWithPath(makeFileHeader(t, "week5.pdf", content), "notes")
	if err != nil {
		t.Fatalf("saving file: %v", err)
	}

	if !strings.HasPrefix(storedPath, "notes"+string(filepath.Separator)) {
		t.Errorf("stored path must live under the subdirectory, got %q", storedPath)
	}
	if filepath.Ext(storedPath) != ".pdf" {
		t.Errorf("stored path must keep the extension, got %q", storedPath)
	}
	if strings.Contains(storedPath, "week5") {
		t.Errorf("stored path must not reuse the client filename, got %q", storedPath)
	}

	got, err := os.ReadFile(ls.GetFullPath(storedPath))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("stored bytes differ from the upload")
	}
}

func TestDeleteFileIsIdempotent(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}

	storedPath, err := ls.SaveFileWithPath(makeFileHeader(t, "a.pdf", []byte("x")), "notes")
	if err != nil {
		t.Fatalf("saving file: %v", err)
	}

	if err := ls.DeleteFile(storedPath); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := ls.DeleteFile(storedPath); err != nil {
		t.Errorf("second delete must be a no-op, got %v", err)
	}
}

func TestGetFullPathRejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}

	for _, p := range []string{"../etc/passwd", "notes/../../secret", "/etc/passwd", ""} {
		if got := ls.GetFullPath(p); got != "" {
			t.Errorf("path %q must not resolve, got %q", p, got)
		}
	}
}
