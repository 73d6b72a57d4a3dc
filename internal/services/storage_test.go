package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coralab/coralab-backend/internal/logger"
)

func testStorage(t *testing.T) *storageService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &storageService{
		log:     log.With("service", "StorageService"),
		root:    t.TempDir(),
		baseURL: "http://localhost:8080",
		now:     func() time.Time { return fixed },
	}
}

func TestSaveBytesLayoutAndURL(t *testing.T) {
	t.Parallel()
	ss := testStorage(t)

	stored, err := ss.SaveBytes(context.Background(), "image", ".png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}

	if !strings.HasPrefix(stored.StoragePath, "documentation/image/") {
		t.Errorf("unexpected storage path: %q", stored.StoragePath)
	}
	if !strings.HasSuffix(stored.StoragePath, ".png") {
		t.Errorf("extension not preserved: %q", stored.StoragePath)
	}
	if want := "http://localhost:8080/storage/" + stored.StoragePath; stored.FileURL != want {
		t.Errorf("FileURL = %q, want %q", stored.FileURL, want)
	}

	data, err := os.ReadFile(filepath.Join(ss.root, filepath.FromSlash(stored.StoragePath)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveBytesRejectsEmptyCategory(t *testing.T) {
	t.Parallel()
	ss := testStorage(t)

	if _, err := ss.SaveBytes(context.Background(), "", ".png", []byte("x")); err == nil {
		t.Fatal("expected error for empty category")
	}
	// Traversal characters are stripped, not interpreted.
	stored, err := ss.SaveBytes(context.Background(), "../image", ".png", []byte("x"))
	if err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}
	if strings.Contains(stored.StoragePath, "..") {
		t.Errorf("path traversal survived sanitization: %q", stored.StoragePath)
	}
}

func TestDeleteRemovesFileAndToleratesMissing(t *testing.T) {
	t.Parallel()
	ss := testStorage(t)

	stored, err := ss.SaveBytes(context.Background(), "video", ".mp4", []byte("x"))
	if err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}
	if err := ss.Delete(context.Background(), stored.StoragePath); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ss.root, filepath.FromSlash(stored.StoragePath))); !os.IsNotExist(err) {
		t.Error("file still present after Delete")
	}
	// A second delete of the same path is a no-op.
	if err := ss.Delete(context.Background(), stored.StoragePath); err != nil {
		t.Fatalf("Delete of missing file: %v", err)
	}
}
