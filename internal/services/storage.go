package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/utils"
)

// StorageService writes uploaded media to local disk under
// documentation/{category}/ with a timestamp-derived filename and serves it
// back under the /storage/ prefix.
type StorageService interface {
	Save(ctx context.Context, category string, originalName string, r io.Reader) (*StoredFile, error)
	SaveBytes(ctx context.Context, category string, ext string, data []byte) (*StoredFile, error)
	Delete(ctx context.Context, storagePath string) error
	PublicURL(storagePath string) string
	Root() string
}

type StoredFile struct {
	StoragePath string
	FileURL     string
}

type storageService struct {
	log     *logger.Logger
	root    string
	baseURL string
	now     func() time.Time
}

func NewStorageService(log *logger.Logger) (StorageService, error) {
	serviceLog := log.With("service", "StorageService")

	root := utils.GetEnv("STORAGE_ROOT", "./storage", log)
	baseURL := strings.TrimRight(utils.GetEnv("PUBLIC_BASE_URL", "", log), "/")

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &storageService{
		log:     serviceLog,
		root:    root,
		baseURL: baseURL,
		now:     time.Now,
	}, nil
}

func (ss *storageService) Save(ctx context.Context, category string, originalName string, r io.Reader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return ss.SaveBytes(ctx, category, ext, data)
}

func (ss *storageService) SaveBytes(ctx context.Context, category string, ext string, data []byte) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	category = sanitizePathSegment(category)
	if category == "" {
		return nil, fmt.Errorf("storage category required")
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	relPath := path.Join("documentation", category, fmt.Sprintf("%d%s", ss.now().UnixNano(), ext))
	absPath := filepath.Join(ss.root, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	ss.log.Debug("Stored file", "path", relPath, "bytes", len(data))
	return &StoredFile{
		StoragePath: relPath,
		FileURL:     ss.PublicURL(relPath),
	}, nil
}

func (ss *storageService) Delete(ctx context.Context, storagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	storagePath = strings.TrimSpace(storagePath)
	if storagePath == "" {
		return nil
	}

	absPath := filepath.Join(ss.root, filepath.FromSlash(storagePath))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (ss *storageService) PublicURL(storagePath string) string {
	return ss.baseURL + "/storage/" + strings.TrimLeft(storagePath, "/")
}

func (ss *storageService) Root() string {
	return ss.root
}

func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, "..", "")
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, "\\", "")
	return s
}
