package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

type DocumentationUploadInput struct {
	Category  string
	AboutType string
	Caption   string
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".webm": true, ".mov": true, ".mkv": true,
}

type DocumentationService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, input DocumentationUploadInput) (*types.Documentation, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Documentation, error)
	ListResearchMedia(ctx context.Context, category string) ([]*types.Documentation, error)
	ListAboutMedia(ctx context.Context) ([]*types.Documentation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentationService struct {
	db      *gorm.DB
	log     *logger.Logger
	docRepo repos.DocumentationRepo
	storage StorageService
}

func NewDocumentationService(db *gorm.DB, log *logger.Logger, docRepo repos.DocumentationRepo, storage StorageService) DocumentationService {
	return &documentationService{
		db:      db,
		log:     log.With("service", "DocumentationService"),
		docRepo: docRepo,
		storage: storage,
	}
}

func (s *documentationService) Upload(ctx context.Context, file *multipart.FileHeader, input DocumentationUploadInput) (*types.Documentation, error) {
	if fields := validateUpload(file, input); len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	src, err := file.Open()
	if err != nil {
		return nil, apierr.Validation(map[string]string{"file": "file could not be read"})
	}
	defer src.Close()

	stored, err := s.storage.Save(ctx, input.Category, file.Filename, src)
	if err != nil {
		return nil, err
	}

	var aboutType *string
	if input.AboutType != "" {
		at := input.AboutType
		aboutType = &at
	}
	doc := &types.Documentation{
		ID:          uuid.New(),
		Category:    input.Category,
		AboutType:   aboutType,
		FileURL:     stored.FileURL,
		StoragePath: stored.StoragePath,
		Caption:     input.Caption,
	}
	created, err := s.docRepo.Create(ctx, nil, doc)
	if err != nil {
		// Row never landed; drop the file so the store does not leak.
		if dErr := s.storage.Delete(ctx, stored.StoragePath); dErr != nil {
			s.log.Warn("failed to remove orphaned upload", "path", stored.StoragePath, "error", dErr)
		}
		return nil, err
	}
	return created, nil
}

func (s *documentationService) Get(ctx context.Context, id uuid.UUID) (*types.Documentation, error) {
	doc, err := s.docRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apierr.NotFound("documentation")
	}
	return doc, nil
}

func (s *documentationService) ListResearchMedia(ctx context.Context, category string) ([]*types.Documentation, error) {
	if category != "" && category != types.DocumentationCategoryImage && category != types.DocumentationCategoryVideo {
		return nil, apierr.Validation(map[string]string{"category": "category must be image or video"})
	}
	return s.docRepo.ListResearchMedia(ctx, nil, category)
}

func (s *documentationService) ListAboutMedia(ctx context.Context) ([]*types.Documentation, error) {
	return s.docRepo.ListAboutMedia(ctx, nil)
}

func (s *documentationService) Delete(ctx context.Context, id uuid.UUID) error {
	var storagePath string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.docRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return apierr.NotFound("documentation")
		}
		storagePath = doc.StoragePath
		if err := s.docRepo.DeleteLinksByDocumentationID(ctx, tx, id); err != nil {
			return err
		}
		return s.docRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if storagePath != "" {
		if dErr := s.storage.Delete(ctx, storagePath); dErr != nil {
			s.log.Warn("failed to remove stored file", "path", storagePath, "error", dErr)
		}
	}
	return nil
}

func validateUpload(file *multipart.FileHeader, input DocumentationUploadInput) map[string]string {
	fields := map[string]string{}
	if file == nil {
		fields["file"] = "file is required"
	}
	switch input.Category {
	case types.DocumentationCategoryImage, types.DocumentationCategoryVideo:
	case "":
		fields["category"] = "category is required"
	default:
		fields["category"] = "category must be image or video"
	}
	switch input.AboutType {
	case "", types.AboutTypeGallery, types.AboutTypeBanner:
	default:
		fields["about_type"] = "about_type must be gallery or banner"
	}
	if file != nil && input.Category != "" {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if input.Category == types.DocumentationCategoryImage && !imageExtensions[ext] {
			fields["file"] = "file extension does not match image category"
		}
		if input.Category == types.DocumentationCategoryVideo && !videoExtensions[ext] {
			fields["file"] = "file extension does not match video category"
		}
	}
	return fields
}
