package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/requestdata"
	"github.com/coralab/coralab-backend/internal/types"
)

type LecturerInput struct {
	Title       string
	Description string
}

type LecturerService interface {
	Create(ctx context.Context, file *multipart.FileHeader, input LecturerInput) (*types.Lecturer, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Lecturer, error)
	List(ctx context.Context) ([]*types.Lecturer, error)
	Update(ctx context.Context, id uuid.UUID, file *multipart.FileHeader, input LecturerInput) (*types.Lecturer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type lecturerService struct {
	db           *gorm.DB
	log          *logger.Logger
	lecturerRepo repos.LecturerRepo
	storage      StorageService
}

func NewLecturerService(db *gorm.DB, log *logger.Logger, lecturerRepo repos.LecturerRepo, storage StorageService) LecturerService {
	return &lecturerService{
		db:           db,
		log:          log.With("service", "LecturerService"),
		lecturerRepo: lecturerRepo,
		storage:      storage,
	}
}

func (s *lecturerService) Create(ctx context.Context, file *multipart.FileHeader, input LecturerInput) (*types.Lecturer, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(401, "unauthorized", fmt.Errorf("login required"))
	}
	if input.Title == "" {
		return nil, apierr.Validation(map[string]string{"title": "title is required"})
	}

	lecturer := &types.Lecturer{
		ID:          uuid.New(),
		UserID:      rd.UserID,
		Title:       input.Title,
		Description: input.Description,
	}
	if file != nil {
		src, err := file.Open()
		if err != nil {
			return nil, apierr.Validation(map[string]string{"file": "file could not be read"})
		}
		defer src.Close()
		stored, err := s.storage.Save(ctx, "lecturer", file.Filename, src)
		if err != nil {
			return nil, err
		}
		lecturer.FileURL = stored.FileURL
		lecturer.StoragePath = stored.StoragePath
	}
	return s.lecturerRepo.Create(ctx, nil, lecturer)
}

func (s *lecturerService) Get(ctx context.Context, id uuid.UUID) (*types.Lecturer, error) {
	lecturer, err := s.lecturerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if lecturer == nil {
		return nil, apierr.NotFound("lecturer material")
	}
	return lecturer, nil
}

func (s *lecturerService) List(ctx context.Context) ([]*types.Lecturer, error) {
	return s.lecturerRepo.List(ctx, nil)
}

func (s *lecturerService) Update(ctx context.Context, id uuid.UUID, file *multipart.FileHeader, input LecturerInput) (*types.Lecturer, error) {
	lecturer, err := s.lecturerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if lecturer == nil {
		return nil, apierr.NotFound("lecturer material")
	}

	oldPath := ""
	if input.Title != "" {
		lecturer.Title = input.Title
	}
	lecturer.Description = input.Description
	if file != nil {
		src, err := file.Open()
		if err != nil {
			return nil, apierr.Validation(map[string]string{"file": "file could not be read"})
		}
		defer src.Close()
		stored, err := s.storage.Save(ctx, "lecturer", file.Filename, src)
		if err != nil {
			return nil, err
		}
		oldPath = lecturer.StoragePath
		lecturer.FileURL = stored.FileURL
		lecturer.StoragePath = stored.StoragePath
	}
	if err := s.lecturerRepo.Update(ctx, nil, lecturer); err != nil {
		return nil, err
	}
	if oldPath != "" {
		if dErr := s.storage.Delete(ctx, oldPath); dErr != nil {
			s.log.Warn("failed to remove replaced file", "path", oldPath, "error", dErr)
		}
	}
	return lecturer, nil
}

func (s *lecturerService) Delete(ctx context.Context, id uuid.UUID) error {
	lecturer, err := s.lecturerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if lecturer == nil {
		return apierr.NotFound("lecturer material")
	}
	if err := s.lecturerRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	if lecturer.StoragePath != "" {
		if dErr := s.storage.Delete(ctx, lecturer.StoragePath); dErr != nil {
			s.log.Warn("failed to remove stored file", "path", lecturer.StoragePath, "error", dErr)
		}
	}
	return nil
}
