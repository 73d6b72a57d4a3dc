package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

// LocalizedTextInput requires both language renditions of a text field.
type LocalizedTextInput struct {
	ID string `json:"id" binding:"required"`
	EN string `json:"en" binding:"required"`
}

func (in LocalizedTextInput) Text() types.LocalizedText {
	return types.LocalizedText{ID: in.ID, EN: in.EN}
}

type AboutInput struct {
	Description LocalizedTextInput  `json:"description"`
	Purpose     types.LocalizedText `json:"purpose"`
	Email       string              `json:"email" binding:"omitempty,email"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
}

type AboutService interface {
	Get(ctx context.Context) (*types.About, error)
	Upsert(ctx context.Context, input AboutInput) (*types.About, error)
}

type aboutService struct {
	db        *gorm.DB
	log       *logger.Logger
	aboutRepo repos.AboutRepo
	docRepo   repos.DocumentationRepo
}

func NewAboutService(db *gorm.DB, log *logger.Logger, aboutRepo repos.AboutRepo, docRepo repos.DocumentationRepo) AboutService {
	return &aboutService{
		db:        db,
		log:       log.With("service", "AboutService"),
		aboutRepo: aboutRepo,
		docRepo:   docRepo,
	}
}

func (s *aboutService) Get(ctx context.Context) (*types.About, error) {
	about, err := s.aboutRepo.Get(ctx, nil)
	if err != nil {
		return nil, err
	}
	if about == nil {
		return nil, apierr.NotFound("about")
	}
	docs, err := s.docRepo.ListAboutMedia(ctx, nil)
	if err != nil {
		return nil, err
	}
	about.Documentation = docs
	return about, nil
}

// Upsert creates the singleton profile row on the first call and
// overwrites it on every call after that.
func (s *aboutService) Upsert(ctx context.Context, input AboutInput) (*types.About, error) {
	var result *types.About
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.aboutRepo.Get(ctx, tx)
		if err != nil {
			return err
		}
		if existing == nil {
			about := &types.About{
				ID:          uuid.New(),
				Description: input.Description.Text(),
				Purpose:     input.Purpose,
				Email:       input.Email,
				Phone:       input.Phone,
				Address:     input.Address,
			}
			result, err = s.aboutRepo.Create(ctx, tx, about)
			return err
		}
		existing.Description = input.Description.Text()
		existing.Purpose = input.Purpose
		existing.Email = input.Email
		existing.Phone = input.Phone
		existing.Address = input.Address
		if err := s.aboutRepo.Update(ctx, tx, existing); err != nil {
			return err
		}
		result, err = s.aboutRepo.Get(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
