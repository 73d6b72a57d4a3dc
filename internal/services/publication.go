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

type PublicationInput struct {
	ResearchID *uuid.UUID `json:"research_id"`
	Title      string     `json:"title" binding:"required"`
	Authors    string     `json:"authors" binding:"required"`
	Journal    string     `json:"journal"`
	Year       int        `json:"year" binding:"omitempty,gte=1900"`
	DOI        string     `json:"doi"`
	URL        string     `json:"url" binding:"omitempty,url"`
}

type PublicationService interface {
	Create(ctx context.Context, input PublicationInput) (*types.Publication, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Publication, error)
	List(ctx context.Context, year *int) ([]*types.Publication, error)
	Update(ctx context.Context, id uuid.UUID, input PublicationInput) (*types.Publication, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type publicationService struct {
	db           *gorm.DB
	log          *logger.Logger
	pubRepo      repos.PublicationRepo
	researchRepo repos.ResearchRepo
}

func NewPublicationService(db *gorm.DB, log *logger.Logger, pubRepo repos.PublicationRepo, researchRepo repos.ResearchRepo) PublicationService {
	return &publicationService{
		db:           db,
		log:          log.With("service", "PublicationService"),
		pubRepo:      pubRepo,
		researchRepo: researchRepo,
	}
}

// Create enforces the one-publication-per-research rule inside the
// transaction that inserts the row.
func (s *publicationService) Create(ctx context.Context, input PublicationInput) (*types.Publication, error) {
	publication := &types.Publication{
		ID:         uuid.New(),
		ResearchID: input.ResearchID,
		Title:      input.Title,
		Authors:    input.Authors,
		Journal:    input.Journal,
		Year:       input.Year,
		DOI:        input.DOI,
		URL:        input.URL,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.ResearchID != nil {
			research, err := s.researchRepo.GetByID(ctx, tx, *input.ResearchID)
			if err != nil {
				return err
			}
			if research == nil {
				return apierr.NotFound("research")
			}
			existing, err := s.pubRepo.GetByResearchID(ctx, tx, *input.ResearchID)
			if err != nil {
				return err
			}
			if existing != nil {
				return apierr.Conflict("research already has a publication")
			}
		}
		_, err := s.pubRepo.Create(ctx, tx, publication)
		return err
	})
	if err != nil {
		return nil, err
	}
	return publication, nil
}

func (s *publicationService) Get(ctx context.Context, id uuid.UUID) (*types.Publication, error) {
	publication, err := s.pubRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if publication == nil {
		return nil, apierr.NotFound("publication")
	}
	return publication, nil
}

func (s *publicationService) List(ctx context.Context, year *int) ([]*types.Publication, error) {
	if year != nil {
		return s.pubRepo.ListByYear(ctx, nil, *year)
	}
	return s.pubRepo.List(ctx, nil)
}

func (s *publicationService) Update(ctx context.Context, id uuid.UUID, input PublicationInput) (*types.Publication, error) {
	var publication *types.Publication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.pubRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("publication")
		}
		if input.ResearchID != nil {
			research, err := s.researchRepo.GetByID(ctx, tx, *input.ResearchID)
			if err != nil {
				return err
			}
			if research == nil {
				return apierr.NotFound("research")
			}
			other, err := s.pubRepo.GetByResearchID(ctx, tx, *input.ResearchID)
			if err != nil {
				return err
			}
			if other != nil && other.ID != id {
				return apierr.Conflict("research already has a publication")
			}
		}

		existing.ResearchID = input.ResearchID
		existing.Title = input.Title
		existing.Authors = input.Authors
		existing.Journal = input.Journal
		existing.Year = input.Year
		existing.DOI = input.DOI
		existing.URL = input.URL
		if err := s.pubRepo.Update(ctx, tx, existing); err != nil {
			return err
		}
		publication = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return publication, nil
}

func (s *publicationService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.pubRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apierr.NotFound("publication")
	}
	return s.pubRepo.Delete(ctx, nil, id)
}
