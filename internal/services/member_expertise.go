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

type MemberExpertiseInput struct {
	Name LocalizedTextInput `json:"name"`
}

type MemberExpertiseService interface {
	Create(ctx context.Context, input MemberExpertiseInput) (*types.MemberExpertise, error)
	List(ctx context.Context) ([]*types.MemberExpertise, error)
	Update(ctx context.Context, id uuid.UUID, input MemberExpertiseInput) (*types.MemberExpertise, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type memberExpertiseService struct {
	db            *gorm.DB
	log           *logger.Logger
	expertiseRepo repos.MemberExpertiseRepo
}

func NewMemberExpertiseService(db *gorm.DB, log *logger.Logger, expertiseRepo repos.MemberExpertiseRepo) MemberExpertiseService {
	return &memberExpertiseService{
		db:            db,
		log:           log.With("service", "MemberExpertiseService"),
		expertiseRepo: expertiseRepo,
	}
}

func (s *memberExpertiseService) Create(ctx context.Context, input MemberExpertiseInput) (*types.MemberExpertise, error) {
	return s.expertiseRepo.Create(ctx, nil, &types.MemberExpertise{
		ID:   uuid.New(),
		Name: input.Name.Text(),
	})
}

func (s *memberExpertiseService) List(ctx context.Context) ([]*types.MemberExpertise, error) {
	return s.expertiseRepo.List(ctx, nil)
}

func (s *memberExpertiseService) Update(ctx context.Context, id uuid.UUID, input MemberExpertiseInput) (*types.MemberExpertise, error) {
	found, err := s.expertiseRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apierr.NotFound("member expertise")
	}
	expertise := found[0]
	expertise.Name = input.Name.Text()
	if err := s.expertiseRepo.Update(ctx, nil, expertise); err != nil {
		return nil, err
	}
	return expertise, nil
}

func (s *memberExpertiseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.expertiseRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return apierr.NotFound("member expertise")
		}
		if err := s.expertiseRepo.DetachByExpertiseID(ctx, tx, id); err != nil {
			return err
		}
		return s.expertiseRepo.Delete(ctx, tx, id)
	})
}
