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

type PartnerInput struct {
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logo_url"`
	Website string `json:"website" binding:"omitempty,url"`
}

type PartnerMemberInput struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
	PhotoURL string `json:"photo_url"`
}

type PartnerService interface {
	Create(ctx context.Context, input PartnerInput) (*types.Partner, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Partner, error)
	List(ctx context.Context) ([]*types.Partner, error)
	Update(ctx context.Context, id uuid.UUID, input PartnerInput) (*types.Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, partnerID uuid.UUID, input PartnerMemberInput) (*types.PartnerMember, error)
	UpdateMember(ctx context.Context, partnerID, memberID uuid.UUID, input PartnerMemberInput) (*types.PartnerMember, error)
	DeleteMember(ctx context.Context, partnerID, memberID uuid.UUID) error
}

type partnerService struct {
	db          *gorm.DB
	log         *logger.Logger
	partnerRepo repos.PartnerRepo
}

func NewPartnerService(db *gorm.DB, log *logger.Logger, partnerRepo repos.PartnerRepo) PartnerService {
	return &partnerService{
		db:          db,
		log:         log.With("service", "PartnerService"),
		partnerRepo: partnerRepo,
	}
}

func (s *partnerService) Create(ctx context.Context, input PartnerInput) (*types.Partner, error) {
	return s.partnerRepo.Create(ctx, nil, &types.Partner{
		ID:      uuid.New(),
		Name:    input.Name,
		LogoURL: input.LogoURL,
		Website: input.Website,
	})
}

func (s *partnerService) Get(ctx context.Context, id uuid.UUID) (*types.Partner, error) {
	partner, err := s.partnerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, apierr.NotFound("partner")
	}
	return partner, nil
}

func (s *partnerService) List(ctx context.Context) ([]*types.Partner, error) {
	return s.partnerRepo.List(ctx, nil)
}

func (s *partnerService) Update(ctx context.Context, id uuid.UUID, input PartnerInput) (*types.Partner, error) {
	partner, err := s.partnerRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, apierr.NotFound("partner")
	}
	partner.Name = input.Name
	partner.LogoURL = input.LogoURL
	partner.Website = input.Website
	if err := s.partnerRepo.Update(ctx, nil, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		partner, err := s.partnerRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if partner == nil {
			return apierr.NotFound("partner")
		}
		if err := s.partnerRepo.DeleteMembersByPartnerID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.partnerRepo.DeletePivotsByPartnerID(ctx, tx, id); err != nil {
			return err
		}
		return s.partnerRepo.Delete(ctx, tx, id)
	})
}

func (s *partnerService) AddMember(ctx context.Context, partnerID uuid.UUID, input PartnerMemberInput) (*types.PartnerMember, error) {
	partner, err := s.partnerRepo.GetByID(ctx, nil, partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, apierr.NotFound("partner")
	}
	return s.partnerRepo.CreateMember(ctx, nil, &types.PartnerMember{
		ID:        uuid.New(),
		PartnerID: partnerID,
		Name:      input.Name,
		Role:      input.Role,
		PhotoURL:  input.PhotoURL,
	})
}

func (s *partnerService) UpdateMember(ctx context.Context, partnerID, memberID uuid.UUID, input PartnerMemberInput) (*types.PartnerMember, error) {
	member, err := s.partnerRepo.GetMemberByID(ctx, nil, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.PartnerID != partnerID {
		return nil, apierr.NotFound("partner member")
	}
	member.Name = input.Name
	member.Role = input.Role
	member.PhotoURL = input.PhotoURL
	if err := s.partnerRepo.UpdateMember(ctx, nil, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *partnerService) DeleteMember(ctx context.Context, partnerID, memberID uuid.UUID) error {
	member, err := s.partnerRepo.GetMemberByID(ctx, nil, memberID)
	if err != nil {
		return err
	}
	if member == nil || member.PartnerID != partnerID {
		return apierr.NotFound("partner member")
	}
	return s.partnerRepo.DeleteMember(ctx, nil, memberID)
}
