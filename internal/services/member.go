package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/requestdata"
	"github.com/coralab/coralab-backend/internal/types"
)

type MemberEducationInput struct {
	Degree      string `json:"degree" binding:"required"`
	Institution string `json:"institution" binding:"required"`
	Year        int    `json:"year"`
}

type MemberInput struct {
	Name             string                 `json:"name" binding:"required"`
	Role             string                 `json:"role"`
	IsAlumni         bool                   `json:"is_alumni"`
	IsHead           bool                   `json:"is_head"`
	Email            string                 `json:"email" binding:"omitempty,email"`
	Phone            string                 `json:"phone"`
	PhotoURL         string                 `json:"photo_url"`
	PublicationLinks []string               `json:"publication_links"`
	ExpertiseIDs     []uuid.UUID            `json:"expertise_ids"`
	Educations       []MemberEducationInput `json:"educations" binding:"omitempty,dive"`
}

type MemberService interface {
	Create(ctx context.Context, input MemberInput) (*types.Member, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Member, error)
	List(ctx context.Context) ([]*types.Member, error)
	Update(ctx context.Context, id uuid.UUID, input MemberInput) (*types.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type memberService struct {
	db            *gorm.DB
	log           *logger.Logger
	memberRepo    repos.MemberRepo
	expertiseRepo repos.MemberExpertiseRepo
	avatar        AvatarService
	storage       StorageService
}

func NewMemberService(
	db *gorm.DB,
	log *logger.Logger,
	memberRepo repos.MemberRepo,
	expertiseRepo repos.MemberExpertiseRepo,
	avatar AvatarService,
	storage StorageService,
) MemberService {
	return &memberService{
		db:            db,
		log:           log.With("service", "MemberService"),
		memberRepo:    memberRepo,
		expertiseRepo: expertiseRepo,
		avatar:        avatar,
		storage:       storage,
	}
}

func (s *memberService) Create(ctx context.Context, input MemberInput) (*types.Member, error) {
	links, err := marshalLinks(input.PublicationLinks)
	if err != nil {
		return nil, err
	}

	var ownerID *uuid.UUID
	if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		id := rd.UserID
		ownerID = &id
	}

	member := &types.Member{
		ID:               uuid.New(),
		UserID:           ownerID,
		Name:             input.Name,
		Role:             input.Role,
		IsAlumni:         input.IsAlumni,
		IsHead:           input.IsHead,
		Email:            input.Email,
		Phone:            input.Phone,
		PhotoURL:         input.PhotoURL,
		PublicationLinks: links,
	}

	if member.PhotoURL == "" && s.avatar != nil {
		if url, aErr := s.generateAvatar(ctx, member.Name); aErr != nil {
			s.log.Warn("avatar generation failed, member gets no photo", "name", member.Name, "error", aErr)
		} else {
			member.PhotoURL = url
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validateExpertise(ctx, tx, input.ExpertiseIDs); err != nil {
			return err
		}
		created, err := s.memberRepo.Create(ctx, tx, member)
		if err != nil {
			return err
		}
		if len(input.ExpertiseIDs) > 0 {
			if err := s.memberRepo.AttachExpertise(ctx, tx, created.ID, input.ExpertiseIDs); err != nil {
				return err
			}
		}
		return s.memberRepo.CreateEducations(ctx, tx, educationRows(created.ID, input.Educations))
	})
	if err != nil {
		return nil, err
	}
	return s.memberRepo.GetByID(ctx, nil, member.ID)
}

func (s *memberService) Get(ctx context.Context, id uuid.UUID) (*types.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apierr.NotFound("member")
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]*types.Member, error) {
	return s.memberRepo.ListWithRelations(ctx, nil)
}

// Update replaces the member's scalar fields and fully rewrites the
// expertise links and education rows from the input.
func (s *memberService) Update(ctx context.Context, id uuid.UUID, input MemberInput) (*types.Member, error) {
	links, err := marshalLinks(input.PublicationLinks)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := s.memberRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if member == nil {
			return apierr.NotFound("member")
		}
		if err := s.validateExpertise(ctx, tx, input.ExpertiseIDs); err != nil {
			return err
		}

		member.Name = input.Name
		member.Role = input.Role
		member.IsAlumni = input.IsAlumni
		member.IsHead = input.IsHead
		member.Email = input.Email
		member.Phone = input.Phone
		member.PublicationLinks = links
		if input.PhotoURL != "" {
			member.PhotoURL = input.PhotoURL
		}
		if err := s.memberRepo.Update(ctx, tx, member); err != nil {
			return err
		}

		if err := s.memberRepo.DetachExpertiseByMemberID(ctx, tx, id); err != nil {
			return err
		}
		if len(input.ExpertiseIDs) > 0 {
			if err := s.memberRepo.AttachExpertise(ctx, tx, id, input.ExpertiseIDs); err != nil {
				return err
			}
		}
		if err := s.memberRepo.DeleteEducationsByMemberID(ctx, tx, id); err != nil {
			return err
		}
		return s.memberRepo.CreateEducations(ctx, tx, educationRows(id, input.Educations))
	})
	if err != nil {
		return nil, err
	}
	return s.memberRepo.GetByID(ctx, nil, id)
}

func (s *memberService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := s.memberRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if member == nil {
			return apierr.NotFound("member")
		}
		if err := s.memberRepo.DetachExpertiseByMemberID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.memberRepo.DeleteEducationsByMemberID(ctx, tx, id); err != nil {
			return err
		}
		return s.memberRepo.Delete(ctx, tx, id)
	})
}

func (s *memberService) validateExpertise(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.expertiseRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(dedupe(ids)) {
		return apierr.Validation(map[string]string{"expertise_ids": "one or more expertise ids do not exist"})
	}
	return nil
}

func (s *memberService) generateAvatar(ctx context.Context, name string) (string, error) {
	buf, err := s.avatar.GenerateMemberAvatar(name)
	if err != nil {
		return "", err
	}
	stored, err := s.storage.SaveBytes(ctx, "avatar", ".png", buf.Bytes())
	if err != nil {
		return "", err
	}
	return stored.FileURL, nil
}

func educationRows(memberID uuid.UUID, inputs []MemberEducationInput) []*types.MemberEducation {
	rows := make([]*types.MemberEducation, 0, len(inputs))
	for _, e := range inputs {
		rows = append(rows, &types.MemberEducation{
			ID:          uuid.New(),
			MemberID:    memberID,
			Degree:      e.Degree,
			Institution: e.Institution,
			Year:        e.Year,
		})
	}
	return rows
}

func marshalLinks(links []string) (datatypes.JSON, error) {
	if links == nil {
		links = []string{}
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("encode publication links: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
