package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/requestdata"
	"github.com/coralab/coralab-backend/internal/types"
)

type ResearchMemberInput struct {
	MemberID      uuid.UUID `json:"member_id" binding:"required"`
	IsCoordinator bool      `json:"is_coordinator"`
}

type ResearchInput struct {
	Title       LocalizedTextInput    `json:"title"`
	Description types.LocalizedText   `json:"description"`
	Latitude    *float64              `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude   *float64              `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	StartDate   *time.Time            `json:"start_date"`
	EndDate     *time.Time            `json:"end_date"`
	Members     []ResearchMemberInput `json:"members" binding:"omitempty,dive"`
	PartnerIDs  []uuid.UUID           `json:"partner_ids"`
}

type ProgressBlockInput struct {
	FileURL  string `json:"file_url"`
	Content  string `json:"content"`
	Caption  string `json:"caption"`
	Position int    `json:"position"`
}

type ResearchProgressInput struct {
	Title        LocalizedTextInput   `json:"title"`
	Description  types.LocalizedText  `json:"description"`
	ProgressDate *time.Time           `json:"progress_date"`
	Images       []ProgressBlockInput `json:"images" binding:"omitempty,dive"`
	Videos       []ProgressBlockInput `json:"videos" binding:"omitempty,dive"`
	Maps         []ProgressBlockInput `json:"maps" binding:"omitempty,dive"`
	Texts        []ProgressBlockInput `json:"texts" binding:"omitempty,dive"`
}

type ResearchService interface {
	Create(ctx context.Context, input ResearchInput) (*types.Research, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Research, error)
	List(ctx context.Context, year *int) ([]*types.Research, error)
	Update(ctx context.Context, id uuid.UUID, input ResearchInput) (*types.Research, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddProgress(ctx context.Context, researchID uuid.UUID, input ResearchProgressInput) (*types.ResearchProgress, error)
	ListProgress(ctx context.Context, researchID uuid.UUID) ([]*types.ResearchProgress, error)
	DeleteProgress(ctx context.Context, researchID, progressID uuid.UUID) error

	AttachDocumentation(ctx context.Context, researchID, documentationID uuid.UUID, isThumbnail bool) error
	DetachDocumentation(ctx context.Context, researchID, documentationID uuid.UUID) error
}

type researchService struct {
	db           *gorm.DB
	log          *logger.Logger
	researchRepo repos.ResearchRepo
	progressRepo repos.ResearchProgressRepo
	memberRepo   repos.MemberRepo
	partnerRepo  repos.PartnerRepo
	docRepo      repos.DocumentationRepo
	pubRepo      repos.PublicationRepo
}

func NewResearchService(
	db *gorm.DB,
	log *logger.Logger,
	researchRepo repos.ResearchRepo,
	progressRepo repos.ResearchProgressRepo,
	memberRepo repos.MemberRepo,
	partnerRepo repos.PartnerRepo,
	docRepo repos.DocumentationRepo,
	pubRepo repos.PublicationRepo,
) ResearchService {
	return &researchService{
		db:           db,
		log:          log.With("service", "ResearchService"),
		researchRepo: researchRepo,
		progressRepo: progressRepo,
		memberRepo:   memberRepo,
		partnerRepo:  partnerRepo,
		docRepo:      docRepo,
		pubRepo:      pubRepo,
	}
}

func (s *researchService) Create(ctx context.Context, input ResearchInput) (*types.Research, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(401, "unauthorized", fmt.Errorf("login required"))
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	research := &types.Research{
		ID:          uuid.New(),
		UserID:      rd.UserID,
		Title:       input.Title.Text(),
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validateMembers(ctx, tx, input.Members); err != nil {
			return err
		}
		if err := s.validatePartners(ctx, tx, input.PartnerIDs); err != nil {
			return err
		}
		if _, err := s.researchRepo.Create(ctx, tx, research); err != nil {
			return err
		}
		if err := s.researchRepo.ReplaceMembers(ctx, tx, research.ID, memberPivots(research.ID, input.Members)); err != nil {
			return err
		}
		return s.researchRepo.ReplacePartners(ctx, tx, research.ID, input.PartnerIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.researchRepo.GetByID(ctx, nil, research.ID)
}

func (s *researchService) Get(ctx context.Context, id uuid.UUID) (*types.Research, error) {
	research, err := s.researchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if research == nil {
		return nil, apierr.NotFound("research")
	}
	return research, nil
}

func (s *researchService) List(ctx context.Context, year *int) ([]*types.Research, error) {
	if year != nil {
		return s.researchRepo.ListByYear(ctx, nil, *year)
	}
	return s.researchRepo.ListWithRelations(ctx, nil)
}

func (s *researchService) Update(ctx context.Context, id uuid.UUID, input ResearchInput) (*types.Research, error) {
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		research, err := s.researchRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if research == nil {
			return apierr.NotFound("research")
		}
		if err := s.validateMembers(ctx, tx, input.Members); err != nil {
			return err
		}
		if err := s.validatePartners(ctx, tx, input.PartnerIDs); err != nil {
			return err
		}

		research.Title = input.Title.Text()
		research.Description = input.Description
		research.Latitude = input.Latitude
		research.Longitude = input.Longitude
		research.StartDate = input.StartDate
		research.EndDate = input.EndDate
		if err := s.researchRepo.Update(ctx, tx, research); err != nil {
			return err
		}
		if err := s.researchRepo.ReplaceMembers(ctx, tx, id, memberPivots(id, input.Members)); err != nil {
			return err
		}
		return s.researchRepo.ReplacePartners(ctx, tx, id, input.PartnerIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.researchRepo.GetByID(ctx, nil, id)
}

// Delete tears down the project and everything hanging off it: progress
// entries with their blocks, the publication record, and all pivots.
func (s *researchService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		research, err := s.researchRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if research == nil {
			return apierr.NotFound("research")
		}
		if err := s.progressRepo.DeleteByResearchID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.pubRepo.DeleteByResearchIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		if err := s.researchRepo.DeletePivotsByResearchID(ctx, tx, id); err != nil {
			return err
		}
		return s.researchRepo.Delete(ctx, tx, id)
	})
}

func (s *researchService) AddProgress(ctx context.Context, researchID uuid.UUID, input ResearchProgressInput) (*types.ResearchProgress, error) {
	progress := &types.ResearchProgress{
		ID:           uuid.New(),
		ResearchID:   researchID,
		Title:        input.Title.Text(),
		Description:  input.Description,
		ProgressDate: input.ProgressDate,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		research, err := s.researchRepo.GetByID(ctx, tx, researchID)
		if err != nil {
			return err
		}
		if research == nil {
			return apierr.NotFound("research")
		}
		if _, err := s.progressRepo.Create(ctx, tx, progress); err != nil {
			return err
		}

		images := make([]*types.ProgressImage, 0, len(input.Images))
		for _, b := range input.Images {
			images = append(images, &types.ProgressImage{ID: uuid.New(), ProgressID: progress.ID, FileURL: b.FileURL, Caption: b.Caption, Position: b.Position})
		}
		videos := make([]*types.ProgressVideo, 0, len(input.Videos))
		for _, b := range input.Videos {
			videos = append(videos, &types.ProgressVideo{ID: uuid.New(), ProgressID: progress.ID, FileURL: b.FileURL, Caption: b.Caption, Position: b.Position})
		}
		maps := make([]*types.ProgressMap, 0, len(input.Maps))
		for _, b := range input.Maps {
			maps = append(maps, &types.ProgressMap{ID: uuid.New(), ProgressID: progress.ID, FileURL: b.FileURL, Caption: b.Caption, Position: b.Position})
		}
		texts := make([]*types.ProgressText, 0, len(input.Texts))
		for _, b := range input.Texts {
			texts = append(texts, &types.ProgressText{ID: uuid.New(), ProgressID: progress.ID, Content: b.Content, Position: b.Position})
		}

		if err := s.progressRepo.CreateImages(ctx, tx, images); err != nil {
			return err
		}
		if err := s.progressRepo.CreateVideos(ctx, tx, videos); err != nil {
			return err
		}
		if err := s.progressRepo.CreateMaps(ctx, tx, maps); err != nil {
			return err
		}
		return s.progressRepo.CreateTexts(ctx, tx, texts)
	})
	if err != nil {
		return nil, err
	}
	return s.progressRepo.GetByID(ctx, nil, progress.ID)
}

func (s *researchService) ListProgress(ctx context.Context, researchID uuid.UUID) ([]*types.ResearchProgress, error) {
	research, err := s.researchRepo.GetByID(ctx, nil, researchID)
	if err != nil {
		return nil, err
	}
	if research == nil {
		return nil, apierr.NotFound("research")
	}
	return s.progressRepo.ListByResearchID(ctx, nil, researchID)
}

func (s *researchService) DeleteProgress(ctx context.Context, researchID, progressID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.progressRepo.GetByID(ctx, tx, progressID)
		if err != nil {
			return err
		}
		if progress == nil || progress.ResearchID != researchID {
			return apierr.NotFound("research progress")
		}
		if err := s.progressRepo.DeleteBlocksByProgressID(ctx, tx, progressID); err != nil {
			return err
		}
		return s.progressRepo.Delete(ctx, tx, progressID)
	})
}

// AttachDocumentation links uploaded media to a project. Marking the link
// as thumbnail demotes any previous thumbnail first.
func (s *researchService) AttachDocumentation(ctx context.Context, researchID, documentationID uuid.UUID, isThumbnail bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		research, err := s.researchRepo.GetByID(ctx, tx, researchID)
		if err != nil {
			return err
		}
		if research == nil {
			return apierr.NotFound("research")
		}
		doc, err := s.docRepo.GetByID(ctx, tx, documentationID)
		if err != nil {
			return err
		}
		if doc == nil {
			return apierr.NotFound("documentation")
		}
		if doc.AboutType != nil {
			return apierr.Validation(map[string]string{"documentation_id": "about media cannot be linked to research"})
		}
		if isThumbnail {
			if doc.Category != types.DocumentationCategoryImage {
				return apierr.Validation(map[string]string{"is_thumbnail": "only images can be thumbnails"})
			}
			if err := s.researchRepo.ClearThumbnail(ctx, tx, researchID); err != nil {
				return err
			}
		}
		return s.researchRepo.AttachDocumentation(ctx, tx, &types.ResearchDocumentation{
			ResearchID:      researchID,
			DocumentationID: documentationID,
			IsThumbnail:     isThumbnail,
		})
	})
}

func (s *researchService) DetachDocumentation(ctx context.Context, researchID, documentationID uuid.UUID) error {
	return s.researchRepo.DetachDocumentation(ctx, nil, researchID, documentationID)
}

func (s *researchService) validateMembers(ctx context.Context, tx *gorm.DB, members []ResearchMemberInput) error {
	coordinators := 0
	for _, m := range members {
		if m.IsCoordinator {
			coordinators++
		}
		member, err := s.memberRepo.GetByID(ctx, tx, m.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return apierr.Validation(map[string]string{"members": fmt.Sprintf("member %s does not exist", m.MemberID)})
		}
	}
	if coordinators > 1 {
		return apierr.Validation(map[string]string{"members": "at most one coordinator per research"})
	}
	return nil
}

func (s *researchService) validatePartners(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.partnerRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(dedupe(ids)) {
		return apierr.Validation(map[string]string{"partner_ids": "one or more partner ids do not exist"})
	}
	return nil
}

func validateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apierr.Validation(map[string]string{"end_date": "end_date must not precede start_date"})
	}
	return nil
}

func memberPivots(researchID uuid.UUID, inputs []ResearchMemberInput) []*types.ResearchMember {
	rows := make([]*types.ResearchMember, 0, len(inputs))
	for _, m := range inputs {
		rows = append(rows, &types.ResearchMember{
			ResearchID:    researchID,
			MemberID:      m.MemberID,
			IsCoordinator: m.IsCoordinator,
		})
	}
	return rows
}
