package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type ResearchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, research *types.Research) (*types.Research, error)
	GetByID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) (*types.Research, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Research, error)
	ListWithRelations(ctx context.Context, tx *gorm.DB) ([]*types.Research, error)
	ListByYear(ctx context.Context, tx *gorm.DB, year int) ([]*types.Research, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Research, error)
	Update(ctx context.Context, tx *gorm.DB, research *types.Research) error
	Delete(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error

	ReplaceMembers(ctx context.Context, tx *gorm.DB, researchID uuid.UUID, rows []*types.ResearchMember) error
	ReplacePartners(ctx context.Context, tx *gorm.DB, researchID uuid.UUID, partnerIDs []uuid.UUID) error
	AttachDocumentation(ctx context.Context, tx *gorm.DB, row *types.ResearchDocumentation) error
	ClearThumbnail(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error
	DetachDocumentation(ctx context.Context, tx *gorm.DB, researchID, documentationID uuid.UUID) error
	DeletePivotsByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error
	CountMembersByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) (int64, error)
}

type researchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResearchRepo(db *gorm.DB, baseLog *logger.Logger) ResearchRepo {
	return &researchRepo{db: db, log: baseLog.With("repo", "ResearchRepo")}
}

func researchPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Progresses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Progresses.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Progresses.Videos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Progresses.Maps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Progresses.Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Publication").
		Preload("Members.Member").
		Preload("Partners.Partner").
		Preload("Documentation.Documentation")
}

func (rr *researchRepo) Create(ctx context.Context, tx *gorm.DB, research *types.Research) (*types.Research, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Omit("Progresses", "Publication", "Members", "Partners", "Documentation").
		Create(research).Error; err != nil {
		return nil, err
	}
	return research, nil
}

func (rr *researchRepo) GetByID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) (*types.Research, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var research types.Research
	if err := researchPreloads(transaction.WithContext(ctx)).
		Where("id = ?", researchID).
		First(&research).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &research, nil
}

func (rr *researchRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Research, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Research
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *researchRepo) ListWithRelations(ctx context.Context, tx *gorm.DB) ([]*types.Research, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Research
	if err := researchPreloads(transaction.WithContext(ctx)).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *researchRepo) ListByYear(ctx context.Context, tx *gorm.DB, year int) ([]*types.Research, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Research
	if err := researchPreloads(transaction.WithContext(ctx)).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *researchRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Research, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Research
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *researchRepo) Update(ctx context.Context, tx *gorm.DB, research *types.Research) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Research{}).
		Where("id = ?", research.ID).
		Updates(map[string]any{
			"title_id":       research.Title.ID,
			"title_en":       research.Title.EN,
			"description_id": research.Description.ID,
			"description_en": research.Description.EN,
			"latitude":       research.Latitude,
			"longitude":      research.Longitude,
			"start_date":     research.StartDate,
			"end_date":       research.EndDate,
		}).Error
}

func (rr *researchRepo) Delete(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", researchID).
		Delete(&types.Research{}).Error
}

func (rr *researchRepo) ReplaceMembers(ctx context.Context, tx *gorm.DB, researchID uuid.UUID, rows []*types.ResearchMember) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Where("research_id = ?", researchID).
		Delete(&types.ResearchMember{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (rr *researchRepo) ReplacePartners(ctx context.Context, tx *gorm.DB, researchID uuid.UUID, partnerIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Where("research_id = ?", researchID).
		Delete(&types.ResearchPartner{}).Error; err != nil {
		return err
	}
	if len(partnerIDs) == 0 {
		return nil
	}
	rows := make([]*types.ResearchPartner, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		rows = append(rows, &types.ResearchPartner{ResearchID: researchID, PartnerID: id})
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (rr *researchRepo) AttachDocumentation(ctx context.Context, tx *gorm.DB, row *types.ResearchDocumentation) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Create(row).Error
}

func (rr *researchRepo) ClearThumbnail(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.ResearchDocumentation{}).
		Where("research_id = ?", researchID).
		Update("is_thumbnail", false).Error
}

func (rr *researchRepo) DetachDocumentation(ctx context.Context, tx *gorm.DB, researchID, documentationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Where("research_id = ? AND documentation_id = ?", researchID, documentationID).
		Delete(&types.ResearchDocumentation{}).Error
}

func (rr *researchRepo) DeletePivotsByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Where("research_id = ?", researchID).
		Delete(&types.ResearchMember{}).Error; err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).
		Where("research_id = ?", researchID).
		Delete(&types.ResearchPartner{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("research_id = ?", researchID).
		Delete(&types.ResearchDocumentation{}).Error
}

func (rr *researchRepo) CountMembersByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ResearchMember{}).
		Where("research_id = ?", researchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
