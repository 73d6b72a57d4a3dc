package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type ResearchProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, progress *types.ResearchProgress) (*types.ResearchProgress, error)
	GetByID(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) (*types.ResearchProgress, error)
	ListByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) ([]*types.ResearchProgress, error)
	Delete(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) error
	DeleteByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error

	CreateImages(ctx context.Context, tx *gorm.DB, rows []*types.ProgressImage) error
	CreateVideos(ctx context.Context, tx *gorm.DB, rows []*types.ProgressVideo) error
	CreateMaps(ctx context.Context, tx *gorm.DB, rows []*types.ProgressMap) error
	CreateTexts(ctx context.Context, tx *gorm.DB, rows []*types.ProgressText) error
	DeleteBlocksByProgressID(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) error
}

type researchProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResearchProgressRepo(db *gorm.DB, baseLog *logger.Logger) ResearchProgressRepo {
	return &researchProgressRepo{db: db, log: baseLog.With("repo", "ResearchProgressRepo")}
}

func (pr *researchProgressRepo) Create(ctx context.Context, tx *gorm.DB, progress *types.ResearchProgress) (*types.ResearchProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).
		Omit("Images", "Videos", "Maps", "Texts").
		Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (pr *researchProgressRepo) GetByID(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) (*types.ResearchProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var progress types.ResearchProgress
	if err := transaction.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Maps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", progressID).
		First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (pr *researchProgressRepo) ListByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) ([]*types.ResearchProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.ResearchProgress
	if err := transaction.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Maps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("research_id = ?", researchID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *researchProgressRepo) Delete(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", progressID).
		Delete(&types.ResearchProgress{}).Error
}

func (pr *researchProgressRepo) DeleteByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.ResearchProgress{}).
		Where("research_id = ?", researchID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if err := pr.DeleteBlocksByProgressID(ctx, transaction, id); err != nil {
			return err
		}
	}
	return transaction.WithContext(ctx).
		Where("research_id = ?", researchID).
		Delete(&types.ResearchProgress{}).Error
}

func (pr *researchProgressRepo) CreateImages(ctx context.Context, tx *gorm.DB, rows []*types.ProgressImage) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (pr *researchProgressRepo) CreateVideos(ctx context.Context, tx *gorm.DB, rows []*types.ProgressVideo) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (pr *researchProgressRepo) CreateMaps(ctx context.Context, tx *gorm.DB, rows []*types.ProgressMap) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (pr *researchProgressRepo) CreateTexts(ctx context.Context, tx *gorm.DB, rows []*types.ProgressText) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (pr *researchProgressRepo) DeleteBlocksByProgressID(ctx context.Context, tx *gorm.DB, progressID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).
		Where("progress_id = ?", progressID).
		Delete(&types.ProgressImage{}).Error; err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).
		Where("progress_id = ?", progressID).
		Delete(&types.ProgressVideo{}).Error; err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).
		Where("progress_id = ?", progressID).
		Delete(&types.ProgressMap{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("progress_id = ?", progressID).
		Delete(&types.ProgressText{}).Error
}
