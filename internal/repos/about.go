package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type AboutRepo interface {
	Get(ctx context.Context, tx *gorm.DB) (*types.About, error)
	Create(ctx context.Context, tx *gorm.DB, about *types.About) (*types.About, error)
	Update(ctx context.Context, tx *gorm.DB, about *types.About) error
}

type aboutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAboutRepo(db *gorm.DB, baseLog *logger.Logger) AboutRepo {
	return &aboutRepo{db: db, log: baseLog.With("repo", "AboutRepo")}
}

// Get returns the singleton row, or nil when it has not been seeded yet.
func (ar *aboutRepo) Get(ctx context.Context, tx *gorm.DB) (*types.About, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var about types.About
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &about, nil
}

func (ar *aboutRepo) Create(ctx context.Context, tx *gorm.DB, about *types.About) (*types.About, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(about).Error; err != nil {
		return nil, err
	}
	return about, nil
}

func (ar *aboutRepo) Update(ctx context.Context, tx *gorm.DB, about *types.About) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).
		Model(&types.About{}).
		Where("id = ?", about.ID).
		Updates(map[string]any{
			"description_id": about.Description.ID,
			"description_en": about.Description.EN,
			"purpose_id":     about.Purpose.ID,
			"purpose_en":     about.Purpose.EN,
			"email":          about.Email,
			"phone":          about.Phone,
			"address":        about.Address,
		}).Error
}
