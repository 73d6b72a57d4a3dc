package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type MemberExpertiseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, expertise *types.MemberExpertise) (*types.MemberExpertise, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.MemberExpertise, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MemberExpertise, error)
	Update(ctx context.Context, tx *gorm.DB, expertise *types.MemberExpertise) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DetachByExpertiseID(ctx context.Context, tx *gorm.DB, expertiseID uuid.UUID) error
}

type memberExpertiseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberExpertiseRepo(db *gorm.DB, baseLog *logger.Logger) MemberExpertiseRepo {
	return &memberExpertiseRepo{db: db, log: baseLog.With("repo", "MemberExpertiseRepo")}
}

func (er *memberExpertiseRepo) Create(ctx context.Context, tx *gorm.DB, expertise *types.MemberExpertise) (*types.MemberExpertise, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if err := transaction.WithContext(ctx).Create(expertise).Error; err != nil {
		return nil, err
	}
	return expertise, nil
}

func (er *memberExpertiseRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.MemberExpertise, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.MemberExpertise
	if err := transaction.WithContext(ctx).
		Order("name_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *memberExpertiseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MemberExpertise, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.MemberExpertise
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *memberExpertiseRepo) Update(ctx context.Context, tx *gorm.DB, expertise *types.MemberExpertise) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Model(&types.MemberExpertise{}).
		Where("id = ?", expertise.ID).
		Updates(map[string]any{
			"name_id": expertise.Name.ID,
			"name_en": expertise.Name.EN,
		}).Error
}

func (er *memberExpertiseRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MemberExpertise{}).Error
}

func (er *memberExpertiseRepo) DetachByExpertiseID(ctx context.Context, tx *gorm.DB, expertiseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Where("expertise_id = ?", expertiseID).
		Delete(&types.MemberExpertiseLink{}).Error
}
