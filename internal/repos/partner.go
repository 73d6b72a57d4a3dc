package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type PartnerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, partner *types.Partner) (*types.Partner, error)
	GetByID(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) (*types.Partner, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, partnerIDs []uuid.UUID) ([]*types.Partner, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Partner, error)
	Update(ctx context.Context, tx *gorm.DB, partner *types.Partner) error
	Delete(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) error

	CreateMember(ctx context.Context, tx *gorm.DB, member *types.PartnerMember) (*types.PartnerMember, error)
	GetMemberByID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (*types.PartnerMember, error)
	UpdateMember(ctx context.Context, tx *gorm.DB, member *types.PartnerMember) error
	DeleteMember(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error
	DeleteMembersByPartnerID(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) error
	DeletePivotsByPartnerID(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) error
}

type partnerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPartnerRepo(db *gorm.DB, baseLog *logger.Logger) PartnerRepo {
	return &partnerRepo{db: db, log: baseLog.With("repo", "PartnerRepo")}
}

func (pr *partnerRepo) Create(ctx context.Context, tx *gorm.DB, partner *types.Partner) (*types.Partner, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Omit("Members").Create(partner).Error; err != nil {
		return nil, err
	}
	return partner, nil
}

func (pr *partnerRepo) GetByID(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) (*types.Partner, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var partner types.Partner
	if err := transaction.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("id = ?", partnerID).
		First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

func (pr *partnerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, partnerIDs []uuid.UUID) ([]*types.Partner, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Partner
	if len(partnerIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", partnerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *partnerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Partner, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Partner
	if err := transaction.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *partnerRepo) Update(ctx context.Context, tx *gorm.DB, partner *types.Partner) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Partner{}).
		Where("id = ?", partner.ID).
		Updates(map[string]any{
			"name":     partner.Name,
			"logo_url": partner.LogoURL,
			"website":  partner.Website,
		}).Error
}

func (pr *partnerRepo) Delete(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", partnerID).
		Delete(&types.Partner{}).Error
}

func (pr *partnerRepo) CreateMember(ctx context.Context, tx *gorm.DB, member *types.PartnerMember) (*types.PartnerMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (pr *partnerRepo) GetMemberByID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (*types.PartnerMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var member types.PartnerMember
	if err := transaction.WithContext(ctx).
		Where("id = ?", memberID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (pr *partnerRepo) UpdateMember(ctx context.Context, tx *gorm.DB, member *types.PartnerMember) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.PartnerMember{}).
		Where("id = ?", member.ID).
		Updates(map[string]any{
			"name":      member.Name,
			"role":      member.Role,
			"photo_url": member.PhotoURL,
		}).Error
}

func (pr *partnerRepo) DeleteMember(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", memberID).
		Delete(&types.PartnerMember{}).Error
}

func (pr *partnerRepo) DeleteMembersByPartnerID(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Delete(&types.PartnerMember{}).Error
}

func (pr *partnerRepo) DeletePivotsByPartnerID(ctx context.Context, tx *gorm.DB, partnerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Delete(&types.ResearchPartner{}).Error
}
