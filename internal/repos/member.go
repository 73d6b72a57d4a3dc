package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, member *types.Member) (*types.Member, error)
	GetByID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (*types.Member, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Member, error)
	ListWithRelations(ctx context.Context, tx *gorm.DB) ([]*types.Member, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Member, error)
	Update(ctx context.Context, tx *gorm.DB, member *types.Member) error
	Delete(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error

	CreateEducations(ctx context.Context, tx *gorm.DB, rows []*types.MemberEducation) error
	DeleteEducationsByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error
	ListEducationsByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.MemberEducation, error)

	AttachExpertise(ctx context.Context, tx *gorm.DB, memberID uuid.UUID, expertiseIDs []uuid.UUID) error
	DetachExpertiseByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error
	CountExpertiseLinksByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (int64, error)
	CountEducationsByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (int64, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, member *types.Member) (*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Omit("Educations", "Expertises", "Researches").Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (mr *memberRepo) GetByID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var member types.Member
	if err := transaction.WithContext(ctx).
		Preload("Educations", func(db *gorm.DB) *gorm.DB { return db.Order("year ASC") }).
		Preload("Expertises.Expertise").
		Preload("Researches.Research").
		Where("id = ?", memberID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (mr *memberRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) ListWithRelations(ctx context.Context, tx *gorm.DB) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Preload("Educations", func(db *gorm.DB) *gorm.DB { return db.Order("year ASC") }).
		Preload("Expertises.Expertise").
		Preload("Researches.Research").
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) Update(ctx context.Context, tx *gorm.DB, member *types.Member) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]any{
			"name":              member.Name,
			"role":              member.Role,
			"is_alumni":         member.IsAlumni,
			"is_head":           member.IsHead,
			"email":             member.Email,
			"phone":             member.Phone,
			"photo_url":         member.PhotoURL,
			"publication_links": member.PublicationLinks,
		}).Error
}

func (mr *memberRepo) Delete(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", memberID).
		Delete(&types.Member{}).Error
}

func (mr *memberRepo) CreateEducations(ctx context.Context, tx *gorm.DB, rows []*types.MemberEducation) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (mr *memberRepo) DeleteEducationsByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	return transaction.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&types.MemberEducation{}).Error
}

func (mr *memberRepo) ListEducationsByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.MemberEducation, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MemberEducation
	if err := transaction.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("year ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) AttachExpertise(ctx context.Context, tx *gorm.DB, memberID uuid.UUID, expertiseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(expertiseIDs) == 0 {
		return nil
	}
	links := make([]*types.MemberExpertiseLink, 0, len(expertiseIDs))
	for _, id := range expertiseIDs {
		links = append(links, &types.MemberExpertiseLink{MemberID: memberID, ExpertiseID: id})
	}
	return transaction.WithContext(ctx).Create(&links).Error
}

func (mr *memberRepo) DetachExpertiseByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	return transaction.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&types.MemberExpertiseLink{}).Error
}

func (mr *memberRepo) CountExpertiseLinksByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.MemberExpertiseLink{}).
		Where("member_id = ?", memberID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (mr *memberRepo) CountEducationsByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.MemberEducation{}).
		Where("member_id = ?", memberID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
