package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type LecturerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lecturer *types.Lecturer) (*types.Lecturer, error)
	GetByID(ctx context.Context, tx *gorm.DB, lecturerID uuid.UUID) (*types.Lecturer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Lecturer, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Lecturer, error)
	Update(ctx context.Context, tx *gorm.DB, lecturer *types.Lecturer) error
	Delete(ctx context.Context, tx *gorm.DB, lecturerID uuid.UUID) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type lecturerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLecturerRepo(db *gorm.DB, baseLog *logger.Logger) LecturerRepo {
	return &lecturerRepo{db: db, log: baseLog.With("repo", "LecturerRepo")}
}

func (lr *lecturerRepo) Create(ctx context.Context, tx *gorm.DB, lecturer *types.Lecturer) (*types.Lecturer, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).Create(lecturer).Error; err != nil {
		return nil, err
	}
	return lecturer, nil
}

func (lr *lecturerRepo) GetByID(ctx context.Context, tx *gorm.DB, lecturerID uuid.UUID) (*types.Lecturer, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var lecturer types.Lecturer
	if err := transaction.WithContext(ctx).
		Where("id = ?", lecturerID).
		First(&lecturer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lecturer, nil
}

func (lr *lecturerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Lecturer, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Lecturer
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lecturerRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Lecturer, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Lecturer
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lecturerRepo) Update(ctx context.Context, tx *gorm.DB, lecturer *types.Lecturer) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Lecturer{}).
		Where("id = ?", lecturer.ID).
		Updates(map[string]any{
			"title":        lecturer.Title,
			"description":  lecturer.Description,
			"file_url":     lecturer.FileURL,
			"storage_path": lecturer.StoragePath,
		}).Error
}

func (lr *lecturerRepo) Delete(ctx context.Context, tx *gorm.DB, lecturerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", lecturerID).
		Delete(&types.Lecturer{}).Error
}

func (lr *lecturerRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Lecturer{}).Error
}
