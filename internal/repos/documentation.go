package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

// DocumentationRepo never mixes the two media populations: research media
// (about_type IS NULL) and about-page media are listed by separate methods.
type DocumentationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, doc *types.Documentation) (*types.Documentation, error)
	GetByID(ctx context.Context, tx *gorm.DB, docID uuid.UUID) (*types.Documentation, error)
	ListResearchMedia(ctx context.Context, tx *gorm.DB, category string) ([]*types.Documentation, error)
	ListAboutMedia(ctx context.Context, tx *gorm.DB) ([]*types.Documentation, error)
	Delete(ctx context.Context, tx *gorm.DB, docID uuid.UUID) error
	DeleteLinksByDocumentationID(ctx context.Context, tx *gorm.DB, docID uuid.UUID) error
}

type documentationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentationRepo(db *gorm.DB, baseLog *logger.Logger) DocumentationRepo {
	return &documentationRepo{db: db, log: baseLog.With("repo", "DocumentationRepo")}
}

func (dr *documentationRepo) Create(ctx context.Context, tx *gorm.DB, doc *types.Documentation) (*types.Documentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if err := transaction.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (dr *documentationRepo) GetByID(ctx context.Context, tx *gorm.DB, docID uuid.UUID) (*types.Documentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var doc types.Documentation
	if err := transaction.WithContext(ctx).
		Where("id = ?", docID).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (dr *documentationRepo) ListResearchMedia(ctx context.Context, tx *gorm.DB, category string) ([]*types.Documentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	q := transaction.WithContext(ctx).Where("about_type IS NULL")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var results []*types.Documentation
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentationRepo) ListAboutMedia(ctx context.Context, tx *gorm.DB) ([]*types.Documentation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.Documentation
	if err := transaction.WithContext(ctx).
		Where("about_type IS NOT NULL").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentationRepo) Delete(ctx context.Context, tx *gorm.DB, docID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", docID).
		Delete(&types.Documentation{}).Error
}

func (dr *documentationRepo) DeleteLinksByDocumentationID(ctx context.Context, tx *gorm.DB, docID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).
		Where("documentation_id = ?", docID).
		Delete(&types.ResearchDocumentation{}).Error
}
