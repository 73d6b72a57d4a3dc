package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/types"
)

type PublicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, publication *types.Publication) (*types.Publication, error)
	GetByID(ctx context.Context, tx *gorm.DB, publicationID uuid.UUID) (*types.Publication, error)
	GetByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) (*types.Publication, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Publication, error)
	ListByYear(ctx context.Context, tx *gorm.DB, year int) ([]*types.Publication, error)
	Update(ctx context.Context, tx *gorm.DB, publication *types.Publication) error
	Delete(ctx context.Context, tx *gorm.DB, publicationID uuid.UUID) error
	DeleteByResearchIDs(ctx context.Context, tx *gorm.DB, researchIDs []uuid.UUID) error
}

type publicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
	return &publicationRepo{db: db, log: baseLog.With("repo", "PublicationRepo")}
}

func (pr *publicationRepo) Create(ctx context.Context, tx *gorm.DB, publication *types.Publication) (*types.Publication, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(publication).Error; err != nil {
		return nil, err
	}
	return publication, nil
}

func (pr *publicationRepo) GetByID(ctx context.Context, tx *gorm.DB, publicationID uuid.UUID) (*types.Publication, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var publication types.Publication
	if err := transaction.WithContext(ctx).
		Where("id = ?", publicationID).
		First(&publication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &publication, nil
}

func (pr *publicationRepo) GetByResearchID(ctx context.Context, tx *gorm.DB, researchID uuid.UUID) (*types.Publication, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var publication types.Publication
	if err := transaction.WithContext(ctx).
		Where("research_id = ?", researchID).
		First(&publication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &publication, nil
}

func (pr *publicationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Publication, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Publication
	if err := transaction.WithContext(ctx).
		Order("year DESC, title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *publicationRepo) ListByYear(ctx context.Context, tx *gorm.DB, year int) ([]*types.Publication, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Publication
	if err := transaction.WithContext(ctx).
		Where("year = ?", year).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *publicationRepo) Update(ctx context.Context, tx *gorm.DB, publication *types.Publication) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Publication{}).
		Where("id = ?", publication.ID).
		Updates(map[string]any{
			"title":   publication.Title,
			"authors": publication.Authors,
			"journal": publication.Journal,
			"year":    publication.Year,
			"doi":     publication.DOI,
			"url":     publication.URL,
		}).Error
}

func (pr *publicationRepo) Delete(ctx context.Context, tx *gorm.DB, publicationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", publicationID).
		Delete(&types.Publication{}).Error
}

func (pr *publicationRepo) DeleteByResearchIDs(ctx context.Context, tx *gorm.DB, researchIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(researchIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("research_id IN ?", researchIDs).
		Delete(&types.Publication{}).Error
}
