package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// DraftRepository defines the interface for draft data operations.
type DraftRepository interface {
	Create(ctx context.Context, draft *models.Draft) error
	GetByID(ctx context.Context, id uint) (*models.Draft, error)
	GetByAuthorID(ctx context.Context, authorID uint) ([]models.Draft, error)
	Save(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, id uint) error
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *models.Draft) error {
	defer observability.TrackQuery("create", "drafts")()
	if err := r.db.WithContext(ctx).Create(draft).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *draftRepository) GetByID(ctx context.Context, id uint) (*models.Draft, error) {
	var draft models.Draft
	err := r.db.WithContext(ctx).Preload("Author").First(&draft, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &draft, nil
}

// GetByAuthorID returns the author's workbench, most recently touched first.
func (r *draftRepository) GetByAuthorID(ctx context.Context, authorID uint) ([]models.Draft, error) {
	defer observability.TrackQuery("get_by_author", "drafts")()
	var drafts []models.Draft
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("last_modified DESC, id DESC").
		Find(&drafts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return drafts, nil
}

func (r *draftRepository) Save(ctx context.Context, draft *models.Draft) error {
	defer observability.TrackQuery("save", "drafts")()
	if err := r.db.WithContext(ctx).Save(draft).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *draftRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "drafts")()
	if err := r.db.WithContext(ctx).Delete(&models.Draft{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
