package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SegmentRepository defines the interface for published segment and like
// data operations.
type SegmentRepository interface {
	Create(ctx context.Context, segment *models.Segment) error
	GetByID(ctx context.Context, id uint) (*models.Segment, error)
	List(ctx context.Context, limit, offset int) ([]models.Segment, error)
	GetByAuthorID(ctx context.Context, authorID uint) ([]models.Segment, error)
	GetChildren(ctx context.Context, parentID uint) ([]models.Segment, error)
	GetByAuthorIDs(ctx context.Context, authorIDs []uint) ([]models.Segment, error)

	Like(ctx context.Context, userID, segmentID uint) (bool, error)
	Unlike(ctx context.Context, userID, segmentID uint) (bool, error)
	LikerIDs(ctx context.Context, segmentID uint) ([]uint, error)
	LikeCount(ctx context.Context, segmentID uint) (int64, error)
}

type segmentRepository struct {
	db *gorm.DB
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db *gorm.DB) SegmentRepository {
	return &segmentRepository{db: db}
}

func (r *segmentRepository) Create(ctx context.Context, segment *models.Segment) error {
	defer observability.TrackQuery("create", "segments")()
	if err := r.db.WithContext(ctx).Create(segment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSegment(ctx, segment.ID, segment.ParentID)
	return nil
}

func (r *segmentRepository) GetByID(ctx context.Context, id uint) (*models.Segment, error) {
	var segment models.Segment
	err := cache.Aside(ctx, cache.SegmentKey(id), &segment, cache.SegmentTTL, func() error {
		return r.db.WithContext(ctx).Preload("Author").First(&segment, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &segment, nil
}

func (r *segmentRepository) List(ctx context.Context, limit, offset int) ([]models.Segment, error) {
	defer observability.TrackQuery("list", "segments")()
	var segments []models.Segment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("date_published DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&segments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return segments, nil
}

func (r *segmentRepository) GetByAuthorID(ctx context.Context, authorID uint) ([]models.Segment, error) {
	defer observability.TrackQuery("get_by_author", "segments")()
	var segments []models.Segment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("date_published DESC, id DESC").
		Find(&segments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return segments, nil
}

func (r *segmentRepository) GetChildren(ctx context.Context, parentID uint) ([]models.Segment, error) {
	var segments []models.Segment
	err := cache.Aside(ctx, cache.ChildrenKey(parentID), &segments, cache.ChildrenTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Where("parent_id = ?", parentID).
			Order("date_published DESC, id DESC").
			Find(&segments).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return segments, nil
}

// GetByAuthorIDs returns all segments whose author is in authorIDs, newest
// first. This is the homepage candidate query.
func (r *segmentRepository) GetByAuthorIDs(ctx context.Context, authorIDs []uint) ([]models.Segment, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	defer observability.TrackQuery("get_by_authors", "segments")()
	var segments []models.Segment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("date_published DESC, id DESC").
		Find(&segments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return segments, nil
}

// Like inserts the (user, segment) row if absent. Returns true only when the
// row was actually created; the conflict clause keeps concurrent double-taps
// from counting twice.
func (r *segmentRepository) Like(ctx context.Context, userID, segmentID uint) (bool, error) {
	like := models.SegmentLike{UserID: userID, SegmentID: segmentID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Unlike removes the (user, segment) row if present. Returns true only when
// a row was actually deleted.
func (r *segmentRepository) Unlike(ctx context.Context, userID, segmentID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND segment_id = ?", userID, segmentID).
		Delete(&models.SegmentLike{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *segmentRepository) LikerIDs(ctx context.Context, segmentID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.SegmentLike{}).
		Where("segment_id = ?", segmentID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *segmentRepository) LikeCount(ctx context.Context, segmentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SegmentLike{}).
		Where("segment_id = ?", segmentID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
