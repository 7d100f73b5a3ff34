// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user and follow-graph data operations.
//
// Lookup methods return (nil, nil) when no row matches so callers can
// distinguish "absent" from a storage failure.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id uint) error

	Follow(ctx context.Context, followerID, followeeID uint) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)

	AdjustPublicity(ctx context.Context, userID uint, delta int) (int, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID reads straight from the database. User rows never go through the
// JSON cache: the password hash and deleted flag are stripped by json:"-"
// and would come back zeroed on a cache hit.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername matches the username case-insensitively.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SoftDelete flips the deleted flag and severs the user from the follow
// graph in both directions. The edge deletions ride in one transaction so
// no individual edge is half-removed.
func (r *userRepository) SoftDelete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("soft_delete", "users")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("deleted", true).Error; err != nil {
			return err
		}
		return tx.
			Where("follower_id = ? OR followee_id = ?", id, id).
			Delete(&models.Follow{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Follow inserts the edge if absent. Returns true when a new edge was
// created; the conflict clause makes the check-and-insert atomic.
func (r *userRepository) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Unfollow removes the edge if present. Returns true when an edge was removed.
func (r *userRepository) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	defer observability.TrackQuery("followers", "follows")()
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followee_id = ? AND users.deleted = ?", userID, false).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	defer observability.TrackQuery("following", "follows")()
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followee_id").
		Where("f.follower_id = ? AND users.deleted = ?", userID, false).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// AdjustPublicity moves the counter by delta as a single in-database update,
// so concurrent likes never lose increments, and returns the new value.
func (r *userRepository) AdjustPublicity(ctx context.Context, userID uint, delta int) (int, error) {
	defer observability.TrackQuery("adjust_publicity", "users")()
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("publicity", gorm.Expr("publicity + ?", delta)).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	var publicity int
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("publicity", &publicity).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return publicity, nil
}
