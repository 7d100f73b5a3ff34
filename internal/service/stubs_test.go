package service

import (
	"context"

	"inkwell/internal/models"
)

// Hand-written stubs for the repository interfaces. Each method delegates to
// a settable function field, so tests only wire what they exercise.

type stubUserRepo struct {
	createFn          func(ctx context.Context, user *models.User) error
	getByIDFn         func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn   func(ctx context.Context, username string) (*models.User, error)
	updateFn          func(ctx context.Context, user *models.User) error
	softDeleteFn      func(ctx context.Context, id uint) error
	followFn          func(ctx context.Context, followerID, followeeID uint) (bool, error)
	unfollowFn        func(ctx context.Context, followerID, followeeID uint) (bool, error)
	isFollowingFn     func(ctx context.Context, followerID, followeeID uint) (bool, error)
	followersFn       func(ctx context.Context, userID uint) ([]models.User, error)
	followingFn       func(ctx context.Context, userID uint) ([]models.User, error)
	followingIDsFn    func(ctx context.Context, userID uint) ([]uint, error)
	adjustPublicityFn func(ctx context.Context, userID uint, delta int) (int, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *stubUserRepo) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}
func (s *stubUserRepo) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *stubUserRepo) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *stubUserRepo) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *stubUserRepo) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *stubUserRepo) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *stubUserRepo) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *stubUserRepo) AdjustPublicity(ctx context.Context, userID uint, delta int) (int, error) {
	return s.adjustPublicityFn(ctx, userID, delta)
}

type stubSegmentRepo struct {
	createFn         func(ctx context.Context, segment *models.Segment) error
	getByIDFn        func(ctx context.Context, id uint) (*models.Segment, error)
	listFn           func(ctx context.Context, limit, offset int) ([]models.Segment, error)
	getByAuthorIDFn  func(ctx context.Context, authorID uint) ([]models.Segment, error)
	getChildrenFn    func(ctx context.Context, parentID uint) ([]models.Segment, error)
	getByAuthorIDsFn func(ctx context.Context, authorIDs []uint) ([]models.Segment, error)
	likeFn           func(ctx context.Context, userID, segmentID uint) (bool, error)
	unlikeFn         func(ctx context.Context, userID, segmentID uint) (bool, error)
	likerIDsFn       func(ctx context.Context, segmentID uint) ([]uint, error)
	likeCountFn      func(ctx context.Context, segmentID uint) (int64, error)
}

func (s *stubSegmentRepo) Create(ctx context.Context, segment *models.Segment) error {
	return s.createFn(ctx, segment)
}
func (s *stubSegmentRepo) GetByID(ctx context.Context, id uint) (*models.Segment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *stubSegmentRepo) List(ctx context.Context, limit, offset int) ([]models.Segment, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *stubSegmentRepo) GetByAuthorID(ctx context.Context, authorID uint) ([]models.Segment, error) {
	return s.getByAuthorIDFn(ctx, authorID)
}
func (s *stubSegmentRepo) GetChildren(ctx context.Context, parentID uint) ([]models.Segment, error) {
	return s.getChildrenFn(ctx, parentID)
}
func (s *stubSegmentRepo) GetByAuthorIDs(ctx context.Context, authorIDs []uint) ([]models.Segment, error) {
	return s.getByAuthorIDsFn(ctx, authorIDs)
}
func (s *stubSegmentRepo) Like(ctx context.Context, userID, segmentID uint) (bool, error) {
	return s.likeFn(ctx, userID, segmentID)
}
func (s *stubSegmentRepo) Unlike(ctx context.Context, userID, segmentID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, segmentID)
}
func (s *stubSegmentRepo) LikerIDs(ctx context.Context, segmentID uint) ([]uint, error) {
	return s.likerIDsFn(ctx, segmentID)
}
func (s *stubSegmentRepo) LikeCount(ctx context.Context, segmentID uint) (int64, error) {
	return s.likeCountFn(ctx, segmentID)
}

type stubDraftRepo struct {
	createFn        func(ctx context.Context, draft *models.Draft) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Draft, error)
	getByAuthorIDFn func(ctx context.Context, authorID uint) ([]models.Draft, error)
	saveFn          func(ctx context.Context, draft *models.Draft) error
	deleteFn        func(ctx context.Context, id uint) error
}

func (s *stubDraftRepo) Create(ctx context.Context, draft *models.Draft) error {
	return s.createFn(ctx, draft)
}
func (s *stubDraftRepo) GetByID(ctx context.Context, id uint) (*models.Draft, error) {
	return s.getByIDFn(ctx, id)
}
func (s *stubDraftRepo) GetByAuthorID(ctx context.Context, authorID uint) ([]models.Draft, error) {
	return s.getByAuthorIDFn(ctx, authorID)
}
func (s *stubDraftRepo) Save(ctx context.Context, draft *models.Draft) error {
	return s.saveFn(ctx, draft)
}
func (s *stubDraftRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
