package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "hashed-password"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestSegment(t *testing.T, db *gorm.DB, authorID uint, parentID *uint, published time.Time) *models.Segment {
	t.Helper()
	part := 1
	if parentID != nil {
		var parent models.Segment
		require.NoError(t, db.First(&parent, *parentID).Error)
		part = parent.StoryPart + 1
	}
	segment := &models.Segment{
		AuthorID:      authorID,
		StoryTitle:    "The Long Road",
		SegmentTitle:  "Chapter",
		Content:       "Some content for the road.",
		ParentID:      parentID,
		StoryPart:     part,
		DatePublished: published,
	}
	require.NoError(t, db.Create(segment).Error)
	return segment
}

func TestUserRepositoryGetByUsernameCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "StoryTeller")

	user, err := repo.GetByUsername(ctx, "storyteller")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "StoryTeller", user.Username)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryFollowIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	added, err := repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, added)

	// Second follow of the same edge is a no-op, not an error.
	added, err = repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, added)

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	removed, err := repo.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUserRepositorySoftDeleteSeversFollowEdges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.Follow(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, alice.ID))

	var alice2 models.User
	require.NoError(t, db.First(&alice2, alice.ID).Error)
	assert.True(t, alice2.Deleted)

	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? OR followee_id = ?", alice.ID, alice.ID).
		Count(&edges).Error)
	assert.Zero(t, edges)
}

func TestUserRepositoryListingsExcludeDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = repo.Follow(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	// Flag carol deleted without going through SoftDelete, so her edge
	// survives and only the listing filter can hide her.
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", carol.ID).
		Update("deleted", true).Error)

	followers, err := repo.Followers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "bob", followers[0].Username)
}

func TestUserRepositoryAdjustPublicity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	got, err := repo.AdjustPublicity(ctx, alice.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = repo.AdjustPublicity(ctx, alice.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = repo.AdjustPublicity(ctx, alice.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestSegmentRepositoryLikeIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSegmentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	segment := createTestSegment(t, db, author.ID, nil, time.Now())

	added, err := repo.Like(ctx, reader.ID, segment.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Like(ctx, reader.ID, segment.ID)
	require.NoError(t, err)
	assert.False(t, added)

	count, err := repo.LikeCount(ctx, segment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	removed, err := repo.Unlike(ctx, reader.ID, segment.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unlike(ctx, reader.ID, segment.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSegmentRepositoryChildrenNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSegmentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	root := createTestSegment(t, db, author.ID, nil, base)
	older := createTestSegment(t, db, author.ID, &root.ID, base.Add(time.Hour))
	newer := createTestSegment(t, db, author.ID, &root.ID, base.Add(2*time.Hour))

	children, err := repo.GetChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, newer.ID, children[0].ID)
	assert.Equal(t, older.ID, children[1].ID)
	assert.Equal(t, 2, children[0].StoryPart)
}

func TestSegmentRepositoryGetByAuthorIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSegmentRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	createTestSegment(t, db, alice.ID, nil, base)
	fromBob := createTestSegment(t, db, bob.ID, nil, base.Add(time.Hour))
	createTestSegment(t, db, carol.ID, nil, base.Add(2*time.Hour))

	segments, err := repo.GetByAuthorIDs(ctx, []uint{alice.ID, bob.ID})
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, fromBob.ID, segments[0].ID)
	assert.Equal(t, "bob", segments[0].Author.Username)

	empty, err := repo.GetByAuthorIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDraftRepositoryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	first := &models.Draft{
		AuthorID:     author.ID,
		StoryTitle:   "The Long Road",
		SegmentTitle: "Opening",
		Content:      "A beginning.",
		StoryPart:    1,
		LastModified: base,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Draft{
		AuthorID:     author.ID,
		StoryTitle:   "The Long Road",
		SegmentTitle: "Detour",
		Content:      "Another beginning.",
		StoryPart:    1,
		LastModified: base.Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, second))

	drafts, err := repo.GetByAuthorID(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, second.ID, drafts[0].ID)

	// An edit that bumps LastModified moves the draft to the front.
	first.Content = "A revised beginning."
	first.LastModified = base.Add(2 * time.Hour)
	require.NoError(t, repo.Save(ctx, first))

	drafts, err = repo.GetByAuthorID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, drafts[0].ID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	missing, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
