package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftService(draftRepo *stubDraftRepo, segRepo *stubSegmentRepo) *DraftService {
	return NewDraftService(draftRepo, newSegmentService(segRepo, &stubUserRepo{}))
}

func TestDraftCreateFromPublishedParent(t *testing.T) {
	parentID := uint(8)
	var created *models.Draft
	segRepo := &stubSegmentRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Segment, error) {
			return &models.Segment{ID: id, StoryPart: 2}, nil
		},
	}
	draftRepo := &stubDraftRepo{
		createFn: func(ctx context.Context, draft *models.Draft) error {
			draft.ID = 1
			created = draft
			return nil
		},
	}
	svc := newDraftService(draftRepo, segRepo)

	draft, err := svc.Create(context.Background(), 1, SegmentInput{
		StoryTitle:   "The Long Road",
		SegmentTitle: "Fork",
		Content:      "A rough continuation.",
		ParentID:     &parentID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, draft.StoryPart)
	assert.False(t, created.LastModified.IsZero())
}

func TestDraftCreateMissingParentFails(t *testing.T) {
	parentID := uint(99)
	segRepo := &stubSegmentRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Segment, error) {
			return nil, nil
		},
	}
	svc := newDraftService(&stubDraftRepo{}, segRepo)

	_, err := svc.Create(context.Background(), 1, SegmentInput{
		StoryTitle:   "The Long Road",
		SegmentTitle: "Fork",
		Content:      "A rough continuation.",
		ParentID:     &parentID,
	})
	assert.Equal(t, "NOT_FOUND", appCode(t, err))
}

func TestDraftEditBumpsLastModified(t *testing.T) {
	old := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	var saved *models.Draft
	draftRepo := &stubDraftRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Draft, error) {
			return &models.Draft{ID: id, AuthorID: 1, StoryTitle: "Old", SegmentTitle: "Old", Content: "Old", LastModified: old}, nil
		},
		saveFn: func(ctx context.Context, draft *models.Draft) error {
			saved = draft
			return nil
		},
	}
	svc := newDraftService(draftRepo, &stubSegmentRepo{})

	content := "New content."
	draft, err := svc.Edit(context.Background(), 1, 1, DraftEdit{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "New content.", draft.Content)
	assert.Equal(t, "Old", draft.StoryTitle)
	assert.True(t, saved.LastModified.After(old))
}

func TestDraftEditWrongAuthorForbidden(t *testing.T) {
	draftRepo := &stubDraftRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Draft, error) {
			return &models.Draft{ID: id, AuthorID: 2}, nil
		},
	}
	svc := newDraftService(draftRepo, &stubSegmentRepo{})

	content := "New content."
	_, err := svc.Edit(context.Background(), 1, 1, DraftEdit{Content: &content})
	assert.Equal(t, "FORBIDDEN", appCode(t, err))

	err = svc.Delete(context.Background(), 1, 1)
	assert.Equal(t, "FORBIDDEN", appCode(t, err))

	_, err = svc.Publish(context.Background(), 1, 1)
	assert.Equal(t, "FORBIDDEN", appCode(t, err))
}

func TestDraftEditRejectsInvalidFields(t *testing.T) {
	draftRepo := &stubDraftRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Draft, error) {
			return &models.Draft{ID: id, AuthorID: 1, StoryTitle: "Old", SegmentTitle: "Old", Content: "Old"}, nil
		},
	}
	svc := newDraftService(draftRepo, &stubSegmentRepo{})

	blank := "   "
	_, err := svc.Edit(context.Background(), 1, 1, DraftEdit{StoryTitle: &blank})
	assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))
}

func TestPublishCreatesSegmentThenDeletesDraft(t *testing.T) {
	parentID := uint(2)
	var order []string
	segRepo := &stubSegmentRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Segment, error) {
			return &models.Segment{ID: id, StoryPart: 1}, nil
		},
		createFn: func(ctx context.Context, segment *models.Segment) error {
			segment.ID = 10
			order = append(order, "create-segment")
			return nil
		},
	}
	draftRepo := &stubDraftRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Draft, error) {
			return &models.Draft{
				ID: id, AuthorID: 1,
				StoryTitle: "The Long Road", SegmentTitle: "Fork",
				Content: "A continuation.", ParentID: &parentID, StoryPart: 2,
			}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			order = append(order, "delete-draft")
			return nil
		},
	}
	svc := newDraftService(draftRepo, segRepo)

	segment, err := svc.Publish(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(10), segment.ID)
	assert.Equal(t, 2, segment.StoryPart)
	assert.Equal(t, []string{"create-segment", "delete-draft"}, order)
}

func TestPublishFailureLeavesDraft(t *testing.T) {
	deleted := false
	segRepo := &stubSegmentRepo{
		createFn: func(ctx context.Context, segment *models.Segment) error {
			return models.NewInternalError(errors.New("db down"))
		},
	}
	draftRepo := &stubDraftRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Draft, error) {
			return &models.Draft{
				ID: id, AuthorID: 1,
				StoryTitle: "The Long Road", SegmentTitle: "Fork",
				Content: "A continuation.", StoryPart: 1,
			}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	svc := newDraftService(draftRepo, segRepo)

	_, err := svc.Publish(context.Background(), 5, 1)
	require.Error(t, err)
	assert.False(t, deleted)
}

func TestPublishSurvivesDraftDeleteFailure(t *testing.T) {
	segRepo := &stubSegmentRepo{
		createFn: func(ctx context.Context, segment *models.Segment) error {
			segment.ID = 10
			return nil
		},
	}
	draftRepo := &stubDraftRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Draft, error) {
			return &models.Draft{
				ID: id, AuthorID: 1,
				StoryTitle: "The Long Road", SegmentTitle: "Fork",
				Content: "A continuation.", StoryPart: 1,
			}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			return models.NewInternalError(errors.New("db down"))
		},
	}
	svc := newDraftService(draftRepo, segRepo)

	segment, err := svc.Publish(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(10), segment.ID)
}
