package service

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// DraftEdit carries a partial draft update: nil fields are left untouched.
type DraftEdit struct {
	StoryTitle   *string
	SegmentTitle *string
	Content      *string
}

// DraftService handles the mutable staging area for unpublished segments.
type DraftService struct {
	draftRepo repository.DraftRepository
	segments  *SegmentService
}

// NewDraftService creates a new draft service
func NewDraftService(draftRepo repository.DraftRepository, segments *SegmentService) *DraftService {
	return &DraftService{draftRepo: draftRepo, segments: segments}
}

// Create stages a new draft. A parented draft must reference a published
// segment; its story part is fixed from the parent at creation time.
func (s *DraftService) Create(ctx context.Context, authorID uint, in SegmentInput) (*models.Draft, error) {
	if err := s.segments.validateInput(in); err != nil {
		return nil, err
	}
	part, err := s.segments.resolveStoryPart(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	draft := &models.Draft{
		AuthorID:     authorID,
		StoryTitle:   in.StoryTitle,
		SegmentTitle: in.SegmentTitle,
		Content:      in.Content,
		ParentID:     in.ParentID,
		StoryPart:    part,
		LastModified: time.Now().UTC(),
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetByID returns the draft or a not-found error.
func (s *DraftService) GetByID(ctx context.Context, id uint) (*models.Draft, error) {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, models.NewNotFoundError("Draft", id)
	}
	return draft, nil
}

// ByAuthor returns the author's drafts, most recently modified first.
func (s *DraftService) ByAuthor(ctx context.Context, authorID uint) ([]models.Draft, error) {
	return s.draftRepo.GetByAuthorID(ctx, authorID)
}

// Edit applies a partial update to the author's own draft and bumps its
// modification time. Edits to someone else's draft are forbidden.
func (s *DraftService) Edit(ctx context.Context, draftID, authorID uint, edit DraftEdit) (*models.Draft, error) {
	draft, err := s.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.AuthorID != authorID {
		return nil, models.NewForbiddenError("You can only edit your own drafts")
	}

	if edit.StoryTitle != nil {
		if err := validation.ValidateTitle("story", *edit.StoryTitle); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		draft.StoryTitle = *edit.StoryTitle
	}
	if edit.SegmentTitle != nil {
		if err := validation.ValidateTitle("segment", *edit.SegmentTitle); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		draft.SegmentTitle = *edit.SegmentTitle
	}
	if edit.Content != nil {
		if err := validation.ValidateContent(*edit.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		draft.Content = *edit.Content
	}

	draft.LastModified = time.Now().UTC()
	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Delete discards the author's own draft.
func (s *DraftService) Delete(ctx context.Context, draftID, authorID uint) error {
	draft, err := s.GetByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft.AuthorID != authorID {
		return models.NewForbiddenError("You can only delete your own drafts")
	}
	return s.draftRepo.Delete(ctx, draftID)
}

// Publish turns the author's draft into a published segment. The segment is
// created first; the draft is removed only after that succeeds, so a failed
// publication leaves the draft intact. If removing the draft fails after
// the segment exists, the publication stands and the orphan is logged.
func (s *DraftService) Publish(ctx context.Context, draftID, authorID uint) (*models.Segment, error) {
	draft, err := s.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.AuthorID != authorID {
		return nil, models.NewForbiddenError("You can only publish your own drafts")
	}

	segment, err := s.segments.create(ctx, draft.AuthorID, SegmentInput{
		StoryTitle:   draft.StoryTitle,
		SegmentTitle: draft.SegmentTitle,
		Content:      draft.Content,
		ParentID:     draft.ParentID,
	}, true)
	if err != nil {
		return nil, err
	}

	if err := s.draftRepo.Delete(ctx, draftID); err != nil {
		middleware.Logger.WarnContext(ctx, "published draft could not be removed",
			slog.Uint64("draft_id", uint64(draftID)),
			slog.Uint64("segment_id", uint64(segment.ID)),
			slog.String("error", err.Error()),
		)
	}
	return segment, nil
}
