package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyDrafts handles GET /api/drafts
func (s *Server) GetMyDrafts(c *fiber.Ctx) error {
	drafts, err := s.draftService.ByAuthor(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"drafts": toDraftViews(drafts)})
}

// CreateDraft handles POST /api/drafts
func (s *Server) CreateDraft(c *fiber.Ctx) error {
	var req struct {
		StoryTitle   string `json:"story_title"`
		SegmentTitle string `json:"segment_title"`
		Content      string `json:"content"`
		ParentID     *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	draft, err := s.draftService.Create(c.Context(), currentUserID(c), service.SegmentInput{
		StoryTitle:   req.StoryTitle,
		SegmentTitle: req.SegmentTitle,
		Content:      req.Content,
		ParentID:     req.ParentID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// Reload with the author relation for the response projection.
	draft, err = s.draftService.GetByID(c.Context(), draft.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDraftView(draft))
}

// UpdateDraft handles PATCH /api/drafts/:draftId. Omitted fields are left
// untouched; any supplied field is validated and replaced.
func (s *Server) UpdateDraft(c *fiber.Ctx) error {
	draftID, err := s.parseID(c, "draftId")
	if err != nil {
		return nil
	}

	var req struct {
		StoryTitle   *string `json:"story_title"`
		SegmentTitle *string `json:"segment_title"`
		Content      *string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.StoryTitle == nil && req.SegmentTitle == nil && req.Content == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nothing to update"))
	}

	draft, err := s.draftService.Edit(c.Context(), draftID, currentUserID(c), service.DraftEdit{
		StoryTitle:   req.StoryTitle,
		SegmentTitle: req.SegmentTitle,
		Content:      req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toDraftView(draft))
}

// DeleteDraft handles DELETE /api/drafts/:draftId
func (s *Server) DeleteDraft(c *fiber.Ctx) error {
	draftID, err := s.parseID(c, "draftId")
	if err != nil {
		return nil
	}
	if err := s.draftService.Delete(c.Context(), draftID, currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Draft deleted"})
}

// PublishDraft handles POST /api/drafts/:draftId/publish
func (s *Server) PublishDraft(c *fiber.Ctx) error {
	draftID, err := s.parseID(c, "draftId")
	if err != nil {
		return nil
	}

	segment, err := s.draftService.Publish(c.Context(), draftID, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	segment, err = s.segmentService.GetByID(c.Context(), segment.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSegmentView(segment))
}
