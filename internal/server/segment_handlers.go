package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSegments handles GET /api/segments with an optional ?author= filter.
func (s *Server) GetSegments(c *fiber.Ctx) error {
	if author := c.Query("author"); author != "" {
		segments, err := s.segmentService.ByAuthor(c.Context(), author)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		return c.JSON(fiber.Map{"segments": toSegmentViews(segments)})
	}

	p := parsePagination(c, 20)
	segments, err := s.segmentService.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"segments": toSegmentViews(segments)})
}

// CreateSegment handles POST /api/segments
func (s *Server) CreateSegment(c *fiber.Ctx) error {
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

	segment, err := s.segmentService.Create(c.Context(), currentUserID(c), service.SegmentInput{
		StoryTitle:   req.StoryTitle,
		SegmentTitle: req.SegmentTitle,
		Content:      req.Content,
		ParentID:     req.ParentID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// Reload with the author relation for the response projection.
	segment, err = s.segmentService.GetByID(c.Context(), segment.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSegmentView(segment))
}

// GetSegment handles GET /api/segments/:segmentId
func (s *Server) GetSegment(c *fiber.Ctx) error {
	segmentID, err := s.parseID(c, "segmentId")
	if err != nil {
		return nil
	}
	segment, err := s.segmentService.GetByID(c.Context(), segmentID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toSegmentView(segment))
}

// GetSegmentChildren handles GET /api/segments/:segmentId/children
func (s *Server) GetSegmentChildren(c *fiber.Ctx) error {
	segmentID, err := s.parseID(c, "segmentId")
	if err != nil {
		return nil
	}
	children, err := s.segmentService.Children(c.Context(), segmentID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"children": toSegmentViews(children)})
}

// GetStory handles GET /api/segments/:segmentId/story
func (s *Server) GetStory(c *fiber.Ctx) error {
	segmentID, err := s.parseID(c, "segmentId")
	if err != nil {
		return nil
	}
	story, err := s.segmentService.Story(c.Context(), segmentID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"story": toSegmentViews(story)})
}

// ToggleSegmentLike handles PATCH /api/segments/:segmentId/like. Liking an
// already-liked segment unlikes it.
func (s *Server) ToggleSegmentLike(c *fiber.Ctx) error {
	segmentID, err := s.parseID(c, "segmentId")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	added, err := s.segmentService.Like(c.Context(), segmentID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if added {
		return c.JSON(fiber.Map{"message": "liked"})
	}

	if _, err := s.segmentService.Unlike(c.Context(), segmentID, userID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "unliked"})
}

// GetSegmentLikes handles GET /api/segments/:segmentId/likes
func (s *Server) GetSegmentLikes(c *fiber.Ctx) error {
	segmentID, err := s.parseID(c, "segmentId")
	if err != nil {
		return nil
	}
	likerIDs, err := s.segmentService.LikerIDs(c.Context(), segmentID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"likes": likerIDs,
		"count": len(likerIDs),
	})
}

// GetHomepage handles GET /api/segments/homepage?filter=
func (s *Server) GetHomepage(c *fiber.Ctx) error {
	feed, err := s.segmentService.Homepage(c.Context(), currentUserID(c), c.Query("filter"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"segments": toSegmentViews(feed)})
}
