package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toUserView(user))
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" && req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nothing to update"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), req.Username, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toUserView(user))
}

// DeleteMyAccount handles DELETE /api/users/me
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.Delete(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// ToggleFollow handles PATCH /api/users/follow/:followee
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	outcome, err := s.userService.ToggleFollow(c.Context(), currentUserID(c), c.Params("followee"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": string(outcome)})
}

// GetFollowers handles GET /api/users/followers/:username
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	users, err := s.userService.Followers(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"followers": toUserViews(users)})
}

// GetFollowing handles GET /api/users/following/:username
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	users, err := s.userService.Following(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"following": toUserViews(users)})
}

// GetPublicity handles GET /api/users/publicity/:username
func (s *Server) GetPublicity(c *fiber.Ctx) error {
	publicity, err := s.userService.Publicity(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"publicity": publicity})
}
