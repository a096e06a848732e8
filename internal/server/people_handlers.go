package server

import (
	"github.com/gofiber/fiber/v2"
)

// SearchPeople handles GET /api/people
// @Summary Search people by username
// @Description Case-insensitive substring match, capped at 20 results
// @Tags people
// @Produce json
// @Param q query string true "Username fragment"
// @Success 200 {array} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /people [get]
func (s *Server) SearchPeople(c *fiber.Ctx) error {
	profiles, err := s.profileService.SearchPeople(c.Context(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"people": profiles,
		"count":  len(profiles),
	})
}

// GetPublicProfile handles GET /api/people/:username
// @Summary View a public profile
// @Description Returns the profile plus the owner's shelves and signature fragrance
// @Tags people
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.PublicProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /people/{username} [get]
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	view, err := s.profileService.GetPublicProfile(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}
