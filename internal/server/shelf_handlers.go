package server

import (
	"github.com/Levuisha/parfumerie/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyShelves handles GET /api/shelves
// @Summary List the caller's shelf entries
// @Tags shelves
// @Produce json
// @Param shelf query string false "OWNED|WANT|TESTED"
// @Success 200 {array} models.ShelfEntry
// @Failure 401 {object} models.ErrorResponse
// @Router /shelves [get]
// @Security BearerAuth
func (s *Server) GetMyShelves(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	entries, err := s.shelfService.ListShelf(c.Context(), userID, c.Query("shelf"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}

// SetShelfEntry handles PUT /api/shelves/:fragranceId
// @Summary Put a fragrance on a shelf
// @Description Sets the shelf status for a fragrance; a second write replaces the first
// @Tags shelves
// @Accept json
// @Produce json
// @Param fragranceId path int true "Fragrance ID"
// @Param request body object{status=string} true "OWNED, WANT or TESTED"
// @Success 200 {object} models.ShelfEntry
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shelves/{fragranceId} [put]
// @Security BearerAuth
func (s *Server) SetShelfEntry(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	fragranceID, err := s.parseID(c, "fragranceId")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}

	entry, svcErr := s.shelfService.SetShelf(c.Context(), service.SetShelfInput{
		UserID:      userID,
		FragranceID: fragranceID,
		Status:      req.Status,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(entry)
}

// RemoveShelfEntry handles DELETE /api/shelves/:fragranceId
// @Summary Take a fragrance off the shelf
// @Tags shelves
// @Produce json
// @Param fragranceId path int true "Fragrance ID"
// @Success 200 {object} object{message=string}
// @Router /shelves/{fragranceId} [delete]
// @Security BearerAuth
func (s *Server) RemoveShelfEntry(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	fragranceID, err := s.parseID(c, "fragranceId")
	if err != nil {
		return nil
	}

	if err := s.shelfService.RemoveShelf(c.Context(), userID, fragranceID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed from shelf"})
}
