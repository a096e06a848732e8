package server

import (
	"github.com/Levuisha/parfumerie/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyRatings handles GET /api/ratings
// @Summary List the caller's ratings
// @Tags ratings
// @Produce json
// @Success 200 {array} models.Rating
// @Failure 401 {object} models.ErrorResponse
// @Router /ratings [get]
// @Security BearerAuth
func (s *Server) GetMyRatings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	ratings, err := s.ratingService.ListRatings(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ratings": ratings,
		"count":   len(ratings),
	})
}

// SetRating handles PUT /api/ratings/:fragranceId
// @Summary Rate a fragrance
// @Description Sets a 1-10 score; rating the same fragrance again replaces the score
// @Tags ratings
// @Accept json
// @Produce json
// @Param fragranceId path int true "Fragrance ID"
// @Param request body object{score=int} true "Score from 1 to 10"
// @Success 200 {object} models.Rating
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ratings/{fragranceId} [put]
// @Security BearerAuth
func (s *Server) SetRating(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	fragranceID, err := s.parseID(c, "fragranceId")
	if err != nil {
		return nil
	}

	var req struct {
		Score int `json:"score"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}

	rating, svcErr := s.ratingService.SetRating(c.Context(), service.SetRatingInput{
		UserID:      userID,
		FragranceID: fragranceID,
		Score:       req.Score,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(rating)
}

// ClearRating handles DELETE /api/ratings/:fragranceId
// @Summary Clear a rating
// @Tags ratings
// @Produce json
// @Param fragranceId path int true "Fragrance ID"
// @Success 200 {object} object{message=string}
// @Router /ratings/{fragranceId} [delete]
// @Security BearerAuth
func (s *Server) ClearRating(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	fragranceID, err := s.parseID(c, "fragranceId")
	if err != nil {
		return nil
	}

	if err := s.ratingService.ClearRating(c.Context(), userID, fragranceID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rating cleared"})
}
