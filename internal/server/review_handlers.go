package server

import (
	"github.com/Levuisha/parfumerie/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyReview handles GET /api/fragrances/:id/reviews/me
// @Summary Get the caller's review of a fragrance
// @Tags reviews
// @Produce json
// @Param id path int true "Fragrance ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /fragrances/{id}/reviews/me [get]
// @Security BearerAuth
func (s *Server) GetMyReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	fragranceID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, svcErr := s.reviewService.GetMyReview(c.Context(), userID, fragranceID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	if review == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "You have not reviewed this fragrance",
		})
	}
	return c.JSON(review)
}

// UpsertMyReview handles PUT /api/fragrances/:id/reviews/me
// @Summary Write or replace the caller's review
// @Description Stores a 10-1000 character review; a second write replaces the text
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Fragrance ID"
// @Param request body object{text=string} true "Review text"
// @Success 200 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /fragrances/{id}/reviews/me [put]
// @Security BearerAuth
func (s *Server) UpsertMyReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	fragranceID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}

	review, svcErr := s.reviewService.UpsertReview(c.Context(), service.UpsertReviewInput{
		UserID:      userID,
		FragranceID: fragranceID,
		Text:        req.Text,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(review)
}

// DeleteMyReview handles DELETE /api/fragrances/:id/reviews/me
// @Summary Delete the caller's review
// @Tags reviews
// @Produce json
// @Param id path int true "Fragrance ID"
// @Success 200 {object} object{message=string}
// @Router /fragrances/{id}/reviews/me [delete]
// @Security BearerAuth
func (s *Server) DeleteMyReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	fragranceID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteMyReview(c.Context(), userID, fragranceID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
