package server

import (
	"github.com/Levuisha/parfumerie/internal/middleware"
	"github.com/Levuisha/parfumerie/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFragrances handles GET /api/fragrances
// @Summary Browse the catalog
// @Description List fragrances with filtering, sorting and search; a valid bearer token adds the caller's ratings and shelf statuses
// @Tags catalog
// @Produce json
// @Param search query string false "Match against name or brand"
// @Param gender query string false "Comma-separated genders"
// @Param season query string false "Comma-separated seasons"
// @Param time_of_day query string false "Comma-separated times of day"
// @Param brand query string false "Comma-separated brand names"
// @Param sort query string false "catalog|rating|sillage|longevity"
// @Success 200 {array} service.CatalogItem
// @Router /fragrances [get]
func (s *Server) GetFragrances(c *fiber.Ctx) error {
	userID, authed := s.optionalUserID(c)

	params := service.FilterParams{
		Search:     c.Query("search"),
		Genders:    csvQuery(c, "gender"),
		Seasons:    csvQuery(c, "season"),
		TimesOfDay: csvQuery(c, "time_of_day"),
		Brands:     csvQuery(c, "brand"),
	}

	items, err := s.catalogService.ListFragrances(c.Context(), userID, params, c.Query("sort", service.SortCatalog))
	if err != nil {
		return respondServiceError(c, err)
	}

	overlay := "anonymous"
	if authed {
		overlay = "authenticated"
	}
	middleware.CatalogQueries.WithLabelValues(overlay).Inc()

	return c.JSON(fiber.Map{
		"fragrances": items,
		"count":      len(items),
	})
}

// GetFragrance handles GET /api/fragrances/:id
// @Summary Get one fragrance
// @Tags catalog
// @Produce json
// @Param id path int true "Fragrance ID"
// @Success 200 {object} service.CatalogItem
// @Failure 404 {object} models.ErrorResponse
// @Router /fragrances/{id} [get]
func (s *Server) GetFragrance(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID, _ := s.optionalUserID(c)
	item, err := s.catalogService.GetFragrance(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

// GetBrands handles GET /api/brands
// @Summary List brand filter options
// @Tags catalog
// @Produce json
// @Success 200 {object} object{brands=[]string}
// @Router /brands [get]
func (s *Server) GetBrands(c *fiber.Ctx) error {
	names, err := s.catalogService.BrandOptions(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"brands": names})
}

// GetFragranceReviews handles GET /api/fragrances/:id/reviews
// @Summary List reviews of a fragrance
// @Tags reviews
// @Produce json
// @Param id path int true "Fragrance ID"
// @Success 200 {array} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /fragrances/{id}/reviews [get]
func (s *Server) GetFragranceReviews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reviews, err := s.catalogService.ListReviews(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
