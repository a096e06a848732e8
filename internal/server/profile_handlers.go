package server

import (
	"io"

	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profiles/me
// @Summary Get the caller's profile
// @Tags profiles
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} models.ErrorResponse
// @Router /profiles/me [get]
// @Security BearerAuth
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetMyProfile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/profiles/me
// @Summary Update the caller's profile
// @Description Updates username, bio and signature fragrance; the signature must be on the caller's OWNED shelf
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body object{username=string,bio=string,signature_fragrance_id=int} true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /profiles/me [put]
// @Security BearerAuth
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username             string `json:"username"`
		Bio                  string `json:"bio"`
		SignatureFragranceID *uint  `json:"signature_fragrance_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:               userID,
		Username:             req.Username,
		Bio:                  req.Bio,
		SignatureFragranceID: req.SignatureFragranceID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UploadAvatar handles POST /api/profiles/me/avatar
// @Summary Upload an avatar
// @Description Accepts a multipart image, re-encodes it to a square WebP and stores it
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profiles/me/avatar [post]
// @Security BearerAuth
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An avatar file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	url, svcErr := s.avatarService.Upload(service.UploadAvatarInput{
		UserID:      userID,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	profile, svcErr := s.profileService.SetAvatarURL(c.Context(), userID, url)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(profile)
}

// GetOwnedFragranceOptions handles GET /api/profiles/me/owned-options
// @Summary List signature fragrance candidates
// @Description Returns the caller's OWNED fragrances, the only valid signature choices
// @Tags profiles
// @Produce json
// @Success 200 {array} service.FragranceOption
// @Router /profiles/me/owned-options [get]
// @Security BearerAuth
func (s *Server) GetOwnedFragranceOptions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	options, err := s.profileService.OwnedFragranceOptions(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"options": options})
}
