// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Levuisha/parfumerie/internal/cache"
	"github.com/Levuisha/parfumerie/internal/middleware"
	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = time.Hour * 24 * 7

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Check if user already exists
	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("An account with this email already exists"))
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashedPassword),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	// Every account gets a profile row up front.
	if err := s.profileService.EnsureProfile(c.Context(), user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	// Accounts created before profiles existed get their row here.
	if err := s.profileService.EnsureProfile(c.Context(), user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh session token
// @Description Exchange a valid token for a fresh one; the old token is revoked
// @Tags auth
// @Produce json
// @Success 200 {object} object{token=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	claims, userID, err := s.bearerClaims(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(err.Error()))
	}

	if s.isRevoked(c, claims) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Token has been revoked"))
	}

	token, err := s.generateToken(userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Revoke the old token so a refresh is an exchange, not a fork.
	s.revokeClaims(c, claims)

	return c.JSON(fiber.Map{"token": token})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the current token and drop cached per-user state
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, userID, err := s.bearerClaims(c)
	if err == nil {
		s.revokeClaims(c, claims)
		// The rating mirror is dropped before the response goes out, so a
		// new session on this browser can never see the previous user's
		// scores.
		s.mirror.Drop(c.Context(), userID)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// ForgotPassword handles POST /api/auth/forgot-password
// @Summary Request password reset
// @Description Issue a short-lived reset token for the account, if it exists
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Account email"
// @Success 200 {object} object{message=string}
// @Router /auth/forgot-password [post]
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	// The response is identical whether or not the account exists.
	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err == nil && user != nil {
		if s.redis == nil {
			middleware.Logger.WarnContext(c.UserContext(), "Password reset requested but Redis is unavailable")
		} else {
			token := uuid.New().String()
			setErr := s.redis.Set(c.Context(), cache.ResetTokenKey(token),
				strconv.FormatUint(uint64(user.ID), 10), cache.ResetTokenTTL).Err()
			if setErr != nil {
				middleware.Logger.WarnContext(c.UserContext(), "Failed to store password reset token")
			} else {
				// Mail delivery is out of band; the token is logged for
				// operators in environments without an SMTP bridge.
				middleware.Logger.InfoContext(c.UserContext(), "Password reset token issued",
					"user_id", user.ID, "token", token)
			}
		}
	}

	return c.JSON(fiber.Map{"message": "If that account exists, a reset link has been sent"})
}

// ResetPassword handles POST /api/auth/reset-password
// @Summary Reset password
// @Description Redeem a reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{token=string,password=string} true "Reset token and new password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/reset-password [post]
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token and password are required"))
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(fmt.Errorf("password reset unavailable")))
	}

	key := cache.ResetTokenKey(req.Token)
	userIDStr, err := s.redis.Get(c.Context(), key).Result()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired reset token"))
	}
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired reset token"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.userRepo.UpdatePassword(c.Context(), uint(userID), string(hashedPassword)); err != nil {
		return respondServiceError(c, err)
	}

	// One redemption per token.
	s.redis.Del(c.Context(), key)

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// bearerClaims parses and validates the Authorization header token,
// returning its claims and the subject user ID.
func (s *Server) bearerClaims(c *fiber.Ctx) (jwt.MapClaims, uint, error) {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, 0, fmt.Errorf("Authorization required")
	}

	claims, err := s.parseToken(parts[1])
	if err != nil {
		return nil, 0, err
	}
	userID, err := userIDFromClaims(claims)
	if err != nil {
		return nil, 0, err
	}
	return claims, userID, nil
}

// isRevoked reports whether the token's jti is on the Redis blacklist.
func (s *Server) isRevoked(c *fiber.Ctx, claims jwt.MapClaims) bool {
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" || s.redis == nil {
		return false
	}
	n, err := s.redis.Exists(c.Context(), cache.BlacklistKey(jti)).Result()
	return err == nil && n > 0
}

// revokeClaims blacklists the token's jti for the remainder of its
// lifetime. Without Redis revocation degrades to token expiry.
func (s *Server) revokeClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" || s.redis == nil {
		return
	}

	ttl := tokenLifetime
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), cache.BlacklistKey(jti), "1", ttl)
}

// generateToken creates a JWT token for the given user ID
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"iss": "parfumerie-api",                       // Issuer
		"aud": "parfumerie-client",                    // Audience
		"exp": now.Add(tokenLifetime).Unix(),          // Expiration (7 days)
		"iat": now.Unix(),                             // Issued at
		"nbf": now.Unix(),                             // Not before
		"jti": s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
