// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Levuisha/parfumerie/internal/cache"
	"github.com/Levuisha/parfumerie/internal/config"
	"github.com/Levuisha/parfumerie/internal/database"
	"github.com/Levuisha/parfumerie/internal/middleware"
	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/repository"
	"github.com/Levuisha/parfumerie/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	catalogRepo repository.CatalogRepository
	profileRepo repository.ProfileRepository
	shelfRepo   repository.ShelfRepository
	ratingRepo  repository.RatingRepository
	reviewRepo  repository.ReviewRepository
	friendRepo  repository.FriendRepository

	mirror         *cache.RatingMirror
	catalogService *service.CatalogService
	shelfService   *service.ShelfService
	ratingService  *service.RatingService
	reviewService  *service.ReviewService
	profileService *service.ProfileService
	avatarService  *service.AvatarService
	friendService  *service.FriendService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("parfumerie-api"),
		userRepo:       repository.NewUserRepository(db),
		catalogRepo:    repository.NewCatalogRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		shelfRepo:      repository.NewShelfRepository(db),
		ratingRepo:     repository.NewRatingRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		friendRepo:     repository.NewFriendRepository(db),
	}

	server.mirror = cache.NewRatingMirror(redisClient)
	server.catalogService = service.NewCatalogService(
		server.catalogRepo, server.ratingRepo, server.shelfRepo, server.reviewRepo, server.mirror)
	server.shelfService = service.NewShelfService(server.shelfRepo, server.catalogRepo)
	server.ratingService = service.NewRatingService(server.ratingRepo, server.catalogRepo, server.mirror)
	server.reviewService = service.NewReviewService(server.reviewRepo, server.catalogRepo)
	server.profileService = service.NewProfileService(server.profileRepo, server.shelfRepo, server.catalogRepo)
	server.avatarService = service.NewAvatarService(cfg)
	server.friendService = service.NewFriendService(server.friendRepo, server.profileRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// OpenTelemetry server spans; exposes the trace id as X-Trace-ID
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Parfumerie API Metrics Dashboard",
	}))

	// Uploaded avatars are served as plain static files.
	app.Static("/uploads/avatars", s.avatarService.UploadDir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)
	auth.Post("/forgot-password", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "forgot_password"), s.ForgotPassword)
	auth.Post("/reset-password", s.ResetPassword)

	// Public catalog routes; a valid bearer token adds the caller's
	// ratings and shelf statuses to the response.
	fragrances := api.Group("/fragrances")
	fragrances.Get("/", s.GetFragrances)
	fragrances.Get("/:id/reviews", s.GetFragranceReviews)
	fragrances.Get("/:id", s.GetFragrance)
	api.Get("/brands", s.GetBrands)

	// Public people routes
	api.Get("/people", middleware.RateLimit(
		s.redis, 30, time.Minute, "people_search"), s.SearchPeople)
	api.Get("/people/:username", s.GetPublicProfile)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Shelf routes
	shelves := protected.Group("/shelves")
	shelves.Get("/", s.GetMyShelves)
	shelves.Put("/:fragranceId", s.SetShelfEntry)
	shelves.Delete("/:fragranceId", s.RemoveShelfEntry)

	// Rating routes
	ratings := protected.Group("/ratings")
	ratings.Get("/", s.GetMyRatings)
	ratings.Put("/:fragranceId", s.SetRating)
	ratings.Delete("/:fragranceId", s.ClearRating)

	// Review routes (own review of one fragrance)
	protectedFragrances := protected.Group("/fragrances")
	protectedFragrances.Get("/:id/reviews/me", s.GetMyReview)
	protectedFragrances.Put("/:id/reviews/me", s.UpsertMyReview)
	protectedFragrances.Delete("/:id/reviews/me", s.DeleteMyReview)

	// Profile routes
	profiles := protected.Group("/profiles")
	profiles.Get("/me", s.GetMyProfile)
	profiles.Put("/me", s.UpdateMyProfile)
	profiles.Post("/me/avatar", s.UploadAvatar)
	profiles.Get("/me/owned-options", s.GetOwnedFragranceOptions)

	// Friend routes
	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Get("/status/:userId", s.GetFriendStatus)
	friends.Put("/:userId", s.AddFriend)
	friends.Delete("/:userId", s.RemoveFriend)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis only backs the rating mirror; the API stays functional
	// without it, so an unavailable Redis degrades but does not fail
	// readiness.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := s.parseToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(err.Error()))
		}

		userID, err := userIDFromClaims(claims)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(err.Error()))
		}

		if s.tokenRevoked(c, claims) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token has been revoked"))
		}

		// Store user ID in context
		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// parseToken validates the signature, issuer and audience and returns the
// claims.
func (s *Server) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "parfumerie-api" {
		return nil, fmt.Errorf("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "parfumerie-client" {
		return nil, fmt.Errorf("Invalid token audience")
	}

	return claims, nil
}

func userIDFromClaims(claims jwt.MapClaims) (uint, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("Invalid user ID in token")
	}
	return uint(userID), nil
}

// tokenRevoked reports whether the token's jti sits on the logout
// blacklist. Redis being unreachable counts as not revoked; revocation is
// best-effort, expiry is the backstop.
func (s *Server) tokenRevoked(c *fiber.Ctx, claims jwt.MapClaims) bool {
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" || s.redis == nil {
		return false
	}
	isBlacklisted, err := s.redis.Exists(c.Context(), cache.BlacklistKey(jti)).Result()
	return err == nil && isBlacklisted > 0
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Used by the public catalog routes to merge per-user
// state for logged-in browsers. A revoked token degrades to anonymous.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	claims, err := s.parseToken(parts[1])
	if err != nil {
		return 0, false
	}
	if s.tokenRevoked(c, claims) {
		return 0, false
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Fragrance Catalog API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
