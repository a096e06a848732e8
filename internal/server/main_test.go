package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Levuisha/parfumerie/internal/config"
	"github.com/Levuisha/parfumerie/internal/database"
	"github.com/Levuisha/parfumerie/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Str0ng-Passw0rd!"

// testServer wires a Server against an in-memory database and miniredis and
// exposes the Fiber app for request-level tests.
type testServer struct {
	t   *testing.T
	srv *Server
	app *fiber.App
	mr  *miniredis.Miniredis
	db  *gorm.DB
	cfg *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	// Disables the per-route Redis rate limits.
	t.Setenv("APP_ENV", "test")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Shared-cache in-memory databases vanish when the last conn closes.
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Env:                   "test",
		Port:                  "0",
		JWTSecret:             "handler-test-secret",
		AvatarUploadDir:       t.TempDir(),
		AvatarMaxUploadSizeMB: 1,
	}

	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testServer{t: t, srv: srv, app: app, mr: mr, db: db, cfg: cfg}
}

// request performs a JSON request against the app. An empty token leaves the
// Authorization header unset.
func (ts *testServer) request(method, path string, body any, token string) *http.Response {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(ts.t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signup registers an account through the API and returns its token and ID.
func (ts *testServer) signup(email string) (string, uint) {
	ts.t.Helper()

	resp := ts.request(fiber.MethodPost, "/api/auth/signup",
		fiber.Map{"email": email, "password": testPassword}, "")
	require.Equal(ts.t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(ts.t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(ts.t, token)

	user, ok := body["user"].(map[string]any)
	require.True(ts.t, ok)
	id, ok := user["id"].(float64)
	require.True(ts.t, ok)
	return token, uint(id)
}

// setUsername assigns a username to the caller's profile via the API.
func (ts *testServer) setUsername(token, username string) {
	ts.t.Helper()

	resp := ts.request(fiber.MethodPut, "/api/profiles/me",
		fiber.Map{"username": username}, token)
	require.Equal(ts.t, fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

// seedCatalog inserts a small fixed catalog and returns the fragrances in
// insertion order.
func (ts *testServer) seedCatalog() []models.Fragrance {
	ts.t.Helper()

	brands := []models.Brand{
		{Name: "Creed"},
		{Name: "Dolce & Gabbana"},
		{Name: "Maison Francis Kurkdjian"},
	}
	for i := range brands {
		require.NoError(ts.t, ts.db.Create(&brands[i]).Error)
	}

	fragrances := []models.Fragrance{
		{
			BrandID: brands[0].ID, Name: "Aventus", Gender: models.GenderMale,
			Season: []string{"Spring", "Fall"}, TimeOfDay: []string{"Day"},
			Longevity: 8, Sillage: 7,
		},
		{
			BrandID: brands[1].ID, Name: "Light Blue", Gender: models.GenderFemale,
			Season: []string{"Summer"}, TimeOfDay: []string{"Day"},
			Longevity: 6, Sillage: 5,
		},
		{
			BrandID: brands[2].ID, Name: "Baccarat Rouge 540", Gender: models.GenderUnisex,
			Season: []string{"Fall", "Winter"}, TimeOfDay: []string{"Night"},
			Longevity: 9, Sillage: 9,
		},
	}
	for i := range fragrances {
		require.NoError(ts.t, ts.db.Create(&fragrances[i]).Error)
	}
	return fragrances
}
