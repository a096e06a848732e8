package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetShelfEntry(t *testing.T) {
	ts := newTestServer(t)
	fragrances := ts.seedCatalog()
	token, _ := ts.signup("shelver@example.com")

	t.Run("puts a fragrance on a shelf", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut,
			fmt.Sprintf("/api/shelves/%d", fragrances[0].ID),
			fiber.Map{"status": "OWNED"}, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "OWNED", body["status"])
		assert.Equal(t, float64(fragrances[0].ID), body["fragrance_id"])
	})

	t.Run("a second write replaces the status", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut,
			fmt.Sprintf("/api/shelves/%d", fragrances[0].ID),
			fiber.Map{"status": "TESTED"}, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = ts.request(fiber.MethodGet, "/api/shelves/", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, float64(1), body["count"])
		entry := body["entries"].([]any)[0].(map[string]any)
		assert.Equal(t, "TESTED", entry["status"])
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut,
			fmt.Sprintf("/api/shelves/%d", fragrances[0].ID),
			fiber.Map{"status": "FAVOURITE"}, token)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Shelf status must be one of OWNED, WANT, TESTED", body["error"])
	})

	t.Run("404s for an unknown fragrance", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut, "/api/shelves/9999",
			fiber.Map{"status": "OWNED"}, token)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("400s on a malformed fragrance ID", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut, "/api/shelves/abc",
			fiber.Map{"status": "OWNED"}, token)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Invalid fragrance ID", body["error"])
	})
}

func TestGetMyShelves(t *testing.T) {
	ts := newTestServer(t)
	fragrances := ts.seedCatalog()
	token, _ := ts.signup("collector@example.com")

	statuses := []string{"OWNED", "WANT", "TESTED"}
	for i, status := range statuses {
		resp := ts.request(fiber.MethodPut,
			fmt.Sprintf("/api/shelves/%d", fragrances[i].ID),
			fiber.Map{"status": status}, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	t.Run("lists every shelf by default", func(t *testing.T) {
		resp := ts.request(fiber.MethodGet, "/api/shelves/", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(3), body["count"])
	})

	t.Run("filters to a single shelf", func(t *testing.T) {
		resp := ts.request(fiber.MethodGet, "/api/shelves/?shelf=WANT", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, float64(1), body["count"])

		entry := body["entries"].([]any)[0].(map[string]any)
		assert.Equal(t, "WANT", entry["status"])
		fragrance := entry["fragrance"].(map[string]any)
		assert.Equal(t, "Light Blue", fragrance["name"])
	})

	t.Run("does not leak another user's shelves", func(t *testing.T) {
		otherToken, _ := ts.signup("other-collector@example.com")

		resp := ts.request(fiber.MethodGet, "/api/shelves/", nil, otherToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(0), body["count"])
	})
}

func TestRemoveShelfEntry(t *testing.T) {
	ts := newTestServer(t)
	fragrances := ts.seedCatalog()
	token, _ := ts.signup("remover@example.com")

	resp := ts.request(fiber.MethodPut,
		fmt.Sprintf("/api/shelves/%d", fragrances[0].ID),
		fiber.Map{"status": "OWNED"}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = ts.request(fiber.MethodDelete,
		fmt.Sprintf("/api/shelves/%d", fragrances[0].ID), nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = ts.request(fiber.MethodGet, "/api/shelves/", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["count"])

	// Removing an entry that is not there is a quiet success.
	resp = ts.request(fiber.MethodDelete,
		fmt.Sprintf("/api/shelves/%d", fragrances[0].ID), nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
