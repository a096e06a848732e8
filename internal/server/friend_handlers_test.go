package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRoutes(t *testing.T) {
	ts := newTestServer(t)

	aliceToken, _ := ts.signup("alice@example.com")
	ts.setUsername(aliceToken, "alice")
	bobToken, bobID := ts.signup("bob@example.com")
	ts.setUsername(bobToken, "bob")

	friendURL := fmt.Sprintf("/api/friends/%d", bobID)
	statusURL := fmt.Sprintf("/api/friends/status/%d", bobID)

	t.Run("adding a friend takes effect immediately", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut, friendURL, nil, aliceToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = ts.request(fiber.MethodGet, statusURL, nil, aliceToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["is_friend"])

		resp = ts.request(fiber.MethodGet, "/api/friends/", nil, aliceToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
		require.Equal(t, float64(1), body["count"])

		friend := body["friends"].([]any)[0].(map[string]any)
		assert.Equal(t, "bob", friend["username"])
	})

	t.Run("the edge is directed", func(t *testing.T) {
		resp := ts.request(fiber.MethodGet, "/api/friends/", nil, bobToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(0), body["count"], "alice adding bob must not appear in bob's list")
	})

	t.Run("adding twice stays a single edge", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut, friendURL, nil, aliceToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = ts.request(fiber.MethodGet, "/api/friends/", nil, aliceToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("you cannot add yourself", func(t *testing.T) {
		carolToken, carolID := ts.signup("carol@example.com")

		resp := ts.request(fiber.MethodPut,
			fmt.Sprintf("/api/friends/%d", carolID), nil, carolToken)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "You cannot add yourself as a friend", body["error"])
	})

	t.Run("the target must exist", func(t *testing.T) {
		resp := ts.request(fiber.MethodPut, "/api/friends/9999", nil, aliceToken)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("removing only drops the caller's edge", func(t *testing.T) {
		// Bob adds alice back so both directions exist.
		aliceID := uint(0)
		resp := ts.request(fiber.MethodGet, "/api/people/alice", nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		profile := body["profile"].(map[string]any)
		aliceID = uint(profile["user_id"].(float64))

		resp = ts.request(fiber.MethodPut,
			fmt.Sprintf("/api/friends/%d", aliceID), nil, bobToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = ts.request(fiber.MethodDelete, friendURL, nil, aliceToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = ts.request(fiber.MethodGet, statusURL, nil, aliceToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
		assert.Equal(t, false, body["is_friend"])

		// Bob's edge to alice survives.
		resp = ts.request(fiber.MethodGet, "/api/friends/", nil, bobToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
		assert.Equal(t, float64(1), body["count"])
	})
}
