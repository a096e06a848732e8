package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
// @Summary List the caller's friends
// @Tags friends
// @Produce json
// @Success 200 {array} models.Profile
// @Failure 401 {object} models.ErrorResponse
// @Router /friends [get]
// @Security BearerAuth
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.ListFriends(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"friends": friends,
		"count":   len(friends),
	})
}

// GetFriendStatus handles GET /api/friends/status/:userId
// @Summary Check whether the caller has added a user
// @Tags friends
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} object{is_friend=bool}
// @Router /friends/status/{userId} [get]
// @Security BearerAuth
func (s *Server) GetFriendStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	friendID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	isFriend, svcErr := s.friendService.IsFriend(c.Context(), userID, friendID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"is_friend": isFriend})
}

// AddFriend handles PUT /api/friends/:userId
// @Summary Add a friend
// @Description Takes effect immediately; there is no request/approval step
// @Tags friends
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /friends/{userId} [put]
// @Security BearerAuth
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	friendID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.AddFriend(c.Context(), userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend added"})
}

// RemoveFriend handles DELETE /api/friends/:userId
// @Summary Remove a friend
// @Description Removes only the caller's edge; the other user's list is untouched
// @Tags friends
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} object{message=string}
// @Router /friends/{userId} [delete]
// @Security BearerAuth
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	friendID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.Context(), userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend removed"})
}
