package service

import (
	"context"

	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/repository"
)

// FriendService manages directed friend edges. Adding someone takes effect
// immediately; there are no requests to accept and the other direction is
// never touched.
type FriendService struct {
	friendRepo  repository.FriendRepository
	profileRepo repository.ProfileRepository
}

func NewFriendService(friendRepo repository.FriendRepository, profileRepo repository.ProfileRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo, profileRepo: profileRepo}
}

// AddFriend creates the edge from userID to friendID. Adding an existing
// friend succeeds without duplicating the edge.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return models.NewValidationError("You cannot add yourself as a friend")
	}
	if _, err := s.profileRepo.GetByUserID(ctx, friendID); err != nil {
		return err
	}
	return s.friendRepo.Add(ctx, userID, friendID)
}

// RemoveFriend deletes the edge from userID to friendID only; the reverse
// edge, if any, survives.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	return s.friendRepo.Remove(ctx, userID, friendID)
}

// IsFriend reports whether userID has added friendID.
func (s *FriendService) IsFriend(ctx context.Context, userID, friendID uint) (bool, error) {
	return s.friendRepo.Exists(ctx, userID, friendID)
}

// ListFriends returns the profiles the user has added, newest edge first.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.Profile, error) {
	edges, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, 0, len(edges))
	for _, edge := range edges {
		profiles = append(profiles, edge.Friend)
	}
	return profiles, nil
}
