package user

import (
	"context"

	"foodgram/internal/domain"
)

type Service struct {
	users   UserRepository
	members SubscriptionChecker
}

func NewService(users UserRepository, members SubscriptionChecker) *Service {
	return &Service{users: users, members: members}
}

// Get returns the profile of id as seen by viewerID (0 = anonymous).
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subscribed, err := s.IsSubscribed(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}

	p := NewProfile(u, subscribed)
	return &p, nil
}

// IsSubscribed is false for anonymous viewers and for oneself.
func (s *Service) IsSubscribed(ctx context.Context, viewerID, authorID int64) (bool, error) {
	if viewerID == 0 || viewerID == authorID {
		return false, nil
	}
	return s.members.Exists(ctx, domain.KindSubscription, viewerID, authorID)
}
