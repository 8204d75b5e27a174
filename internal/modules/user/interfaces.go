package user

import (
	"context"

	"foodgram/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// SubscriptionChecker answers "does viewer follow author".
type SubscriptionChecker interface {
	Exists(ctx context.Context, kind domain.CollectionKind, userID, targetID int64) (bool, error)
}
