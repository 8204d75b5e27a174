package collection

import (
	"context"

	"foodgram/internal/domain"
)

// MembershipRepository stores (user, target) rows per collection kind
type MembershipRepository interface {
	Add(ctx context.Context, kind domain.CollectionKind, userID, targetID int64) error
	Remove(ctx context.Context, kind domain.CollectionKind, userID, targetID int64) error
	ListTargets(ctx context.Context, kind domain.CollectionKind, userID int64, limit, offset int) ([]int64, int64, error)
}

// RecipeReader builds recipe and author summaries
type RecipeReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
}
