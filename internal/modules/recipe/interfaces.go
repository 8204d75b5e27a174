package recipe

import (
	"context"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// RecipeRepository defines the storage side of the recipe write path
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, items []domain.IngredientAmount) error
	Update(ctx context.Context, id int64, apply func(*domain.Recipe) error, tagIDs []int64, items []domain.IngredientAmount) error
	Delete(ctx context.Context, id int64, authorize func(*domain.Recipe) error) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context, f repository.RecipeFilter, limit, offset int) ([]domain.Recipe, int64, error)
}

// MembershipReader provides the viewer-relative flags of a recipe view
type MembershipReader interface {
	MemberTargets(ctx context.Context, kind domain.CollectionKind, userID int64, targetIDs []int64) (map[int64]bool, error)
}
