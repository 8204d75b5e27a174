package collection

import (
	"foodgram/internal/domain"
	"foodgram/internal/modules/user"
	"foodgram/internal/pkg/utils"
)

// RecipeSummary — короткая карточка рецепта в ответах избранного/корзины
// и в списке рецептов автора.
type RecipeSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func newRecipeSummary(r *domain.Recipe) RecipeSummary {
	return RecipeSummary{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// AuthorSummary is an author as seen by a subscriber, with a capped
// sample of their newest recipes.
type AuthorSummary struct {
	user.Profile
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

type SubscriptionList struct {
	Authors    []AuthorSummary  `json:"authors"`
	Pagination utils.Pagination `json:"pagination"`
}
