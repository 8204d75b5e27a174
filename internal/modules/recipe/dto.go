package recipe

import (
	"foodgram/internal/domain"
	"foodgram/internal/modules/user"
	"foodgram/internal/pkg/utils"
)

// IngredientInput — одна пара {id, amount} из тела запроса.
type IngredientInput struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

type CreateRecipeRequest struct {
	Name        string            `json:"name"`
	Image       string            `json:"image"`
	Text        string            `json:"text"`
	CookingTime int               `json:"cooking_time"`
	Tags        []int64           `json:"tags"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// UpdateRecipeRequest is a partial update. Nil scalars keep their value;
// a nil Tags or Ingredients keeps the current set, a present one
// (even empty) replaces it.
type UpdateRecipeRequest struct {
	Name        *string           `json:"name"`
	Image       *string           `json:"image"`
	Text        *string           `json:"text"`
	CookingTime *int              `json:"cooking_time"`
	Tags        []int64           `json:"tags"`
	Ingredients []IngredientInput `json:"ingredients"`
}

// recipeFields holds the scalar fields after merging, for validation.
type recipeFields struct {
	Name        string `json:"name" validate:"required,max=200,wordchars"`
	Image       string `json:"image" validate:"max=500"`
	Text        string `json:"text" validate:"required"`
	CookingTime int    `json:"cooking_time" validate:"gte=1"`
}

type IngredientView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeView struct {
	ID               int64            `json:"id"`
	Tags             []domain.Tag     `json:"tags"`
	Author           user.Profile     `json:"author"`
	Ingredients      []IngredientView `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Text             string           `json:"text"`
	CookingTime      int              `json:"cooking_time"`
}

type ListResult struct {
	Recipes    []RecipeView     `json:"recipes"`
	Pagination utils.Pagination `json:"pagination"`
}
