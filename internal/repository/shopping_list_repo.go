package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

type ShoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Items sums ingredient amounts over every recipe in the user's cart,
// grouped by (name, measurement unit) rather than ingredient id. It is one
// statement, so a concurrent cart change is seen entirely or not at all.
// Order is left to the caller.
func (r *ShoppingListRepository) Items(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN (SELECT recipe_id FROM shopping_cart_entries WHERE user_id = ?)", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
