package repository

import "gorm.io/gorm"

// RecipeFilter narrows the recipe list. Every populated dimension is
// ANDed; tag slugs inside one dimension are ORed.
type RecipeFilter struct {
	AuthorID         int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool

	// ViewerID — пользователь, от имени которого идёт запрос; 0 — аноним.
	// Для анонима фильтры is_favorited / is_in_shopping_cart игнорируются.
	ViewerID int64
}

// Scopes compiles the filter into gorm scopes. Membership subqueries are
// used instead of JOINs so a recipe never appears twice.
func (f RecipeFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if f.AuthorID != 0 {
		authorID := f.AuthorID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.author_id = ?", authorID)
		})
	}

	if len(f.TagSlugs) > 0 {
		slugs := f.TagSlugs
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(`recipes.id IN (
				SELECT recipe_tags.recipe_id FROM recipe_tags
				JOIN tags ON tags.id = recipe_tags.tag_id
				WHERE tags.slug IN ?)`, slugs)
		})
	}

	if f.ViewerID == 0 {
		return scopes
	}
	viewerID := f.ViewerID

	if f.IsFavorited {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)", viewerID)
		})
	}

	if f.IsInShoppingCart {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.id IN (SELECT recipe_id FROM shopping_cart_entries WHERE user_id = ?)", viewerID)
		})
	}

	return scopes
}
