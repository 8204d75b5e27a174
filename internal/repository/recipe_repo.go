package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists the recipe, its tag links and its ingredient rows in a
// single transaction. tagIDs and items must be free of duplicates.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, items []domain.IngredientAmount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferences(tx, tagIDs, items); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return translateError(err, "recipe")
		}

		if err := replaceTags(tx, recipe.ID, tagIDs); err != nil {
			return err
		}
		return replaceIngredients(tx, recipe.ID, items)
	})
}

// Update loads the recipe under a row lock, lets apply check ownership and
// merge scalar fields, then writes everything in one transaction. A nil
// tagIDs or items keeps the current set; a non-nil one replaces it fully.
func (r *RecipeRepository) Update(
	ctx context.Context,
	id int64,
	apply func(*domain.Recipe) error,
	tagIDs []int64,
	items []domain.IngredientAmount,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe domain.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&recipe, id).Error; err != nil {
			return translateError(err, "recipe")
		}

		if err := apply(&recipe); err != nil {
			return err
		}

		if err := ensureReferences(tx, tagIDs, items); err != nil {
			return err
		}

		err := tx.Model(&domain.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]any{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}).Error
		if err != nil {
			return translateError(err, "recipe")
		}

		if tagIDs != nil {
			if err := replaceTags(tx, recipe.ID, tagIDs); err != nil {
				return err
			}
		}
		if items != nil {
			if err := replaceIngredients(tx, recipe.ID, items); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the recipe together with every row that references it.
func (r *RecipeRepository) Delete(ctx context.Context, id int64, authorize func(*domain.Recipe) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe domain.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&recipe, id).Error; err != nil {
			return translateError(err, "recipe")
		}
		if err := authorize(&recipe); err != nil {
			return err
		}

		dependents := []any{
			&domain.Favorite{},
			&domain.ShoppingCartEntry{},
			&domain.RecipeTag{},
			&domain.RecipeIngredient{},
		}
		for _, model := range dependents {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&domain.Recipe{}, id).Error
	})
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := withRecipeRelations(r.db.WithContext(ctx)).First(&recipe, id).Error
	if err != nil {
		return nil, translateError(err, "recipe")
	}
	return &recipe, nil
}

// List returns one page of recipes matching f, newest first, plus the
// total number of matches.
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilter, limit, offset int) ([]domain.Recipe, int64, error) {
	var recipes []domain.Recipe
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Recipe{}).Scopes(f.Scopes()...)

	// IMPORTANT: Clone query before counting to avoid Count modifying the query
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = withRecipeRelations(q).Order("recipes.created_at DESC, recipes.id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// ListByAuthor returns up to limit of the author's newest recipes without
// relations; limit <= 0 means no cap.
func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&recipes).Error
	return recipes, err
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func withRecipeRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.slug") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id") }).
		Preload("Ingredients.Ingredient")
}

func ensureReferences(tx *gorm.DB, tagIDs []int64, items []domain.IngredientAmount) error {
	if err := ensureAllExist(tx, &domain.Tag{}, tagIDs, "tag"); err != nil {
		return err
	}

	ingredientIDs := make([]int64, 0, len(items))
	for _, it := range items {
		ingredientIDs = append(ingredientIDs, it.IngredientID)
	}
	return ensureAllExist(tx, &domain.Ingredient{}, ingredientIDs, "ingredient")
}

func ensureAllExist(tx *gorm.DB, model any, ids []int64, entity string) error {
	if len(ids) == 0 {
		return nil
	}
	var n int64
	if err := tx.Model(model).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return domain.NotFound(entity)
	}
	return nil
}

func replaceTags(tx *gorm.DB, recipeID int64, tagIDs []int64) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&domain.RecipeTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]domain.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, domain.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	if err := tx.Create(&links).Error; err != nil {
		return translateError(err, "recipe tag")
	}
	return nil
}

func replaceIngredients(tx *gorm.DB, recipeID int64, items []domain.IngredientAmount) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	rows := make([]domain.RecipeIngredient, 0, len(items))
	for _, it := range items {
		rows = append(rows, domain.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: it.IngredientID,
			Amount:       it.Amount,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return translateError(err, "recipe ingredient")
	}
	return nil
}
