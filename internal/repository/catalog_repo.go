package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a tag; name, slug and color are each unique.
func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return translateError(err, "tag")
	}
	return nil
}

func (r *TagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var t domain.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translateError(err, "tag")
	}
	return &t, nil
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Order("slug").Find(&tags).Error
	return tags, err
}

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) Create(ctx context.Context, i *domain.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(i).Error; err != nil {
		return translateError(err, "ingredient")
	}
	return nil
}

func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var i domain.Ingredient
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, translateError(err, "ingredient")
	}
	return &i, nil
}

func (r *IngredientRepository) List(ctx context.Context) ([]domain.Ingredient, error) {
	var items []domain.Ingredient
	err := r.db.WithContext(ctx).Order("name, id").Find(&items).Error
	return items, err
}
