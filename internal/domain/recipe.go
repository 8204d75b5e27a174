package domain

import "time"

// Ingredient — продукт из справочника. Количество хранится не здесь,
// а в RecipeIngredient.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:200;not null;index" validate:"required,max=200,wordchars"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null" validate:"required,max=200"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Tag is shared by many recipes and never owned by one.
type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200;not null;uniqueIndex" validate:"required,max=200,wordchars"`
	Slug  string `json:"slug" gorm:"size:200;not null;uniqueIndex" validate:"required,max=200,slug"`
	Color string `json:"color" gorm:"size:7;not null;uniqueIndex" validate:"required,tagcolor"`
}

func (Tag) TableName() string {
	return "tags"
}

// Recipe принадлежит автору; теги и ингредиенты меняются только целиком
// через транзакцию записи рецепта.
type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Image       string    `json:"image" gorm:"size:500;not null;default:''"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null;check:chk_recipes_cooking_time,cooking_time >= 1"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Virtual fields для preload
	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is the join entity carrying the amount of one
// ingredient in one recipe. (recipe_id, ingredient_id) is unique.
type RecipeIngredient struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;uniqueIndex:idx_recipe_ingredients_pair"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredients_pair;index"`
	Amount       int   `json:"amount" gorm:"not null;check:chk_recipe_ingredients_amount,amount >= 1"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeTag — явная таблица связи рецепт ↔ тег.
type RecipeTag struct {
	RecipeID int64 `gorm:"primaryKey"`
	TagID    int64 `gorm:"primaryKey;index"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// IngredientAmount is one (ingredient, amount) pair of a write request.
type IngredientAmount struct {
	IngredientID int64
	Amount       int
}
