package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/internal/database"
	"foodgram/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", database.Options{Silent: true})
	require.NoError(t, err, "failed to open sqlite db")
	require.NoError(t, database.Migrate(db), "failed to migrate db")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Имя",
		LastName:     "Фамилия",
		PasswordHash: "x",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createTag(t *testing.T, db *gorm.DB, slug, color string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: "tag " + slug, Slug: slug, Color: color}
	require.NoError(t, NewTagRepository(db).Create(context.Background(), tag))
	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *domain.Ingredient {
	t.Helper()
	ing := &domain.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, NewIngredientRepository(db).Create(context.Background(), ing))
	return ing
}

func createRecipe(t *testing.T, db *gorm.DB, author *domain.User, name string, tagIDs []int64, items []domain.IngredientAmount) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        fmt.Sprintf("how to cook %s", name),
		CookingTime: 10,
	}
	require.NoError(t, NewRecipeRepository(db).Create(context.Background(), r, tagIDs, items))
	return r
}

func countRows(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
