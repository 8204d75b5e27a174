package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Connect(":memory:", database.Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewService(repository.NewTagRepository(db), repository.NewIngredientRepository(db))
}

func TestService_CreateTag(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, CreateTagRequest{Name: "Завтрак", Slug: "breakfast", Color: "#E26C2D"})
	require.NoError(t, err)
	assert.NotZero(t, tag.ID)

	_, err = svc.CreateTag(ctx, CreateTagRequest{Name: "Обед", Slug: "lunch", Color: "#E26C2D"})
	assert.True(t, errors.Is(err, domain.ErrConflict), "color is unique")

	_, err = svc.CreateTag(ctx, CreateTagRequest{Name: "Ужин", Slug: "dinner", Color: "#GGGGGG"})
	require.True(t, errors.Is(err, domain.ErrValidation))
	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Details, "color")

	_, err = svc.CreateTag(ctx, CreateTagRequest{Name: "Ужин", Slug: "ужин", Color: "#000"})
	assert.True(t, errors.Is(err, domain.ErrValidation), "slug is latin only")

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestService_CreateIngredient(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	ing, err := svc.CreateIngredient(ctx, CreateIngredientRequest{Name: "  Сахарный песок ", MeasurementUnit: "г"})
	require.NoError(t, err)
	assert.Equal(t, "Сахарный песок", ing.Name)

	_, err = svc.CreateIngredient(ctx, CreateIngredientRequest{Name: "Соль; DROP TABLE", MeasurementUnit: "г"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.CreateIngredient(ctx, CreateIngredientRequest{Name: "Перец", MeasurementUnit: ""})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	got, err := svc.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, "г", got.MeasurementUnit)

	_, err = svc.GetIngredient(ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
