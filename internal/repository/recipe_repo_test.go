package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain"
)

func TestRecipeRepository_CreateLoadsRelations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	author := createUser(t, db, "author")
	lunch := createTag(t, db, "lunch", "#00ff00")
	breakfast := createTag(t, db, "breakfast", "#ff0000")
	salt := createIngredient(t, db, "Соль", "г")
	flour := createIngredient(t, db, "Мука", "г")

	r := createRecipe(t, db, author, "Блины", []int64{lunch.ID, breakfast.ID}, []domain.IngredientAmount{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: salt.ID, Amount: 2},
	})

	got, err := NewRecipeRepository(db).GetByID(ctx, r.ID)
	require.NoError(t, err)

	require.NotNil(t, got.Author)
	assert.Equal(t, "author", got.Author.Username)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "breakfast", got.Tags[0].Slug)
	assert.Equal(t, "lunch", got.Tags[1].Slug)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "Мука", got.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 200, got.Ingredients[0].Amount)
}

func TestRecipeRepository_CreateMissingReferenceWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author")
	salt := createIngredient(t, db, "Соль", "г")

	repo := NewRecipeRepository(db)
	r := &domain.Recipe{AuthorID: author.ID, Name: "Суп", Text: "t", CookingTime: 5}
	err := repo.Create(context.Background(), r, nil, []domain.IngredientAmount{
		{IngredientID: salt.ID, Amount: 1},
		{IngredientID: 9999, Amount: 1},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = repo.Create(context.Background(), r, []int64{4242}, []domain.IngredientAmount{{IngredientID: salt.ID, Amount: 1}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Zero(t, countRows(t, db, &domain.Recipe{}, ""))
	assert.Zero(t, countRows(t, db, &domain.RecipeIngredient{}, ""))
}

func TestRecipeRepository_DuplicateIngredientRolledBack(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author")
	salt := createIngredient(t, db, "Соль", "г")

	// ensureAllExist counts distinct rows, so the duplicate is caught
	// before the unique index is reached.
	r := &domain.Recipe{AuthorID: author.ID, Name: "Суп", Text: "t", CookingTime: 5}
	err := NewRecipeRepository(db).Create(context.Background(), r, nil, []domain.IngredientAmount{
		{IngredientID: salt.ID, Amount: 2},
		{IngredientID: salt.ID, Amount: 3},
	})
	require.Error(t, err)

	assert.Zero(t, countRows(t, db, &domain.Recipe{}, ""))
	assert.Zero(t, countRows(t, db, &domain.RecipeIngredient{}, ""))
}

func TestRecipeRepository_UpdateReplacesIngredients(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	author := createUser(t, db, "author")
	a := createIngredient(t, db, "A", "г")
	b := createIngredient(t, db, "B", "г")
	c := createIngredient(t, db, "C", "шт")
	tag := createTag(t, db, "dinner", "#123")

	r := createRecipe(t, db, author, "Рагу", []int64{tag.ID}, []domain.IngredientAmount{
		{IngredientID: a.ID, Amount: 2},
		{IngredientID: b.ID, Amount: 1},
	})

	repo := NewRecipeRepository(db)
	err := repo.Update(ctx, r.ID, func(rec *domain.Recipe) error {
		rec.CookingTime = 45
		return nil
	}, nil, []domain.IngredientAmount{{IngredientID: c.ID, Amount: 5}})
	require.NoError(t, err)

	var rows []domain.RecipeIngredient
	require.NoError(t, db.Where("recipe_id = ?", r.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, c.ID, rows[0].IngredientID)
	assert.Equal(t, 5, rows[0].Amount)

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, got.CookingTime)
	assert.Equal(t, "Рагу", got.Name)
	require.Len(t, got.Tags, 1, "nil tag set keeps the previous tags")
}

func TestRecipeRepository_UpdateRejectedByApplyChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author")
	a := createIngredient(t, db, "A", "г")
	r := createRecipe(t, db, author, "Рагу", nil, []domain.IngredientAmount{{IngredientID: a.ID, Amount: 2}})

	err := NewRecipeRepository(db).Update(context.Background(), r.ID, func(*domain.Recipe) error {
		return domain.Forbidden("not the author")
	}, []int64{}, []domain.IngredientAmount{})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	assert.Equal(t, int64(1), countRows(t, db, &domain.RecipeIngredient{}, "recipe_id = ?", r.ID))
}

func TestRecipeRepository_UpdateUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	err := NewRecipeRepository(db).Update(context.Background(), 77, func(*domain.Recipe) error { return nil }, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecipeRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")
	a := createIngredient(t, db, "A", "г")
	tag := createTag(t, db, "dinner", "#123")
	r := createRecipe(t, db, author, "Рагу", []int64{tag.ID}, []domain.IngredientAmount{{IngredientID: a.ID, Amount: 2}})

	members := NewMembershipRepository(db)
	require.NoError(t, members.Add(ctx, domain.KindFavorite, reader.ID, r.ID))
	require.NoError(t, members.Add(ctx, domain.KindShoppingCart, reader.ID, r.ID))

	err := NewRecipeRepository(db).Delete(ctx, r.ID, func(*domain.Recipe) error { return nil })
	require.NoError(t, err)

	assert.Zero(t, countRows(t, db, &domain.Recipe{}, ""))
	assert.Zero(t, countRows(t, db, &domain.RecipeIngredient{}, ""))
	assert.Zero(t, countRows(t, db, &domain.RecipeTag{}, ""))
	assert.Zero(t, countRows(t, db, &domain.Favorite{}, ""))
	assert.Zero(t, countRows(t, db, &domain.ShoppingCartEntry{}, ""))
	assert.Equal(t, int64(1), countRows(t, db, &domain.Tag{}, ""), "tags are shared and survive")
}

func TestRecipeRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	breakfast := createTag(t, db, "breakfast", "#111111")
	vegan := createTag(t, db, "vegan", "#222222")
	dinner := createTag(t, db, "dinner", "#333333")
	egg := createIngredient(t, db, "Яйцо", "шт")
	items := []domain.IngredientAmount{{IngredientID: egg.ID, Amount: 1}}

	r1 := createRecipe(t, db, alice, "Омлет", []int64{breakfast.ID}, items)
	r2 := createRecipe(t, db, bob, "Салат", []int64{vegan.ID, breakfast.ID}, items)
	r3 := createRecipe(t, db, bob, "Стейк", []int64{dinner.ID}, items)

	members := NewMembershipRepository(db)
	require.NoError(t, members.Add(ctx, domain.KindFavorite, alice.ID, r3.ID))
	require.NoError(t, members.Add(ctx, domain.KindShoppingCart, alice.ID, r1.ID))

	repo := NewRecipeRepository(db)
	ids := func(f RecipeFilter) []int64 {
		t.Helper()
		list, total, err := repo.List(ctx, f, 0, 0)
		require.NoError(t, err)
		require.Equal(t, int64(len(list)), total)
		out := make([]int64, 0, len(list))
		for _, r := range list {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []int64{r3.ID, r2.ID, r1.ID}, ids(RecipeFilter{}), "newest first")
	assert.Equal(t, []int64{r2.ID, r1.ID}, ids(RecipeFilter{TagSlugs: []string{"breakfast", "vegan"}}), "tags are ORed without duplicates")
	assert.Equal(t, []int64{r3.ID, r2.ID}, ids(RecipeFilter{AuthorID: bob.ID}))
	assert.Equal(t, []int64{r2.ID}, ids(RecipeFilter{AuthorID: bob.ID, TagSlugs: []string{"breakfast"}}))
	assert.Equal(t, []int64{r3.ID}, ids(RecipeFilter{IsFavorited: true, ViewerID: alice.ID}))
	assert.Equal(t, []int64{r1.ID}, ids(RecipeFilter{IsInShoppingCart: true, ViewerID: alice.ID}))
	assert.Empty(t, ids(RecipeFilter{IsFavorited: true, IsInShoppingCart: true, ViewerID: alice.ID}))
	assert.Len(t, ids(RecipeFilter{IsFavorited: true, IsInShoppingCart: true}), 3, "anonymous viewer: membership filters are no-ops")

	page, total, err := repo.List(ctx, RecipeFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, r1.ID, page[0].ID)
}

func TestRecipeRepository_AuthorSample(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	author := createUser(t, db, "author")
	egg := createIngredient(t, db, "Яйцо", "шт")
	items := []domain.IngredientAmount{{IngredientID: egg.ID, Amount: 1}}
	for _, name := range []string{"Один", "Два", "Три", "Четыре"} {
		createRecipe(t, db, author, name, nil, items)
	}

	repo := NewRecipeRepository(db)
	sample, err := repo.ListByAuthor(ctx, author.ID, 3)
	require.NoError(t, err)
	require.Len(t, sample, 3)
	assert.Equal(t, "Четыре", sample[0].Name)

	count, err := repo.CountByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestRecipeFilter_AnonymousViewerDropsMembershipScopes(t *testing.T) {
	f := RecipeFilter{IsFavorited: true, IsInShoppingCart: true}
	assert.Empty(t, f.Scopes())

	f.ViewerID = 7
	assert.Len(t, f.Scopes(), 2)

	f = RecipeFilter{AuthorID: 1, TagSlugs: []string{"a"}}
	assert.Len(t, f.Scopes(), 2)
}
