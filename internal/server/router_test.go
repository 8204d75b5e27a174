package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

type testEnv struct {
	router http.Handler
	tokens map[string]string
	users  map[string]*domain.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", database.Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{RecipesPageSize: 6, SubscriptionRecipesLimit: 3}
	jwtService := jwt.New("test-secret", time.Hour)

	env := &testEnv{
		router: NewRouter(cfg, db, jwtService),
		tokens: map[string]string{},
		users:  map[string]*domain.User{},
	}

	users := repository.NewUserRepository(db)
	for name, role := range map[string]domain.UserRole{"admin": domain.RoleAdmin, "alice": domain.RoleUser, "bob": domain.RoleUser} {
		u := &domain.User{Email: name + "@example.com", Username: name, PasswordHash: "x", Role: role}
		require.NoError(t, users.Create(context.Background(), u))
		token, err := jwtService.GenerateToken(u.ID, string(u.Role))
		require.NoError(t, err)
		env.users[name] = u
		env.tokens[name] = token
	}
	return env
}

// do sends a request as the named user ("" = anonymous).
func (e *testEnv) do(t *testing.T, as, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[as])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

type recipeBody struct {
	Recipe struct {
		ID               int64 `json:"id"`
		IsFavorited      bool  `json:"is_favorited"`
		IsInShoppingCart bool  `json:"is_in_shopping_cart"`
		Author           struct {
			Username     string `json:"username"`
			IsSubscribed bool   `json:"is_subscribed"`
		} `json:"author"`
		Ingredients []struct {
			Name   string `json:"name"`
			Amount int    `json:"amount"`
		} `json:"ingredients"`
	} `json:"recipe"`
}

type recipeList struct {
	Recipes []struct {
		ID          int64 `json:"id"`
		IsFavorited bool  `json:"is_favorited"`
	} `json:"recipes"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

func TestRouter_RecipeLifecycle(t *testing.T) {
	env := setupEnv(t)

	// справочники пишет только admin
	w := env.do(t, "alice", http.MethodPost, "/api/v1/tags", gin.H{"name": "Завтрак", "slug": "breakfast", "color": "#E26C2D"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, "admin", http.MethodPost, "/api/v1/tags", gin.H{"name": "Завтрак", "slug": "breakfast", "color": "#E26C2D"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tag struct {
		Tag domain.Tag `json:"tag"`
	}
	decode(t, w, &tag)

	ingredientIDs := map[string]int64{}
	for _, name := range []string{"Соль", "Сахар"} {
		w = env.do(t, "admin", http.MethodPost, "/api/v1/ingredients", gin.H{"name": name, "measurement_unit": "г"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var ing struct {
			Ingredient domain.Ingredient `json:"ingredient"`
		}
		decode(t, w, &ing)
		ingredientIDs[name] = ing.Ingredient.ID
	}

	// без токена создать рецепт нельзя
	newRecipe := gin.H{
		"name":         "Сладкая каша",
		"text":         "Смешать",
		"cooking_time": 10,
		"tags":         []int64{tag.Tag.ID, tag.Tag.ID},
		"ingredients": []gin.H{
			{"id": ingredientIDs["Соль"], "amount": 5},
			{"id": ingredientIDs["Сахар"], "amount": 20},
		},
	}
	w = env.do(t, "", http.MethodPost, "/api/v1/recipes", newRecipe)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, "alice", http.MethodPost, "/api/v1/recipes", newRecipe)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created recipeBody
	decode(t, w, &created)
	recipeID := created.Recipe.ID
	assert.Equal(t, "alice", created.Recipe.Author.Username)
	assert.Len(t, created.Recipe.Ingredients, 2)

	// повтор ингредиента — 400, ничего не создаётся
	w = env.do(t, "alice", http.MethodPost, "/api/v1/recipes", gin.H{
		"name": "Дубль", "text": "x", "cooking_time": 1,
		"ingredients": []gin.H{{"id": ingredientIDs["Соль"], "amount": 1}, {"id": ingredientIDs["Соль"], "amount": 2}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w, nil).Error.Details, "ingredients")

	// избранное и корзина
	recipePath := fmt.Sprintf("/api/v1/recipes/%d", recipeID)
	require.Equal(t, http.StatusCreated, env.do(t, "bob", http.MethodPost, recipePath+"/favorite", nil).Code)
	w = env.do(t, "bob", http.MethodPost, recipePath+"/favorite", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", decode(t, w, nil).Error.Code)
	require.Equal(t, http.StatusCreated, env.do(t, "bob", http.MethodPost, recipePath+"/shopping_cart", nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, "bob", http.MethodPost, "/api/v1/recipes/999/favorite", nil).Code)

	w = env.do(t, "bob", http.MethodGet, recipePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var seen recipeBody
	decode(t, w, &seen)
	assert.True(t, seen.Recipe.IsFavorited)
	assert.True(t, seen.Recipe.IsInShoppingCart)

	// фильтры
	var list recipeList
	decode(t, env.do(t, "alice", http.MethodGet, "/api/v1/recipes?is_favorited=1", nil), &list)
	assert.Empty(t, list.Recipes)
	decode(t, env.do(t, "bob", http.MethodGet, "/api/v1/recipes?is_favorited=1&tags=breakfast", nil), &list)
	require.Len(t, list.Recipes, 1)
	assert.True(t, list.Recipes[0].IsFavorited)
	decode(t, env.do(t, "", http.MethodGet, "/api/v1/recipes?is_favorited=1", nil), &list)
	assert.Equal(t, int64(1), list.Pagination.Total, "anonymous viewer ignores membership filters")

	// список покупок
	w = env.do(t, "bob", http.MethodGet, "/api/v1/recipes/download_shopping_cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "список покупок\nингридиент, ед. - количество\nСахар (г) - 20\nСоль (г) - 5\n", w.Body.String())

	// подписки
	alicePath := fmt.Sprintf("/api/v1/users/%d", env.users["alice"].ID)
	w = env.do(t, "bob", http.MethodPost, alicePath+"/subscribe?recipes_limit=1", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub struct {
		Author struct {
			IsSubscribed bool  `json:"is_subscribed"`
			RecipesCount int64 `json:"recipes_count"`
		} `json:"author"`
	}
	decode(t, w, &sub)
	assert.True(t, sub.Author.IsSubscribed)
	assert.Equal(t, int64(1), sub.Author.RecipesCount)

	require.Equal(t, http.StatusBadRequest, env.do(t, "alice", http.MethodPost, alicePath+"/subscribe", nil).Code)

	var profile struct {
		User struct {
			IsSubscribed bool `json:"is_subscribed"`
		} `json:"user"`
	}
	decode(t, env.do(t, "bob", http.MethodGet, alicePath, nil), &profile)
	assert.True(t, profile.User.IsSubscribed)

	var subs struct {
		Authors []struct {
			Username string `json:"username"`
		} `json:"authors"`
	}
	decode(t, env.do(t, "bob", http.MethodGet, "/api/v1/users/subscriptions", nil), &subs)
	require.Len(t, subs.Authors, 1)
	assert.Equal(t, "alice", subs.Authors[0].Username)

	// изменения только от автора
	require.Equal(t, http.StatusForbidden, env.do(t, "bob", http.MethodPatch, recipePath, gin.H{"cooking_time": 5}).Code)
	require.Equal(t, http.StatusOK, env.do(t, "alice", http.MethodPatch, recipePath, gin.H{
		"ingredients": []gin.H{{"id": ingredientIDs["Соль"], "amount": 1}},
	}).Code)

	w = env.do(t, "bob", http.MethodGet, "/api/v1/recipes/download_shopping_cart", nil)
	assert.Equal(t, "список покупок\nингридиент, ед. - количество\nСоль (г) - 1\n", w.Body.String())

	require.Equal(t, http.StatusForbidden, env.do(t, "bob", http.MethodDelete, recipePath, nil).Code)
	require.Equal(t, http.StatusNoContent, env.do(t, "alice", http.MethodDelete, recipePath, nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, "bob", http.MethodGet, recipePath, nil).Code)

	w = env.do(t, "bob", http.MethodGet, "/api/v1/recipes/download_shopping_cart", nil)
	assert.Equal(t, "список покупок\nингридиент, ед. - количество\n", w.Body.String())

	require.Equal(t, http.StatusNoContent, env.do(t, "bob", http.MethodDelete, alicePath+"/subscribe", nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, "bob", http.MethodDelete, alicePath+"/subscribe", nil).Code)
}

func TestRouter_Health(t *testing.T) {
	env := setupEnv(t)
	w := env.do(t, "", http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
