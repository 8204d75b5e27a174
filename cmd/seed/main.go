package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/collection"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/repository"
)

var tagSeeds = []catalog.CreateTagRequest{
	{Name: "Завтрак", Slug: "breakfast", Color: "#E26C2D"},
	{Name: "Обед", Slug: "lunch", Color: "#49B64E"},
	{Name: "Ужин", Slug: "dinner", Color: "#8775D2"},
}

var ingredientSeeds = []catalog.CreateIngredientRequest{
	{Name: "Яйцо", MeasurementUnit: "шт"},
	{Name: "Молоко", MeasurementUnit: "мл"},
	{Name: "Мука", MeasurementUnit: "г"},
	{Name: "Сахар", MeasurementUnit: "г"},
	{Name: "Соль", MeasurementUnit: "г"},
	{Name: "Картофель", MeasurementUnit: "г"},
	{Name: "Свёкла", MeasurementUnit: "г"},
	{Name: "Капуста", MeasurementUnit: "г"},
}

var recipeSeeds = []struct {
	name        string
	text        string
	cookingTime int
	tags        []int
	ingredients []int
}{
	{"Блины", "Смешать молоко, яйца и муку, жарить на сковороде.", 30, []int{0}, []int{0, 1, 2, 3, 4}},
	{"Омлет", "Взбить яйца с молоком и запечь.", 15, []int{0}, []int{0, 1, 4}},
	{"Борщ", "Сварить бульон, добавить свёклу, капусту и картофель.", 120, []int{1, 2}, []int{5, 6, 7, 4}},
	{"Картофельное пюре", "Отварить картофель и растолочь с молоком.", 40, []int{2}, []int{5, 1, 4}},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"subscriptions", "shopping_cart_entries", "favorites",
		"recipe_ingredients", "recipe_tags", "recipes",
		"ingredients", "tags", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s failed: %v", table, err)
		}
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)

	catalogService := catalog.NewService(repository.NewTagRepository(db), repository.NewIngredientRepository(db))
	recipeService := recipe.NewService(recipeRepo, membershipRepo, cfg.RecipesPageSize)
	collectionService := collection.NewService(membershipRepo, recipeRepo, userRepo, cfg.SubscriptionRecipesLimit)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@foodgram.local",
		Username:     "admin",
		FirstName:    "Администратор",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}
	log.Println("Admin created: admin@foodgram.local / admin123")

	cooks := make([]*domain.User, 0, 3)
	for i, name := range []string{"anna", "boris", "vera"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("cook123"), bcrypt.DefaultCost)
		u := &domain.User{
			Email:        name + "@foodgram.local",
			Username:     name,
			FirstName:    fmt.Sprintf("Повар %d", i+1),
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
		cooks = append(cooks, u)
	}

	// ================== CATALOG ==================
	log.Println("Creating tags and ingredients...")
	tagIDs := make([]int64, 0, len(tagSeeds))
	for _, req := range tagSeeds {
		tag, err := catalogService.CreateTag(ctx, req)
		if err != nil {
			log.Fatalf("tag %s: %v", req.Slug, err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	ingredientIDs := make([]int64, 0, len(ingredientSeeds))
	for _, req := range ingredientSeeds {
		ing, err := catalogService.CreateIngredient(ctx, req)
		if err != nil {
			log.Fatalf("ingredient %s: %v", req.Name, err)
		}
		ingredientIDs = append(ingredientIDs, ing.ID)
	}

	// ================== RECIPES ==================
	log.Println("Creating recipes...")
	recipeIDs := make([]int64, 0, len(recipeSeeds))
	for i, seed := range recipeSeeds {
		req := recipe.CreateRecipeRequest{
			Name:        seed.name,
			Text:        seed.text,
			CookingTime: seed.cookingTime,
		}
		for _, t := range seed.tags {
			req.Tags = append(req.Tags, tagIDs[t])
		}
		for _, ing := range seed.ingredients {
			req.Ingredients = append(req.Ingredients, recipe.IngredientInput{
				ID:     ingredientIDs[ing],
				Amount: 1 + rand.Intn(300),
			})
		}

		view, err := recipeService.Create(ctx, cooks[i%len(cooks)].ID, req)
		if err != nil {
			log.Fatalf("recipe %s: %v", seed.name, err)
		}
		recipeIDs = append(recipeIDs, view.ID)
	}

	// ================== COLLECTIONS ==================
	log.Println("Filling favorites, carts and subscriptions...")
	for i, u := range cooks {
		next := cooks[(i+1)%len(cooks)]
		if _, err := collectionService.Add(ctx, domain.KindSubscription, u.ID, next.ID, -1); err != nil {
			log.Fatal(err)
		}
		for _, id := range recipeIDs[:2] {
			if _, err := collectionService.Add(ctx, domain.KindShoppingCart, u.ID, id, -1); err != nil {
				log.Fatal(err)
			}
		}
		if _, err := collectionService.Add(ctx, domain.KindFavorite, u.ID, recipeIDs[len(recipeIDs)-1-i%len(recipeIDs)], -1); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("Seed completed: users=%d tags=%d ingredients=%d recipes=%d",
		len(cooks)+1, len(tagIDs), len(ingredientIDs), len(recipeIDs))
}
