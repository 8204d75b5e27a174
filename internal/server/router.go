package server

import (
	"net/http"

	"foodgram/internal/config"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/collection"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/modules/shoplist"
	"foodgram/internal/modules/user"
	"foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers into one gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, jwtService *jwt.Service) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	shoppingListRepo := repository.NewShoppingListRepository(db)

	catalogHandler := catalog.NewHandler(catalog.NewService(tagRepo, ingredientRepo))
	userHandler := user.NewHandler(user.NewService(userRepo, membershipRepo))
	recipeHandler := recipe.NewHandler(recipe.NewService(recipeRepo, membershipRepo, cfg.RecipesPageSize))
	collectionHandler := collection.NewHandler(
		collection.NewService(membershipRepo, recipeRepo, userRepo, cfg.SubscriptionRecipesLimit),
		cfg.RecipesPageSize,
	)
	shoplistHandler := shoplist.NewHandler(shoplist.NewService(shoppingListRepo))

	r := gin.New()
	r.Use(
		gin.Logger(),
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public: токен необязателен, но если он есть — задаёт viewer
		public := v1.Group("")
		public.Use(middleware.OptionalJWTAuth(jwtService))

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwtService))

		admin := protected.Group("")
		admin.Use(middleware.AdminOnly())

		catalogHandler.RegisterRoutes(public, admin)
		userHandler.RegisterRoutes(public, protected)
		recipeHandler.RegisterRoutes(public, protected)
		collectionHandler.RegisterRoutes(protected)
		shoplistHandler.RegisterRoutes(protected)
	}

	return r
}
