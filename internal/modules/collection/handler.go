package collection

import (
	"net/http"

	"foodgram/internal/domain"
	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handler обрабатывает избранное, корзину и подписки: один набор
// обработчиков, параметризованный видом коллекции.
type Handler struct {
	service  *Service
	pageSize int
}

func NewHandler(service *Service, pageSize int) *Handler {
	return &Handler{service: service, pageSize: pageSize}
}

// RegisterRoutes регистрирует routes (все требуют токен)
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/recipes/:id/favorite", h.Add(domain.KindFavorite))
	protected.DELETE("/recipes/:id/favorite", h.Remove(domain.KindFavorite))

	protected.POST("/recipes/:id/shopping_cart", h.Add(domain.KindShoppingCart))
	protected.DELETE("/recipes/:id/shopping_cart", h.Remove(domain.KindShoppingCart))

	protected.POST("/users/:id/subscribe", h.Add(domain.KindSubscription))
	protected.DELETE("/users/:id/subscribe", h.Remove(domain.KindSubscription))
	protected.GET("/users/subscriptions", h.Subscriptions)
}

// Add → 201 со сводкой цели, 409 если пара уже есть.
func (h *Handler) Add(kind domain.CollectionKind) gin.HandlerFunc {
	key := "recipe"
	if !kind.TargetsRecipe() {
		key = "author"
	}

	return func(c *gin.Context) {
		targetID, ok := utils.ParseID(c, "id")
		if !ok {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+key+" ID")
			return
		}

		recipesLimit := utils.ParseNonNegative(c, "recipes_limit", -1)
		summary, err := h.service.Add(c.Request.Context(), kind, middleware.UserID(c), targetID, recipesLimit)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusCreated, gin.H{key: summary})
	}
}

// Remove → 204, 404 если пары не было.
func (h *Handler) Remove(kind domain.CollectionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, ok := utils.ParseID(c, "id")
		if !ok {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
			return
		}

		if err := h.service.Remove(c.Request.Context(), kind, middleware.UserID(c), targetID); err != nil {
			response.FromError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// Subscriptions — GET /users/subscriptions?page=&limit=&recipes_limit=
func (h *Handler) Subscriptions(c *gin.Context) {
	page := utils.ParsePage(c, h.pageSize)
	recipesLimit := utils.ParseNonNegative(c, "recipes_limit", -1)

	list, err := h.service.ListSubscriptions(c.Request.Context(), middleware.UserID(c), page, recipesLimit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}
