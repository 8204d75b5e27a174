package recipe

import (
	"net/http"
	"strconv"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
	"foodgram/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/recipes", h.List)
	public.GET("/recipes/:id", h.Get)

	protected.POST("/recipes", h.Create)
	protected.PATCH("/recipes/:id", h.Update)
	protected.DELETE("/recipes/:id", h.Delete)
}

// List handles GET /api/v1/recipes with filters
//
// Query: author, tags (повторяемый, slug), is_favorited, is_in_shopping_cart
// (1/0/true/false), page, limit.
func (h *Handler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), middleware.UserID(c), parseFilter(c), utils.ParsePage(c, 0))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Get handles GET /api/v1/recipes/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return
	}

	view, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipe": view})
}

// Create handles POST /api/v1/recipes (protected)
func (h *Handler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	view, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"recipe": view})
}

// Update handles PATCH /api/v1/recipes/:id (protected, author only)
func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	view, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipe": view})
}

// Delete handles DELETE /api/v1/recipes/:id (protected, author only)
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseFilter never fails: malformed values are ignored like absent ones.
func parseFilter(c *gin.Context) repository.RecipeFilter {
	var f repository.RecipeFilter

	if author := c.Query("author"); author != "" {
		if val, err := strconv.ParseInt(author, 10, 64); err == nil && val > 0 {
			f.AuthorID = val
		}
	}

	for _, slug := range c.QueryArray("tags") {
		if slug != "" {
			f.TagSlugs = append(f.TagSlugs, slug)
		}
	}

	f.IsFavorited = utils.ParseFlag(c, "is_favorited")
	f.IsInShoppingCart = utils.ParseFlag(c, "is_in_shopping_cart")
	return f
}
