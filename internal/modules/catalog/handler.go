package catalog

import (
	"net/http"

	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes: чтение справочников открыто, запись — только admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/tags", h.ListTags)
	public.GET("/tags/:id", h.GetTag)
	public.GET("/ingredients", h.ListIngredients)
	public.GET("/ingredients/:id", h.GetIngredient)

	admin.POST("/tags", h.CreateTag)
	admin.POST("/ingredients", h.CreateIngredient)
}

/* ---------- TAG HANDLERS ---------- */

// ListTags handles GET /api/v1/tags
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tags": tags})
}

// GetTag handles GET /api/v1/tags/:id
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tag ID")
		return
	}

	tag, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tag": tag})
}

// CreateTag handles POST /api/v1/tags (admin)
func (h *Handler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"tag": tag})
}

/* ---------- INGREDIENT HANDLERS ---------- */

// ListIngredients handles GET /api/v1/ingredients
func (h *Handler) ListIngredients(c *gin.Context) {
	items, err := h.service.ListIngredients(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ingredients": items})
}

// GetIngredient handles GET /api/v1/ingredients/:id
func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ingredient ID")
		return
	}

	ing, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ingredient": ing})
}

// CreateIngredient handles POST /api/v1/ingredients (admin)
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	ing, err := h.service.CreateIngredient(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"ingredient": ing})
}
