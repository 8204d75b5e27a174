package user

import (
	"net/http"

	"foodgram/internal/middleware"
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

// RegisterRoutes: /users/me требует токен, /users/:id доступен всем.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/users/me", h.Me)
	public.GET("/users/:id", h.GetByID)
}

// Me — GET /users/me
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	p, err := h.service.Get(c.Request.Context(), userID, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}

// GetByID — GET /users/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	p, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}
