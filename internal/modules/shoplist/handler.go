package shoplist

import (
	"net/http"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/recipes/download_shopping_cart", h.Download)
}

// Download отдаёт список покупок файлом shop-list.txt.
func (h *Handler) Download(c *gin.Context) {
	text, err := h.service.Text(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+FileName+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
