package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/metrics", h.GetMetrics)
}

func (h *Handler) GetMetrics(c *gin.Context) {
	m, err := h.service.Metrics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute metrics")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"metrics": m})
}
