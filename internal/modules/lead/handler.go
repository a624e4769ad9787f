package lead

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadflow/internal/pkg/response"
	"leadflow/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.CreateLead)
	rg.GET("/leads", h.ListLeads)
	rg.GET("/leads/:id", h.GetLead)
	rg.PATCH("/leads/:id", h.UpdateLead)
	rg.DELETE("/leads/:id", h.DeleteLead)
}

func (h *Handler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields", fields)
		return
	}

	l, err := h.service.CreateLead(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"lead": ToResponse(l)})
}

func (h *Handler) ListLeads(c *gin.Context) {
	leads, err := h.service.ListLeads(
		c.Request.Context(),
		c.Query("stage"),
		c.Query("follow_up_date"),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leads": ToResponseList(leads)})
}

func (h *Handler) GetLead(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	l, err := h.service.GetLead(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lead": ToResponse(l)})
}

func (h *Handler) UpdateLead(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.UpdateLead(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lead": ToResponse(l)})
}

func (h *Handler) DeleteLead(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteLead(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Storage operation failed")
	}
}

func leadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid lead id")
		return 0, false
	}
	return id, true
}
