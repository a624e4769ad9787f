package order

import (
	"errors"
	"fmt"
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
	rg.POST("/orders", h.CreateOrder)
	rg.GET("/orders", h.ListOrders)
	rg.GET("/orders/:id", h.GetOrder)
	rg.PATCH("/orders/:id", h.UpdateOrder)
	rg.DELETE("/orders/:id", h.DeleteOrder)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields", fields)
		return
	}

	o, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND",
				fmt.Sprintf("Lead with ID %d not found", req.LeadID))
			return
		}
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order": ToResponse(o)})
}

func (h *Handler) ListOrders(c *gin.Context) {
	var leadID int64
	if v := c.Query("lead_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid lead_id filter")
			return
		}
		leadID = id
	}

	orders, err := h.service.ListOrders(c.Request.Context(), leadID, c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": ToResponseList(orders)})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": ToResponse(o)})
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": ToResponse(o)})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Storage operation failed")
	}
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return 0, false
	}
	return id, true
}
