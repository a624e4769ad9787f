package order

import (
	"time"

	"leadflow/internal/domain"
)

type CreateOrderRequest struct {
	LeadID       int64  `json:"lead_id" validate:"required"`
	ProductName  string `json:"product_name" validate:"required"`
	Quantity     *int   `json:"quantity"` // required; pointer so zero is a valid value
	OrderDate    string `json:"order_date"` // YYYY-MM-DD, defaults to today
	Status       string `json:"status"`     // defaults to Received
	DeliveryDate string `json:"delivery_date"`
	TrackingNum  string `json:"tracking_number"`
	Notes        string `json:"notes"`
}

// UpdateOrderRequest is a sparse update: nil means "leave the field alone",
// an empty string on an optional field clears it.
type UpdateOrderRequest struct {
	ProductName  *string `json:"product_name"`
	Quantity     *int    `json:"quantity"`
	OrderDate    *string `json:"order_date"`
	Status       *string `json:"status"`
	DeliveryDate *string `json:"delivery_date"` // "" clears
	TrackingNum  *string `json:"tracking_number"`
	Notes        *string `json:"notes"`
}

type OrderResponse struct {
	ID             int64      `json:"id"`
	LeadID         int64      `json:"lead_id"`
	ProductName    string     `json:"product_name"`
	Quantity       int        `json:"quantity"`
	OrderDate      string     `json:"order_date"`
	Status         string     `json:"status"`
	DeliveryDate   string     `json:"delivery_date,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ToResponse formats an order for the API, with dates as plain calendar
// dates.
func ToResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		LeadID:         o.LeadID,
		ProductName:    o.ProductName,
		Quantity:       o.Quantity,
		OrderDate:      o.OrderDate.Format("2006-01-02"),
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.DeliveryDate != nil {
		resp.DeliveryDate = o.DeliveryDate.Format("2006-01-02")
	}
	return resp
}

// ToResponseList maps a slice of orders.
func ToResponseList(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToResponse(&orders[i]))
	}
	return out
}
