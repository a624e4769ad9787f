package domain

import "time"

type OrderStatus string

const (
	OrderReceived        OrderStatus = "Received"
	OrderInDevelopment   OrderStatus = "In Development"
	OrderReadyToDispatch OrderStatus = "Ready to Dispatch"
	OrderDispatched      OrderStatus = "Dispatched"
)

// OrderStatuses is the closed set of valid order statuses.
var OrderStatuses = []OrderStatus{
	OrderReceived,
	OrderInDevelopment,
	OrderReadyToDispatch,
	OrderDispatched,
}

// IsValidOrderStatus reports whether s is one of OrderStatuses.
func IsValidOrderStatus(s OrderStatus) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is a placed order tied to exactly one lead.
type Order struct {
	ID             int64       `json:"id"`
	LeadID         int64       `json:"lead_id"`
	ProductName    string      `json:"product_name"`
	Quantity       int         `json:"quantity"`
	OrderDate      time.Time   `json:"order_date"`
	Status         OrderStatus `json:"status"`
	DeliveryDate   *time.Time  `json:"delivery_date,omitempty"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`
}
