package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadflow/internal/domain"
	"leadflow/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	orders OrderRepository
	leads  LeadChecker
	now    func() time.Time
}

func NewService(orders OrderRepository, leads LeadChecker) *Service {
	return &Service{orders: orders, leads: leads, now: time.Now}
}

// CreateOrder validates the payload, checks the referenced lead exists and
// inserts the order. The foreign key stays in the schema as a backstop: a
// lead deleted between the check and the insert surfaces as the same
// not-found error.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.LeadID <= 0 {
		return nil, fmt.Errorf("%w: lead_id is required", ErrValidation)
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, fmt.Errorf("%w: product_name is required", ErrValidation)
	}
	if req.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity is required", ErrValidation)
	}

	status := domain.OrderStatus(req.Status)
	if req.Status == "" {
		status = domain.OrderReceived
	} else if !domain.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of %v", ErrValidation, domain.OrderStatuses)
	}

	ok, err := s.leads.Exists(ctx, req.LeadID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrLeadNotFound, req.LeadID)
	}

	now := s.now().UTC()

	orderDate := midnight(now)
	if req.OrderDate != "" {
		d, err := parseDate(req.OrderDate, "order_date")
		if err != nil {
			return nil, err
		}
		orderDate = d
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		d, err := parseDate(req.DeliveryDate, "delivery_date")
		if err != nil {
			return nil, err
		}
		deliveryDate = &d
	}

	o := &domain.Order{
		LeadID:         req.LeadID,
		ProductName:    req.ProductName,
		Quantity:       *req.Quantity,
		OrderDate:      orderDate,
		Status:         status,
		DeliveryDate:   deliveryDate,
		TrackingNumber: req.TrackingNum,
		Notes:          req.Notes,
		CreatedAt:      now,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("%w: id %d", ErrLeadNotFound, req.LeadID)
		}
		return nil, err
	}
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders applies the optional lead-id and status filters; zero values
// mean every order.
func (s *Service) ListOrders(ctx context.Context, leadID int64, status string) ([]domain.Order, error) {
	if status != "" && !domain.IsValidOrderStatus(domain.OrderStatus(status)) {
		return nil, fmt.Errorf("%w: status must be one of %v", ErrValidation, domain.OrderStatuses)
	}
	return s.orders.List(ctx, repository.OrderFilter{LeadID: leadID, Status: status})
}

// UpdateOrder applies only the fields present in req and refreshes
// updated_at.
func (s *Service) UpdateOrder(ctx context.Context, id int64, req UpdateOrderRequest) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProductName != nil {
		o.ProductName = *req.ProductName
	}
	if req.Quantity != nil {
		o.Quantity = *req.Quantity
	}
	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		if !domain.IsValidOrderStatus(status) {
			return nil, fmt.Errorf("%w: status must be one of %v", ErrValidation, domain.OrderStatuses)
		}
		o.Status = status
	}
	if req.OrderDate != nil && *req.OrderDate != "" {
		d, err := parseDate(*req.OrderDate, "order_date")
		if err != nil {
			return nil, err
		}
		o.OrderDate = d
	}
	if req.DeliveryDate != nil {
		if *req.DeliveryDate == "" {
			o.DeliveryDate = nil
		} else {
			d, err := parseDate(*req.DeliveryDate, "delivery_date")
			if err != nil {
				return nil, err
			}
			o.DeliveryDate = &d
		}
	}
	if req.TrackingNum != nil {
		o.TrackingNumber = *req.TrackingNum
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}

	now := s.now().UTC()
	o.UpdatedAt = &now

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	rows, err := s.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func parseDate(v, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	return midnight(t), nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
