package repository

import (
	"context"
	"time"

	"leadflow/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderModel struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	LeadID         int64      `gorm:"column:lead_id;not null;index"`
	ProductName    string     `gorm:"column:product_name;not null"`
	Quantity       int        `gorm:"column:quantity;not null"`
	OrderDate      time.Time  `gorm:"column:order_date;type:date;not null"`
	Status         string     `gorm:"column:status;not null"`
	DeliveryDate   *time.Time `gorm:"column:delivery_date;type:date"`
	TrackingNumber *string    `gorm:"column:tracking_number"`
	Notes          *string    `gorm:"column:notes"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt      *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`

	Lead *leadModel `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
}

func (orderModel) TableName() string { return "orders" }

// OrderModel exposes the row type for schema migration only.
func OrderModel() interface{} { return &orderModel{} }

// OrderFilter narrows List. Zero values mean "no restriction"; the filters
// compose with AND.
type OrderFilter struct {
	LeadID int64
	Status string
}

func toDomainOrder(m orderModel) *domain.Order {
	o := &domain.Order{
		ID:           m.ID,
		LeadID:       m.LeadID,
		ProductName:  m.ProductName,
		Quantity:     m.Quantity,
		OrderDate:    m.OrderDate,
		Status:       domain.OrderStatus(m.Status),
		DeliveryDate: m.DeliveryDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.TrackingNumber != nil {
		o.TrackingNumber = *m.TrackingNumber
	}
	if m.Notes != nil {
		o.Notes = *m.Notes
	}
	return o
}

func toOrderModel(o *domain.Order) orderModel {
	m := orderModel{
		ID:           o.ID,
		LeadID:       o.LeadID,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		OrderDate:    o.OrderDate,
		Status:       string(o.Status),
		DeliveryDate: o.DeliveryDate,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.TrackingNumber != "" {
		v := o.TrackingNumber
		m.TrackingNumber = &v
	}
	if o.Notes != "" {
		v := o.Notes
		m.Notes = &v
	}
	return m
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	m := toOrderModel(o)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*o = *toDomainOrder(m)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var m orderModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainOrder(m), nil
}

// List returns orders matching the filter, ordered by id ascending.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Model(&orderModel{})
	if f.LeadID != 0 {
		q = q.Where("lead_id = ?", f.LeadID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var ms []orderModel
	if tx := q.Order("id ASC").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Order, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainOrder(m))
	}
	return out, nil
}

// Save writes the full row back. Callers load the order first, so an update
// only changes what they changed on the struct.
func (r *OrderRepository) Save(ctx context.Context, o *domain.Order) error {
	m := toOrderModel(o)
	return r.db.WithContext(ctx).Save(&m).Error
}

// Delete removes the order and reports how many rows were affected.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&orderModel{}, id)
	return tx.RowsAffected, tx.Error
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&orderModel{}).Count(&cnt)
	return cnt, tx.Error
}

// CountByStatus tallies orders per status. Only statuses present in the
// table appear in the result.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	tx := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Select("status, COUNT(id) AS cnt").
		Group("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Cnt
	}
	return out, nil
}
