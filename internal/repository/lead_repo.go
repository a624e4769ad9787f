package repository

import (
	"context"
	"time"

	"leadflow/internal/domain"

	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

type leadModel struct {
	ID              int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string     `gorm:"column:name;not null;index"`
	Contact         string     `gorm:"column:contact;not null;index"`
	Company         *string    `gorm:"column:company"`
	ProductInterest *string    `gorm:"column:product_interest"`
	Stage           string     `gorm:"column:stage;not null"`
	FollowUpDate    *time.Time `gorm:"column:follow_up_date;type:date"`
	Notes           *string    `gorm:"column:notes"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt       *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (leadModel) TableName() string { return "leads" }

// LeadModel exposes the row type for schema migration only.
func LeadModel() interface{} { return &leadModel{} }

// LeadFilter narrows List. Zero values mean "no restriction"; the filters
// compose with AND.
type LeadFilter struct {
	Stage        string
	FollowUpDate *time.Time
}

func toDomainLead(m leadModel) *domain.Lead {
	l := &domain.Lead{
		ID:           m.ID,
		Name:         m.Name,
		Contact:      m.Contact,
		Stage:        m.Stage,
		FollowUpDate: m.FollowUpDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Company != nil {
		l.Company = *m.Company
	}
	if m.ProductInterest != nil {
		l.ProductInterest = *m.ProductInterest
	}
	if m.Notes != nil {
		l.Notes = *m.Notes
	}
	return l
}

func toLeadModel(l *domain.Lead) leadModel {
	m := leadModel{
		ID:           l.ID,
		Name:         l.Name,
		Contact:      l.Contact,
		Stage:        l.Stage,
		FollowUpDate: l.FollowUpDate,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.Company != "" {
		v := l.Company
		m.Company = &v
	}
	if l.ProductInterest != "" {
		v := l.ProductInterest
		m.ProductInterest = &v
	}
	if l.Notes != "" {
		v := l.Notes
		m.Notes = &v
	}
	return m
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	m := toLeadModel(l)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = *toDomainLead(m)
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var m leadModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainLead(m), nil
}

// List returns leads matching the filter, ordered by id ascending.
func (r *LeadRepository) List(ctx context.Context, f LeadFilter) ([]domain.Lead, error) {
	q := r.db.WithContext(ctx).Model(&leadModel{})
	if f.Stage != "" {
		q = q.Where("stage = ?", f.Stage)
	}
	if f.FollowUpDate != nil {
		q = q.Where("follow_up_date = ?", *f.FollowUpDate)
	}

	var ms []leadModel
	if tx := q.Order("id ASC").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Lead, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainLead(m))
	}
	return out, nil
}

// Save writes the full row back. Callers load the lead first, so an update
// only changes what they changed on the struct.
func (r *LeadRepository) Save(ctx context.Context, l *domain.Lead) error {
	m := toLeadModel(l)
	return r.db.WithContext(ctx).Save(&m).Error
}

// Delete removes the lead and reports how many rows were affected.
func (r *LeadRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&leadModel{}, id)
	return tx.RowsAffected, tx.Error
}

func (r *LeadRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&leadModel{}).Where("id = ?", id).Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&leadModel{}).Count(&cnt)
	return cnt, tx.Error
}

// CountByStage tallies leads per stage. Only stages present in the table
// appear in the result.
func (r *LeadRepository) CountByStage(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Stage string
		Cnt   int64
	}
	tx := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Select("stage, COUNT(id) AS cnt").
		Group("stage").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Stage] = r.Cnt
	}
	return out, nil
}

// CountFollowUpsBetween counts leads whose follow-up date falls in
// [from, to], both ends inclusive.
func (r *LeadRepository) CountFollowUpsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Where("follow_up_date IS NOT NULL").
		Where("follow_up_date >= ? AND follow_up_date <= ?", from, to).
		Count(&cnt)
	return cnt, tx.Error
}

// ListOverdue returns full lead records with a follow-up date strictly
// before the given day, skipping the excluded stages.
func (r *LeadRepository) ListOverdue(ctx context.Context, before time.Time, excludedStages []string) ([]domain.Lead, error) {
	var ms []leadModel
	tx := r.db.WithContext(ctx).
		Where("follow_up_date IS NOT NULL").
		Where("follow_up_date < ?", before).
		Where("stage NOT IN ?", excludedStages).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Lead, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainLead(m))
	}
	return out, nil
}
