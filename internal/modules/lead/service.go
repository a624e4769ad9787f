package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadflow/internal/domain"
	"leadflow/internal/repository"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	leads LeadRepository
	now   func() time.Time
}

func NewService(leads LeadRepository) *Service {
	return &Service{leads: leads, now: time.Now}
}

func (s *Service) CreateLead(ctx context.Context, req CreateLeadRequest) (*domain.Lead, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Contact) == "" {
		return nil, fmt.Errorf("%w: contact is required", ErrValidation)
	}

	stage := req.Stage
	if stage == "" {
		stage = domain.StageNew
	}

	followUp, err := parseOptionalDate(req.FollowUpDate, "follow_up_date")
	if err != nil {
		return nil, err
	}

	l := &domain.Lead{
		Name:            req.Name,
		Contact:         req.Contact,
		Company:         req.Company,
		ProductInterest: req.ProductInterest,
		Stage:           stage,
		FollowUpDate:    followUp,
		Notes:           req.Notes,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	l, err := s.leads.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLeads applies the optional stage and follow-up-date filters; both
// empty means every lead.
func (s *Service) ListLeads(ctx context.Context, stage, followUpDate string) ([]domain.Lead, error) {
	f := repository.LeadFilter{Stage: stage}

	fu, err := parseOptionalDate(followUpDate, "follow_up_date")
	if err != nil {
		return nil, err
	}
	f.FollowUpDate = fu

	return s.leads.List(ctx, f)
}

// UpdateLead applies only the fields present in req and refreshes
// updated_at.
func (s *Service) UpdateLead(ctx context.Context, id int64, req UpdateLeadRequest) (*domain.Lead, error) {
	l, err := s.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Contact != nil {
		l.Contact = *req.Contact
	}
	if req.Company != nil {
		l.Company = *req.Company
	}
	if req.ProductInterest != nil {
		l.ProductInterest = *req.ProductInterest
	}
	if req.Stage != nil {
		l.Stage = *req.Stage
	}
	if req.Notes != nil {
		l.Notes = *req.Notes
	}
	if req.FollowUpDate != nil {
		if *req.FollowUpDate == "" {
			l.FollowUpDate = nil
		} else {
			fu, err := parseOptionalDate(*req.FollowUpDate, "follow_up_date")
			if err != nil {
				return nil, err
			}
			l.FollowUpDate = fu
		}
	}

	now := s.now().UTC()
	l.UpdatedAt = &now

	if err := s.leads.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteLead(ctx context.Context, id int64) error {
	rows, err := s.leads.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// parseOptionalDate parses a YYYY-MM-DD value into UTC midnight. Empty
// input yields nil.
func parseOptionalDate(v, field string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t, nil
}
