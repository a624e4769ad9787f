package dashboard

import (
	"context"
	"time"

	"leadflow/internal/domain"
	"leadflow/internal/modules/lead"
)

type Service struct {
	leads  LeadStats
	orders OrderStats
	now    func() time.Time
}

func NewService(leads LeadStats, orders OrderStats) *Service {
	return &Service{leads: leads, orders: orders, now: time.Now}
}

// Metrics computes the dashboard snapshot as of now. "Today" is the UTC
// calendar date, fixed once per call; the follow-up window is
// [today, today+7d], inclusive on both ends.
//
// The six numbers come from independent queries with no shared transaction,
// so under concurrent writes they may reflect slightly different instants.
// That trade-off is intentional.
func (s *Service) Metrics(ctx context.Context) (*Metrics, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekEnd := today.AddDate(0, 0, 7)

	totalLeads, err := s.leads.Count(ctx)
	if err != nil {
		return nil, err
	}

	byStage, err := s.leads.CountByStage(ctx)
	if err != nil {
		return nil, err
	}

	dueThisWeek, err := s.leads.CountFollowUpsBetween(ctx, today, weekEnd)
	if err != nil {
		return nil, err
	}

	overdue, err := s.leads.ListOverdue(ctx, today, domain.FinalStages)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		TotalLeads:           totalLeads,
		LeadsByStage:         byStage,
		FollowupsDueThisWeek: dueThisWeek,
		OverdueFollowups:     lead.ToResponseList(overdue),
		TotalOrders:          totalOrders,
		OrdersByStatus:       byStatus,
	}, nil
}
