package dashboard

import (
	"context"
	"testing"
	"time"

	"leadflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLeadStats struct {
	mock.Mock
}

func (m *MockLeadStats) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadStats) CountByStage(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockLeadStats) CountFollowUpsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadStats) ListOverdue(ctx context.Context, before time.Time, excludedStages []string) ([]domain.Lead, error) {
	args := m.Called(ctx, before, excludedStages)
	return args.Get(0).([]domain.Lead), args.Error(1)
}

type MockOrderStats struct {
	mock.Mock
}

func (m *MockOrderStats) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderStats) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func TestMetrics_WindowAndExclusions(t *testing.T) {
	// 2025-03-10 late evening: "today" must still be the 10th, and the
	// follow-up window must run through the 17th inclusive.
	now := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	overdueDate := today.AddDate(0, 0, -2)
	overdueLead := domain.Lead{
		ID:           7,
		Name:         "Olga Kim",
		Contact:      "o.kim@trandex.example",
		Stage:        domain.StageQualified,
		FollowUpDate: &overdueDate,
	}

	leads := new(MockLeadStats)
	orders := new(MockOrderStats)

	leads.On("Count", mock.Anything).Return(int64(6), nil)
	leads.On("CountByStage", mock.Anything).Return(map[string]int64{
		domain.StageNew:       2,
		domain.StageQualified: 1,
		domain.StageWon:       3,
	}, nil)
	leads.On("CountFollowUpsBetween", mock.Anything, today, weekEnd).Return(int64(2), nil)
	leads.On("ListOverdue", mock.Anything, today, domain.FinalStages).
		Return([]domain.Lead{overdueLead}, nil)
	orders.On("Count", mock.Anything).Return(int64(4), nil)
	orders.On("CountByStatus", mock.Anything).Return(map[string]int64{
		string(domain.OrderReceived):   3,
		string(domain.OrderDispatched): 1,
	}, nil)

	svc := NewService(leads, orders)
	svc.now = func() time.Time { return now }

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), m.TotalLeads)
	assert.Equal(t, int64(2), m.FollowupsDueThisWeek)
	assert.Equal(t, int64(4), m.TotalOrders)

	// group-by tallies must sum to the totals
	var stageSum int64
	for _, v := range m.LeadsByStage {
		stageSum += v
	}
	assert.Equal(t, m.TotalLeads, stageSum)

	var statusSum int64
	for _, v := range m.OrdersByStatus {
		statusSum += v
	}
	assert.Equal(t, m.TotalOrders, statusSum)

	// overdue follow-ups are full records
	require.Len(t, m.OverdueFollowups, 1)
	assert.Equal(t, int64(7), m.OverdueFollowups[0].ID)
	assert.Equal(t, "Olga Kim", m.OverdueFollowups[0].Name)
	assert.Equal(t, "o.kim@trandex.example", m.OverdueFollowups[0].Contact)
	assert.Equal(t, "2025-03-08", m.OverdueFollowups[0].FollowUpDate)

	leads.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestMetrics_EmptyPipeline(t *testing.T) {
	leads := new(MockLeadStats)
	orders := new(MockOrderStats)

	leads.On("Count", mock.Anything).Return(int64(0), nil)
	leads.On("CountByStage", mock.Anything).Return(map[string]int64{}, nil)
	leads.On("CountFollowUpsBetween", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
	leads.On("ListOverdue", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Lead{}, nil)
	orders.On("Count", mock.Anything).Return(int64(0), nil)
	orders.On("CountByStatus", mock.Anything).Return(map[string]int64{}, nil)

	svc := NewService(leads, orders)

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, m.TotalLeads)
	assert.Empty(t, m.LeadsByStage)
	assert.NotNil(t, m.OverdueFollowups)
	assert.Empty(t, m.OverdueFollowups)
}
