package dashboard

import "leadflow/internal/modules/lead"

// Metrics is the dashboard snapshot. overdue_followups carries full lead
// records, not a count.
type Metrics struct {
	TotalLeads           int64               `json:"total_leads"`
	LeadsByStage         map[string]int64    `json:"leads_by_stage"`
	FollowupsDueThisWeek int64               `json:"followups_due_this_week"`
	OverdueFollowups     []lead.LeadResponse `json:"overdue_followups"`
	TotalOrders          int64               `json:"total_orders"`
	OrdersByStatus       map[string]int64    `json:"orders_by_status"`
}
