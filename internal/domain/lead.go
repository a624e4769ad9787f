package domain

import "time"

// Well-known pipeline stages. Stage is free text on the wire, so these are
// conventions rather than a closed enumeration.
const (
	StageNew       = "New"
	StageContacted = "Contacted"
	StageQualified = "Qualified"
	StageClosed    = "Closed"
	StageLost      = "Lost"
	StageWon       = "Won"
)

// FinalStages are the stages excluded from overdue follow-up accounting:
// once a lead is closed, lost or won, a past follow-up date no longer
// means anyone has to act on it.
var FinalStages = []string{StageClosed, StageLost, StageWon}

// IsFinalStage reports whether the stage belongs to FinalStages.
func IsFinalStage(stage string) bool {
	for _, s := range FinalStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Lead is a prospective customer moving through the sales pipeline.
type Lead struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Contact         string     `json:"contact"`
	Company         string     `json:"company,omitempty"`
	ProductInterest string     `json:"product_interest,omitempty"`
	Stage           string     `json:"stage"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	// UpdatedAt is nil until the first update.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
