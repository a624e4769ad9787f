package lead

import (
	"time"

	"leadflow/internal/domain"
)

type CreateLeadRequest struct {
	Name            string `json:"name" validate:"required"`
	Contact         string `json:"contact" validate:"required"`
	Company         string `json:"company"`
	ProductInterest string `json:"product_interest"`
	Stage           string `json:"stage"`
	FollowUpDate    string `json:"follow_up_date"` // YYYY-MM-DD
	Notes           string `json:"notes"`
}

// UpdateLeadRequest is a sparse update: nil means "leave the field alone",
// an empty string on an optional field clears it.
type UpdateLeadRequest struct {
	Name            *string `json:"name"`
	Contact         *string `json:"contact"`
	Company         *string `json:"company"`
	ProductInterest *string `json:"product_interest"`
	Stage           *string `json:"stage"`
	FollowUpDate    *string `json:"follow_up_date"` // YYYY-MM-DD, "" clears
	Notes           *string `json:"notes"`
}

type LeadResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Contact         string     `json:"contact"`
	Company         string     `json:"company,omitempty"`
	ProductInterest string     `json:"product_interest,omitempty"`
	Stage           string     `json:"stage"`
	FollowUpDate    string     `json:"follow_up_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ToResponse formats a lead for the API, with the follow-up date as a
// plain calendar date.
func ToResponse(l *domain.Lead) LeadResponse {
	resp := LeadResponse{
		ID:              l.ID,
		Name:            l.Name,
		Contact:         l.Contact,
		Company:         l.Company,
		ProductInterest: l.ProductInterest,
		Stage:           l.Stage,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.FollowUpDate != nil {
		resp.FollowUpDate = l.FollowUpDate.Format("2006-01-02")
	}
	return resp
}

// ToResponseList maps a slice of leads.
func ToResponseList(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for i := range leads {
		out = append(out, ToResponse(&leads[i]))
	}
	return out
}
