package response

import (
	"encoding/json"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase"
)

type QuoteResponse struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id,omitempty"`
	RiskSnapshotID string     `json:"risk_snapshot_id"`
	Status         string     `json:"status"`
	ExternalRefID  string     `json:"external_ref_id,omitempty"`
	Error          string     `json:"error,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FromQuote uses q.Status as given; callers pass the effective status in.
func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		ConversationID: q.ConversationID,
		RiskSnapshotID: q.RiskSnapshotID,
		Status:         string(q.Status),
		ExternalRefID:  q.ExternalRefID,
		Error:          q.FailureReason(),
		ExpiresAt:      q.ExpiresAt,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}

type AlternativeResponse struct {
	ID              string            `json:"id"`
	Insurer         string            `json:"aseguradora"`
	PlanCode        string            `json:"titulo"`
	Description     string            `json:"descripcion"`
	Grade           string            `json:"normalized_grade"`
	Price           string            `json:"precio"`
	Currency        string            `json:"moneda"`
	ExternalCode    string            `json:"external_code"`
	ExternalQuoteID string            `json:"external_quote_id"`
	MarketingTitle  string            `json:"marketing_title"`
	SumInsuredText  string            `json:"sum_insured_text"`
	FeatureTags     []string          `json:"features_tags"`
	FullDetails     map[string]string `json:"full_details"`
}

func FromAlternative(a entities.QuoteAlternative) AlternativeResponse {
	tags := a.FeatureTags
	if tags == nil {
		tags = []string{}
	}
	return AlternativeResponse{
		ID:              a.ID,
		Insurer:         a.Insurer,
		PlanCode:        a.PlanCode,
		Description:     a.Description,
		Grade:           string(a.Grade),
		Price:           a.Price.StringFixed(2),
		Currency:        a.Currency,
		ExternalCode:    a.ExternalCode,
		ExternalQuoteID: a.ExternalQuoteID,
		MarketingTitle:  a.MarketingTitle,
		SumInsuredText:  a.SumInsuredText,
		FeatureTags:     tags,
		FullDetails:     a.FullDetails,
	}
}

type QuoteDetailResponse struct {
	QuoteResponse
	Snapshot     entities.RiskSnapshot `json:"risk_snapshot"`
	Alternatives []AlternativeResponse `json:"alternatives"`
	RawResponse  json.RawMessage       `json:"raw_response,omitempty"`
}

func FromQuoteDetails(d usecase.QuoteDetails) QuoteDetailResponse {
	q := d.Quote
	q.Status = d.Status
	alts := make([]AlternativeResponse, 0, len(d.Alternatives))
	for _, a := range d.Alternatives {
		alts = append(alts, FromAlternative(a))
	}
	return QuoteDetailResponse{
		QuoteResponse: FromQuote(q),
		Snapshot:      d.Snapshot,
		Alternatives:  alts,
		RawResponse:   d.Quote.RawResponse,
	}
}

type CustomerProfileResponse struct {
	ID            string                        `json:"id"`
	Name          string                        `json:"name,omitempty"`
	DNI           string                        `json:"dni,omitempty"`
	Email         string                        `json:"email,omitempty"`
	Phone         string                        `json:"phone,omitempty"`
	IsAnonymous   bool                          `json:"is_anonymous"`
	CompletedAt   *time.Time                    `json:"completed_at,omitempty"`
	CreatedAt     time.Time                     `json:"created_at"`
	Vehicles      []VehicleResponse             `json:"vehicles"`
	Conversations []ConversationSummaryResponse `json:"conversations"`
}

func FromCustomerProfile(p usecase.CustomerProfile) CustomerProfileResponse {
	c := p.Customer
	return CustomerProfileResponse{
		ID:            c.ID,
		Name:          c.Name,
		DNI:           c.DNI,
		Email:         c.Email,
		Phone:         c.Phone,
		IsAnonymous:   c.IsAnonymous,
		CompletedAt:   c.CompletedAt,
		CreatedAt:     c.CreatedAt,
		Vehicles:      FromVehicles(p.Vehicles),
		Conversations: FromConversationSummaries(p.Conversations),
	}
}
