package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle of a pricing request.
//
// pending -> processed | failed. expired is never stored: it is derived at
// read time from a processed quote's ExpiresAt.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusProcessed QuoteStatus = "processed"
	QuoteStatusFailed    QuoteStatus = "failed"
	QuoteStatusExpired   QuoteStatus = "expired"
)

const (
	QuoteMetadataError    = "error"
	QuoteMetadataAttempts = "attempts"
	QuoteMetadataFailedAt = "failed_at"
)

// Quote is the header of one pricing request.
//
// Storage model:
//   - gorm: table quotes, FK risk_snapshot_id, index(conversation_id, status)
//   - DynamoDB: PK id; GSI conversation_id-index
type Quote struct {
	ID             string          `json:"id"`
	RiskSnapshotID string          `json:"risk_snapshot_id"`
	ConversationID string          `json:"conversation_id,omitempty"`
	Status         QuoteStatus     `json:"status"`
	ExternalRefID  string          `json:"external_ref_id,omitempty"`
	RawResponse    json.RawMessage `json:"raw_response,omitempty"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsExpired is advisory: a processed quote past its expiry is still stored
// as processed.
func (q Quote) IsExpired(now time.Time) bool {
	return q.Status == QuoteStatusProcessed && q.ExpiresAt != nil && now.After(*q.ExpiresAt)
}

func (q Quote) EffectiveStatus(now time.Time) QuoteStatus {
	if q.IsExpired(now) {
		return QuoteStatusExpired
	}
	return q.Status
}

// FailureReason returns the error recorded when the quote was marked failed.
func (q Quote) FailureReason() string {
	if q.Metadata == nil {
		return ""
	}
	msg, _ := q.Metadata[QuoteMetadataError].(string)
	return msg
}

// CoverageGrade normalizes plan names across insurers.
type CoverageGrade string

const (
	GradeLiability          CoverageGrade = "liability"
	GradeBasic              CoverageGrade = "basic"
	GradeThirdPartyComplete CoverageGrade = "third_party_complete"
	GradeAllRisk            CoverageGrade = "all_risk"
)

// QuoteAlternative is one priced coverage option of a processed quote.
// The whole set is replaced every time the quote is (re)computed.
type QuoteAlternative struct {
	ID              string            `json:"id"`
	QuoteID         string            `json:"quote_id"`
	ExternalCode    string            `json:"external_code"`
	ExternalQuoteID string            `json:"external_quote_id"`
	Insurer         string            `json:"aseguradora"`
	Description     string            `json:"descripcion"`
	PlanCode        string            `json:"titulo"`
	Grade           CoverageGrade     `json:"normalized_grade"`
	Price           decimal.Decimal   `json:"precio"`
	Currency        string            `json:"moneda"`
	MarketingTitle  string            `json:"marketing_title"`
	SumInsuredText  string            `json:"sum_insured_text"`
	FeatureTags     []string          `json:"features_tags"`
	FullDetails     map[string]string `json:"full_details"`
	CreatedAt       time.Time         `json:"created_at"`
}

// SimulationResult is what the market simulator returns for one snapshot.
type SimulationResult struct {
	TaskID       string             `json:"task_id"`
	Status       string             `json:"status"`
	Raw          json.RawMessage    `json:"raw"`
	Alternatives []QuoteAlternative `json:"parsed_alternatives"`
}
