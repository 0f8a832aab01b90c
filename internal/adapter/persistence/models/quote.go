package models

import (
	"encoding/json"
	"time"

	"cotizador_seguros/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// RiskSnapshotModel is the GORM model for risk_snapshots. Rows are insert-only.
// customer_id and vehicle_id carry no foreign key.
type RiskSnapshotModel struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	CustomerID *string   `gorm:"column:customer_id;type:varchar(36);index"`
	VehicleID  *string   `gorm:"column:vehicle_id;type:varchar(36);index"`
	Plate      string    `gorm:"column:patente;type:varchar(10)"`
	Make       string    `gorm:"column:marca;type:varchar(100)"`
	Model      string    `gorm:"column:modelo;type:varchar(100)"`
	Version    string    `gorm:"type:varchar(100)"`
	Year       int       `gorm:"column:year"`
	Fuel       string    `gorm:"column:combustible;type:varchar(20)"`
	Usage      string    `gorm:"column:uso;type:varchar(20)"`
	PostalCode string    `gorm:"column:codigo_postal;type:varchar(10)"`
	DNI        string    `gorm:"column:dni;type:varchar(20)"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (RiskSnapshotModel) TableName() string {
	return "risk_snapshots"
}

func (m *RiskSnapshotModel) ToDomain() entities.RiskSnapshot {
	return entities.RiskSnapshot{
		ID:         m.ID,
		CustomerID: derefString(m.CustomerID),
		VehicleID:  derefString(m.VehicleID),
		Plate:      m.Plate,
		Make:       m.Make,
		Model:      m.Model,
		Version:    m.Version,
		Year:       m.Year,
		Fuel:       entities.Fuel(m.Fuel),
		Usage:      entities.VehicleUsage(m.Usage),
		PostalCode: m.PostalCode,
		DNI:        m.DNI,
		CreatedAt:  m.CreatedAt,
	}
}

func RiskSnapshotModelFromDomain(s entities.RiskSnapshot) *RiskSnapshotModel {
	return &RiskSnapshotModel{
		ID:         s.ID,
		CustomerID: NullableString(s.CustomerID),
		VehicleID:  NullableString(s.VehicleID),
		Plate:      s.Plate,
		Make:       s.Make,
		Model:      s.Model,
		Version:    s.Version,
		Year:       s.Year,
		Fuel:       string(s.Fuel),
		Usage:      string(s.Usage),
		PostalCode: s.PostalCode,
		DNI:        s.DNI,
		CreatedAt:  s.CreatedAt,
	}
}

// QuoteModel is the GORM model for the quotes table.
type QuoteModel struct {
	ID             string     `gorm:"type:varchar(36);primaryKey"`
	RiskSnapshotID string     `gorm:"column:risk_snapshot_id;type:varchar(36);not null;index"`
	ConversationID *string    `gorm:"column:conversation_id;type:varchar(36);index:idx_quotes_conversation_status"`
	Status         string     `gorm:"type:varchar(20);not null;index:idx_quotes_conversation_status"`
	ExternalRefID  string     `gorm:"column:external_ref_id;type:varchar(100)"`
	RawResponse    string     `gorm:"column:raw_response;type:text"`
	Metadata       string     `gorm:"type:text"`
	ExpiresAt      *time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time  `gorm:"not null;index"`
	UpdatedAt      time.Time  `gorm:"not null"`

	RiskSnapshot RiskSnapshotModel       `gorm:"foreignKey:RiskSnapshotID;constraint:OnDelete:RESTRICT"`
	Alternatives []QuoteAlternativeModel `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

func (QuoteModel) TableName() string {
	return "quotes"
}

func (m *QuoteModel) ToDomain() entities.Quote {
	q := entities.Quote{
		ID:             m.ID,
		RiskSnapshotID: m.RiskSnapshotID,
		ConversationID: derefString(m.ConversationID),
		Status:         entities.QuoteStatus(m.Status),
		ExternalRefID:  m.ExternalRefID,
		ExpiresAt:      m.ExpiresAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.RawResponse != "" {
		q.RawResponse = json.RawMessage(m.RawResponse)
	}
	if m.Metadata != "" {
		_ = json.Unmarshal([]byte(m.Metadata), &q.Metadata)
	}
	return q
}

func QuoteModelFromDomain(q entities.Quote) *QuoteModel {
	m := &QuoteModel{
		ID:             q.ID,
		RiskSnapshotID: q.RiskSnapshotID,
		ConversationID: NullableString(q.ConversationID),
		Status:         string(q.Status),
		ExternalRefID:  q.ExternalRefID,
		RawResponse:    string(q.RawResponse),
		ExpiresAt:      q.ExpiresAt,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
	if len(q.Metadata) > 0 {
		m.Metadata = EncodeMetadata(q.Metadata)
	}
	return m
}

// EncodeMetadata serializes quote metadata for the text column.
func EncodeMetadata(meta map[string]any) string {
	raw, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(raw)
}

// QuoteAlternativeModel is the GORM model for quote_alternatives.
type QuoteAlternativeModel struct {
	ID              string          `gorm:"type:varchar(36);primaryKey"`
	QuoteID         string          `gorm:"column:quote_id;type:varchar(36);not null;index"`
	ExternalCode    string          `gorm:"column:external_code;type:varchar(50)"`
	ExternalQuoteID string          `gorm:"column:external_quote_id;type:varchar(50)"`
	Insurer         string          `gorm:"column:aseguradora;type:varchar(100)"`
	Description     string          `gorm:"column:descripcion;type:text"`
	PlanCode        string          `gorm:"column:titulo;type:varchar(50)"`
	Grade           string          `gorm:"column:normalized_grade;type:varchar(30)"`
	Price           decimal.Decimal `gorm:"column:precio;type:decimal(14,2);not null"`
	Currency        string          `gorm:"column:moneda;type:varchar(3)"`
	MarketingTitle  string          `gorm:"column:marketing_title;type:varchar(200)"`
	SumInsuredText  string          `gorm:"column:sum_insured_text;type:varchar(100)"`
	FeatureTags     string          `gorm:"column:features_tags;type:text"`
	FullDetails     string          `gorm:"column:full_details;type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
}

func (QuoteAlternativeModel) TableName() string {
	return "quote_alternatives"
}

func (m *QuoteAlternativeModel) ToDomain() entities.QuoteAlternative {
	a := entities.QuoteAlternative{
		ID:              m.ID,
		QuoteID:         m.QuoteID,
		ExternalCode:    m.ExternalCode,
		ExternalQuoteID: m.ExternalQuoteID,
		Insurer:         m.Insurer,
		Description:     m.Description,
		PlanCode:        m.PlanCode,
		Grade:           entities.CoverageGrade(m.Grade),
		Price:           m.Price,
		Currency:        m.Currency,
		MarketingTitle:  m.MarketingTitle,
		SumInsuredText:  m.SumInsuredText,
		CreatedAt:       m.CreatedAt,
	}
	if m.FeatureTags != "" {
		_ = json.Unmarshal([]byte(m.FeatureTags), &a.FeatureTags)
	}
	if m.FullDetails != "" {
		_ = json.Unmarshal([]byte(m.FullDetails), &a.FullDetails)
	}
	return a
}

func QuoteAlternativeModelFromDomain(a entities.QuoteAlternative) QuoteAlternativeModel {
	m := QuoteAlternativeModel{
		ID:              a.ID,
		QuoteID:         a.QuoteID,
		ExternalCode:    a.ExternalCode,
		ExternalQuoteID: a.ExternalQuoteID,
		Insurer:         a.Insurer,
		Description:     a.Description,
		PlanCode:        a.PlanCode,
		Grade:           string(a.Grade),
		Price:           a.Price,
		Currency:        a.Currency,
		MarketingTitle:  a.MarketingTitle,
		SumInsuredText:  a.SumInsuredText,
		CreatedAt:       a.CreatedAt,
	}
	if len(a.FeatureTags) > 0 {
		raw, _ := json.Marshal(a.FeatureTags)
		m.FeatureTags = string(raw)
	}
	if len(a.FullDetails) > 0 {
		raw, _ := json.Marshal(a.FullDetails)
		m.FullDetails = string(raw)
	}
	return m
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&CustomerModel{},
		&VehicleModel{},
		&ConversationModel{},
		&ConversationVehicleModel{},
		&RiskSnapshotModel{},
		&QuoteModel{},
		&QuoteAlternativeModel{},
	}
}
