package response

import (
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase"
)

const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeMissingCustomer = "missing_customer"
	ErrorCodeToolNotFound    = "tool_not_found"
	ErrorCodeServer          = "server_error"
)

// ToolErrorResponse is the failure envelope every tool returns.
type ToolErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

func NewToolError(code, message string) ToolErrorResponse {
	return ToolErrorResponse{Success: false, Error: message, ErrorCode: code}
}

type VehicleResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Plate      string    `json:"patente"`
	Make       string    `json:"marca"`
	Model      string    `json:"modelo"`
	Version    string    `json:"version"`
	Year       int       `json:"year"`
	Fuel       string    `json:"combustible"`
	Usage      string    `json:"uso"`
	PostalCode string    `json:"codigo_postal"`
	IsComplete bool      `json:"is_complete"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromVehicle(v entities.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:         v.ID,
		CustomerID: v.CustomerID,
		Plate:      v.Plate,
		Make:       v.Make,
		Model:      v.Model,
		Version:    v.Version,
		Year:       v.Year,
		Fuel:       string(v.Fuel),
		Usage:      string(v.Usage),
		PostalCode: v.PostalCode,
		IsComplete: v.IsComplete(),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func FromVehicles(vs []entities.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromVehicle(v))
	}
	return out
}

type ConversationSummaryResponse struct {
	ThreadID     string    `json:"thread_id"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	VehicleCount int       `json:"vehicle_count"`
}

func FromConversationSummaries(cs []entities.ConversationSummary) []ConversationSummaryResponse {
	out := make([]ConversationSummaryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ConversationSummaryResponse{
			ThreadID:     c.ExternalID,
			Date:         c.Date,
			Status:       string(c.Status),
			VehicleCount: c.VehicleCount,
		})
	}
	return out
}

type IdentifyCustomerResponse struct {
	Success               bool                          `json:"success"`
	ToolOutput            string                        `json:"tool_output"`
	Message               string                        `json:"message"`
	CustomerID            string                        `json:"customer_id"`
	ConversationID        string                        `json:"conversation_id"`
	Name                  string                        `json:"name,omitempty"`
	Email                 string                        `json:"email,omitempty"`
	Phone                 string                        `json:"phone,omitempty"`
	DNI                   string                        `json:"dni,omitempty"`
	IsNew                 bool                          `json:"is_new"`
	IsAnonymous           bool                          `json:"is_anonymous"`
	WasAnonymous          bool                          `json:"was_anonymous"`
	PreviousConversations []ConversationSummaryResponse `json:"previous_conversations"`
	Vehicles              []VehicleResponse             `json:"vehicles"`
}

func FromIdentifyCustomer(r usecase.IdentifyCustomerResult) IdentifyCustomerResponse {
	return IdentifyCustomerResponse{
		Success:               true,
		ToolOutput:            r.ToolOutput,
		Message:               r.Message,
		CustomerID:            r.Customer.ID,
		ConversationID:        r.ConversationID,
		Name:                  r.Customer.Name,
		Email:                 r.Customer.Email,
		Phone:                 r.Customer.Phone,
		DNI:                   r.Customer.DNI,
		IsNew:                 r.IsNew,
		IsAnonymous:           r.Customer.IsAnonymous,
		WasAnonymous:          r.WasAnonymous,
		PreviousConversations: FromConversationSummaries(r.PreviousConversations),
		Vehicles:              FromVehicles(r.Vehicles),
	}
}

type IdentifyVehicleResponse struct {
	Success              bool            `json:"success"`
	ToolOutput           string          `json:"tool_output"`
	Vehicle              VehicleResponse `json:"vehicle"`
	CustomerID           string          `json:"customer_id"`
	IsNew                bool            `json:"is_new"`
	IsComplete           bool            `json:"is_complete"`
	OwnershipTransferred bool            `json:"ownership_transferred"`
	QuoteID              string          `json:"quote_id,omitempty"`
	QuoteStatus          string          `json:"quote_status,omitempty"`
	NextStep             string          `json:"next_step"`
}

func FromIdentifyVehicle(r usecase.IdentifyVehicleResult) IdentifyVehicleResponse {
	res := IdentifyVehicleResponse{
		Success:              true,
		ToolOutput:           r.ToolOutput,
		Vehicle:              FromVehicle(r.Vehicle),
		CustomerID:           r.CustomerID,
		IsNew:                r.IsNew,
		IsComplete:           r.Vehicle.IsComplete(),
		OwnershipTransferred: r.OwnershipTransferred,
		NextStep:             r.NextStep,
	}
	if r.Quote != nil {
		res.QuoteID = r.Quote.ID
		res.QuoteStatus = string(r.Quote.Status)
	}
	return res
}
