package entities

import "encoding/json"

const (
	QuoteReadyEventName  = "quote.processed"
	QuoteReadyType       = "QUOTE_READY"
	QuotesReceivedEvent  = "QUOTES_RECEIVED"
	QuoteEventSourceName = "backend"
)

// QuoteReadyEvent is broadcast on the owning conversation's channel once a
// quote's alternatives are persisted.
type QuoteReadyEvent struct {
	Type                string           `json:"type"`
	QuoteID             string           `json:"quote_id"`
	Summary             string           `json:"summary"`
	RequiresAIInjection bool             `json:"requires_ai_injection"`
	AIPayload           QuoteReadyAIData `json:"ai_payload"`
}

type QuoteReadyAIData struct {
	Event  string          `json:"event"`
	Source string          `json:"source"`
	Data   json.RawMessage `json:"data"`
}

// EventEnvelope is what travels on a channel: an event name plus its payload.
type EventEnvelope struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}
