package usecase

import (
	"context"
	"fmt"
	"time"

	"cotizador_seguros/internal/domain/entities"

	"go.uber.org/zap"
)

const (
	NextStepCoverageSelection = "coverage_selection"
	NextStepCompleteVehicle   = "complete_vehicle_data"

	identifyCustomerOutput = "Cliente identificado correctamente"
	identifyVehicleOutput  = "Vehículo registrado correctamente."
)

type IdentifyCustomerCommand struct {
	ExternalConversationID string
	ExternalUserID         string
	IdentifierType         string
	IdentifierValue        string
}

type IdentifyCustomerResult struct {
	Customer              entities.Customer
	ConversationID        string
	IsNew                 bool
	WasAnonymous          bool
	Message               string
	ToolOutput            string
	PreviousConversations []entities.ConversationSummary
	Vehicles              []entities.Vehicle
}

type IdentifyVehicleCommand struct {
	ExternalConversationID string
	ExternalUserID         string
	Vehicle                VehicleInput
}

type IdentifyVehicleResult struct {
	Vehicle              entities.Vehicle
	CustomerID           string
	IsNew                bool
	OwnershipTransferred bool
	Quote                *entities.Quote
	NextStep             string
	ToolOutput           string
}

// IAgentToolUseCase serves the tools the conversational agent calls.
type IAgentToolUseCase interface {
	IdentifyCustomer(ctx context.Context, cmd IdentifyCustomerCommand) (IdentifyCustomerResult, error)
	IdentifyVehicle(ctx context.Context, cmd IdentifyVehicleCommand) (IdentifyVehicleResult, error)
}

// AgentToolUseCase orchestrates identity resolution for agent tool calls and
// triggers the quote pipeline once a complete vehicle is known.
type AgentToolUseCase struct {
	conversations *ConversationRegistry
	customers     *CustomerResolver
	vehicles      *VehicleResolver
	quotes        IQuoteUseCase
	logger        *zap.Logger
	now           func() time.Time
}

var _ IAgentToolUseCase = (*AgentToolUseCase)(nil)

func NewAgentToolUseCase(
	conversations *ConversationRegistry,
	customers *CustomerResolver,
	vehicles *VehicleResolver,
	quotes IQuoteUseCase,
	logger *zap.Logger,
) *AgentToolUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentToolUseCase{
		conversations: conversations,
		customers:     customers,
		vehicles:      vehicles,
		quotes:        quotes,
		logger:        logger.Named("agent.tools"),
		now:           utcNow,
	}
}

func (u *AgentToolUseCase) IdentifyCustomer(ctx context.Context, cmd IdentifyCustomerCommand) (IdentifyCustomerResult, error) {
	kind, err := entities.ParseIdentifierKind(cmd.IdentifierType)
	if err != nil {
		return IdentifyCustomerResult{}, asValidationError(err)
	}
	identifier, err := entities.NewIdentifier(kind, cmd.IdentifierValue)
	if err != nil {
		return IdentifyCustomerResult{}, asValidationError(err)
	}

	conv, err := u.conversations.FindOrCreate(ctx, cmd.ExternalConversationID, cmd.ExternalUserID)
	if err != nil {
		return IdentifyCustomerResult{}, err
	}

	res, err := u.customers.Resolve(ctx, conv, identifier)
	if err != nil {
		return IdentifyCustomerResult{}, err
	}

	if kind == entities.IdentifierPlate {
		vehicle, _, err := u.vehicles.ResolvePlate(ctx, res.Customer, identifier.Value)
		if err != nil {
			return IdentifyCustomerResult{}, err
		}
		if err := u.conversations.AttachVehicle(ctx, conv.ID, vehicle.ID, true); err != nil {
			return IdentifyCustomerResult{}, fmt.Errorf("attach vehicle: %w", err)
		}
	}

	conv, err = u.conversations.LinkCustomer(ctx, conv, res.Customer.ID)
	if err != nil {
		return IdentifyCustomerResult{}, fmt.Errorf("link customer: %w", err)
	}
	if err := u.conversations.TouchActivity(ctx, conv.ID); err != nil {
		return IdentifyCustomerResult{}, err
	}

	previous, err := u.conversations.PreviousConversations(ctx, res.Customer.ID, conv.ID)
	if err != nil {
		return IdentifyCustomerResult{}, err
	}
	vehicles, err := u.vehicles.ListByCustomer(ctx, res.Customer.ID)
	if err != nil {
		return IdentifyCustomerResult{}, err
	}

	u.logger.Info("customer identified",
		zap.String("external_conversation_id", conv.ExternalID),
		zap.String("customer_id", res.Customer.ID),
		zap.Bool("is_new", res.IsNew),
		zap.Bool("was_anonymous", res.WasAnonymous),
	)

	return IdentifyCustomerResult{
		Customer:              res.Customer,
		ConversationID:        conv.ID,
		IsNew:                 res.IsNew,
		WasAnonymous:          res.WasAnonymous,
		Message:               res.Message(),
		ToolOutput:            identifyCustomerOutput,
		PreviousConversations: previous,
		Vehicles:              vehicles,
	}, nil
}

// IdentifyVehicle registers the vehicle for the conversation's customer. The
// conversation must already have a customer; nothing is written otherwise.
func (u *AgentToolUseCase) IdentifyVehicle(ctx context.Context, cmd IdentifyVehicleCommand) (IdentifyVehicleResult, error) {
	input, err := cmd.Vehicle.Normalize(u.now())
	if err != nil {
		return IdentifyVehicleResult{}, err
	}

	conv, err := u.conversations.FindOrCreate(ctx, cmd.ExternalConversationID, cmd.ExternalUserID)
	if err != nil {
		return IdentifyVehicleResult{}, err
	}
	if !conv.HasCustomer() {
		return IdentifyVehicleResult{}, ErrMissingCustomer
	}

	customer, err := u.customers.Get(ctx, conv.CustomerID)
	if err != nil {
		return IdentifyVehicleResult{}, fmt.Errorf("load conversation customer: %w", err)
	}

	vehicle, created, err := u.vehicles.Resolve(ctx, customer, input)
	if err != nil {
		return IdentifyVehicleResult{}, err
	}

	transferred := false
	if !created {
		transferred = vehicle.CustomerID != "" && vehicle.CustomerID != customer.ID
		vehicle, err = u.vehicles.Update(ctx, vehicle, customer, input)
		if err != nil {
			return IdentifyVehicleResult{}, err
		}
	}

	if err := u.conversations.AttachVehicle(ctx, conv.ID, vehicle.ID, true); err != nil {
		return IdentifyVehicleResult{}, fmt.Errorf("attach vehicle: %w", err)
	}
	if err := u.conversations.TouchActivity(ctx, conv.ID); err != nil {
		return IdentifyVehicleResult{}, err
	}

	result := IdentifyVehicleResult{
		Vehicle:              vehicle,
		CustomerID:           customer.ID,
		IsNew:                created,
		OwnershipTransferred: transferred,
		NextStep:             NextStepCompleteVehicle,
		ToolOutput:           identifyVehicleOutput,
	}

	if vehicle.IsComplete() {
		q, err := u.quotes.CreatePendingQuote(ctx, conv, customer, vehicle)
		if err != nil {
			return IdentifyVehicleResult{}, err
		}
		result.Quote = &q
		result.NextStep = NextStepCoverageSelection
	}

	u.logger.Info("vehicle identified",
		zap.String("external_conversation_id", conv.ExternalID),
		zap.String("vehicle_id", vehicle.ID),
		zap.Bool("is_new", created),
		zap.Bool("is_complete", vehicle.IsComplete()),
		zap.Bool("ownership_transferred", transferred),
	)
	return result, nil
}
