package usecase

import (
	"context"

	"cotizador_seguros/internal/domain/entities"
)

// CustomerProfile is the back-office view of a customer.
type CustomerProfile struct {
	Customer      entities.Customer
	Vehicles      []entities.Vehicle
	Conversations []entities.ConversationSummary
}

type ICustomerUseCase interface {
	GetProfile(ctx context.Context, id string) (CustomerProfile, error)
}

type CustomerUseCase struct {
	customers     *CustomerResolver
	vehicles      *VehicleResolver
	conversations *ConversationRegistry
}

var _ ICustomerUseCase = (*CustomerUseCase)(nil)

func NewCustomerUseCase(customers *CustomerResolver, vehicles *VehicleResolver, conversations *ConversationRegistry) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, vehicles: vehicles, conversations: conversations}
}

func (u *CustomerUseCase) GetProfile(ctx context.Context, id string) (CustomerProfile, error) {
	c, err := u.customers.Get(ctx, id)
	if err != nil {
		return CustomerProfile{}, err
	}
	vehicles, err := u.vehicles.ListByCustomer(ctx, c.ID)
	if err != nil {
		return CustomerProfile{}, err
	}
	convs, err := u.conversations.PreviousConversations(ctx, c.ID, "")
	if err != nil {
		return CustomerProfile{}, err
	}
	return CustomerProfile{Customer: c, Vehicles: vehicles, Conversations: convs}, nil
}
