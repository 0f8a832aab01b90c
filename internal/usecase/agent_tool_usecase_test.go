package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cotizador_seguros/internal/domain/entities"
	mock_interfaces "cotizador_seguros/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type agentToolMocks struct {
	customers  *mock_interfaces.MockICustomerRepository
	vehicles   *mock_interfaces.MockIVehicleRepository
	convs      *mock_interfaces.MockIConversationRepository
	quotes     *mock_interfaces.MockIQuoteRepository
	dispatcher *mock_interfaces.MockIQuoteDispatcher
}

func newAgentToolUseCaseForTest(ctrl *gomock.Controller) (*AgentToolUseCase, agentToolMocks) {
	m := agentToolMocks{
		customers:  mock_interfaces.NewMockICustomerRepository(ctrl),
		vehicles:   mock_interfaces.NewMockIVehicleRepository(ctrl),
		convs:      mock_interfaces.NewMockIConversationRepository(ctrl),
		quotes:     mock_interfaces.NewMockIQuoteRepository(ctrl),
		dispatcher: mock_interfaces.NewMockIQuoteDispatcher(ctrl),
	}
	uc := NewAgentToolUseCase(
		NewConversationRegistry(m.convs, nil),
		NewCustomerResolver(m.customers, m.vehicles, nil),
		NewVehicleResolver(m.vehicles, nil),
		NewQuoteUseCase(m.quotes, m.convs, m.dispatcher, nil, nil),
		nil,
	)
	return uc, m
}

func echoConversation(_ context.Context, c entities.Conversation) (entities.Conversation, error) {
	return c, nil
}

func TestAgentToolUseCase_IdentifyCustomer(t *testing.T) {
	t.Run("invalid identifier type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newAgentToolUseCaseForTest(ctrl)

		_, err := uc.IdentifyCustomer(context.Background(), IdentifyCustomerCommand{
			ExternalConversationID: "ext-1", IdentifierType: "cuit", IdentifierValue: "1",
		})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "identifier_type" {
			t.Fatalf("expected identifier_type validation error, got %v", err)
		}
	})

	t.Run("invalid dni", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newAgentToolUseCaseForTest(ctrl)

		_, err := uc.IdentifyCustomer(context.Background(), IdentifyCustomerCommand{
			ExternalConversationID: "ext-1", IdentifierType: "dni", IdentifierValue: "12",
		})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Reason != "DNI inválido" {
			t.Fatalf("expected DNI validation error, got %v", err)
		}
	})

	t.Run("new customer by dni links the conversation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAgentToolUseCaseForTest(ctrl)

		var createdID string
		m.convs.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Conversation) (entities.Conversation, error) {
				if c.ExternalID != "ext-1" || c.Status != entities.ConversationStatusAnonymous {
					t.Fatalf("unexpected conversation: %+v", c)
				}
				c.ID = "conv-1"
				return c, nil
			},
		)
		m.customers.EXPECT().FindByIdentifier(gomock.Any(), entities.Identifier{Kind: entities.IdentifierDNI, Value: "12345678"}).Return(entities.Customer{}, nil)
		m.customers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) {
				createdID = c.ID
				return c, nil
			},
		)
		m.convs.EXPECT().LinkCustomer(gomock.Any(), "conv-1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id, customerID string, _ time.Time) (entities.Conversation, error) {
				if customerID != createdID {
					t.Fatalf("expected link to %s, got %s", createdID, customerID)
				}
				return entities.Conversation{ID: id, ExternalID: "ext-1", CustomerID: customerID, Status: entities.ConversationStatusIdentified}, nil
			},
		)
		m.convs.EXPECT().TouchActivity(gomock.Any(), "conv-1", gomock.Any()).Return(nil)
		m.convs.EXPECT().ListByCustomer(gomock.Any(), gomock.Any(), "conv-1", previousConversationsLimit).Return(nil, nil)
		m.vehicles.EXPECT().ListByCustomer(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := uc.IdentifyCustomer(context.Background(), IdentifyCustomerCommand{
			ExternalConversationID: "ext-1", IdentifierType: "dni", IdentifierValue: "12.345.678",
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.IsNew || res.Customer.DNI != "12345678" || res.Message != "¡Bienvenido! Eres un cliente nuevo" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.ToolOutput != "Cliente identificado correctamente" {
			t.Fatalf("unexpected tool output: %q", res.ToolOutput)
		}
	})

	t.Run("plate attaches the vehicle to the conversation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAgentToolUseCaseForTest(ctrl)

		m.convs.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(entities.Conversation{ID: "conv-1", ExternalID: "ext-1"}, nil)
		m.vehicles.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(entities.Vehicle{}, nil).Times(2)
		m.customers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		)
		m.vehicles.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, v entities.Vehicle) (entities.Vehicle, error) { return v, nil },
		)
		m.convs.EXPECT().AttachVehicle(gomock.Any(), "conv-1", gomock.Any(), true).Return(nil)
		m.convs.EXPECT().LinkCustomer(gomock.Any(), "conv-1", gomock.Any(), gomock.Any()).Return(entities.Conversation{ID: "conv-1"}, nil)
		m.convs.EXPECT().TouchActivity(gomock.Any(), "conv-1", gomock.Any()).Return(nil)
		m.convs.EXPECT().ListByCustomer(gomock.Any(), gomock.Any(), "conv-1", gomock.Any()).Return(nil, nil)
		m.vehicles.EXPECT().ListByCustomer(gomock.Any(), gomock.Any()).Return([]entities.Vehicle{{Plate: "AB123CD"}}, nil)

		res, err := uc.IdentifyCustomer(context.Background(), IdentifyCustomerCommand{
			ExternalConversationID: "ext-1", IdentifierType: "patente", IdentifierValue: "ab 123 cd",
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.Customer.IsAnonymous || len(res.Vehicles) != 1 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestAgentToolUseCase_IdentifyVehicle(t *testing.T) {
	cmd := IdentifyVehicleCommand{ExternalConversationID: "ext-1", Vehicle: validVehicleInput()}

	t.Run("validation error writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newAgentToolUseCaseForTest(ctrl)

		bad := cmd
		bad.Vehicle.Year = 1800
		var verr *ValidationError
		if _, err := uc.IdentifyVehicle(context.Background(), bad); !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("missing customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAgentToolUseCaseForTest(ctrl)

		m.convs.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(echoConversation)

		if _, err := uc.IdentifyVehicle(context.Background(), cmd); !errors.Is(err, ErrMissingCustomer) {
			t.Fatalf("expected ErrMissingCustomer, got %v", err)
		}
	})

	t.Run("complete new vehicle starts a quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAgentToolUseCaseForTest(ctrl)

		conv := entities.Conversation{ID: "conv-1", ExternalID: "ext-1", CustomerID: "c-1"}
		m.convs.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(conv, nil)
		m.customers.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Customer{ID: "c-1"}, nil)
		m.vehicles.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(entities.Vehicle{}, nil)
		m.vehicles.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, v entities.Vehicle) (entities.Vehicle, error) { return v, nil },
		)
		m.convs.EXPECT().AttachVehicle(gomock.Any(), "conv-1", gomock.Any(), true).Return(nil)
		m.convs.EXPECT().TouchActivity(gomock.Any(), "conv-1", gomock.Any()).Return(nil)
		m.quotes.EXPECT().CreatePending(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.RiskSnapshot, q entities.Quote) (entities.Quote, error) {
				if s.CustomerID != "c-1" || s.Plate != "AB123CD" {
					t.Fatalf("unexpected snapshot: %+v", s)
				}
				return q, nil
			},
		)
		m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.IdentifyVehicle(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.IsNew || res.Quote == nil || res.NextStep != NextStepCoverageSelection {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.ToolOutput != "Vehículo registrado correctamente." {
			t.Fatalf("unexpected tool output: %q", res.ToolOutput)
		}
	})

	t.Run("plate-only vehicle is completed and quoted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAgentToolUseCaseForTest(ctrl)

		stored := entities.Vehicle{ID: "v-1", CustomerID: "c-1", Plate: "AB123CD", Usage: entities.UsageParticular}

		m.convs.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(entities.Conversation{ID: "conv-1", ExternalID: "ext-1", CustomerID: "c-1"}, nil)
		m.customers.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Customer{ID: "c-1"}, nil)
		m.vehicles.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(stored, nil)
		m.vehicles.EXPECT().Revise(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, rev entities.VehicleRevision) (entities.Vehicle, error) {
				return rev.Apply(stored), nil
			},
		)
		m.convs.EXPECT().AttachVehicle(gomock.Any(), "conv-1", "v-1", true).Return(nil)
		m.convs.EXPECT().TouchActivity(gomock.Any(), "conv-1", gomock.Any()).Return(nil)
		m.quotes.EXPECT().CreatePending(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.RiskSnapshot, q entities.Quote) (entities.Quote, error) {
				if s.Make != "Toyota" || s.Model != "Corolla" || s.Year != 2020 || s.PostalCode != "1425" {
					t.Fatalf("snapshot missing chassis facts: %+v", s)
				}
				return q, nil
			},
		)
		m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.IdentifyVehicle(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.IsNew || res.Quote == nil || res.NextStep != NextStepCoverageSelection {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("existing vehicle of another customer is transferred", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAgentToolUseCaseForTest(ctrl)

		in := cmd
		in.Vehicle.PostalCode = ""
		stored := entities.Vehicle{ID: "v-1", CustomerID: "c-old", Plate: "AB123CD", Make: "Ford", Model: "Ka", Version: "S", Year: 2015, Fuel: entities.FuelNafta}

		m.convs.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(entities.Conversation{ID: "conv-1", CustomerID: "c-1"}, nil)
		m.customers.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Customer{ID: "c-1"}, nil)
		m.vehicles.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(stored, nil)
		m.vehicles.EXPECT().Revise(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, rev entities.VehicleRevision) (entities.Vehicle, error) {
				return rev.Apply(stored), nil
			},
		)
		m.convs.EXPECT().AttachVehicle(gomock.Any(), "conv-1", "v-1", true).Return(nil)
		m.convs.EXPECT().TouchActivity(gomock.Any(), "conv-1", gomock.Any()).Return(nil)

		res, err := uc.IdentifyVehicle(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.IsNew || !res.OwnershipTransferred || res.Vehicle.CustomerID != "c-1" || res.Vehicle.Make != "Ford" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Quote != nil || res.NextStep != NextStepCompleteVehicle {
			t.Fatalf("incomplete vehicle must not be quoted: %+v", res)
		}
	})
}
