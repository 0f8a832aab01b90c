package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"
	mock_interfaces "cotizador_seguros/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCustomerResolver_Resolve(t *testing.T) {
	dni := entities.Identifier{Kind: entities.IdentifierDNI, Value: "12345678"}
	plate := entities.Identifier{Kind: entities.IdentifierPlate, Value: "AB123CD"}

	t.Run("existing customer is returned unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewCustomerResolver(customers, vehicles, nil)

		existing := entities.Customer{ID: "c-1", DNI: "12345678", Name: "Ana"}
		customers.EXPECT().FindByIdentifier(gomock.Any(), dni).Return(existing, nil)

		res, err := r.Resolve(context.Background(), entities.Conversation{ID: "conv-1"}, dni)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.Customer.ID != "c-1" || res.IsNew || res.WasAnonymous {
			t.Fatalf("unexpected resolution: %+v", res)
		}
		if res.Message() != "Bienvenido de vuelta, Ana!" {
			t.Fatalf("unexpected message: %q", res.Message())
		}
	})

	t.Run("new customer from dni", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(customers, nil, nil)

		customers.EXPECT().FindByIdentifier(gomock.Any(), dni).Return(entities.Customer{}, nil)
		customers.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Customer{})).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) {
				if c.ID == "" || c.DNI != "12345678" || c.IsAnonymous || c.CompletedAt == nil {
					t.Fatalf("unexpected customer: %+v", c)
				}
				return c, nil
			},
		)

		res, err := r.Resolve(context.Background(), entities.Conversation{ID: "conv-1"}, dni)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.IsNew || res.Message() != "¡Bienvenido! Eres un cliente nuevo" {
			t.Fatalf("unexpected resolution: %+v", res)
		}
	})

	t.Run("plate creates anonymous customer with metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewCustomerResolver(customers, vehicles, nil)

		vehicles.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(entities.Vehicle{}, nil)
		customers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) {
				if !c.IsAnonymous || c.HasContactIdentifier() || c.CompletedAt != nil {
					t.Fatalf("expected anonymous customer, got %+v", c)
				}
				if c.Metadata[entities.MetadataInitialIdentifier] != "patente" || c.Metadata[entities.MetadataInitialValue] != "AB123CD" {
					t.Fatalf("unexpected metadata: %+v", c.Metadata)
				}
				return c, nil
			},
		)

		res, err := r.Resolve(context.Background(), entities.Conversation{ID: "conv-1"}, plate)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.IsNew || !res.Customer.IsAnonymous {
			t.Fatalf("unexpected resolution: %+v", res)
		}
	})

	t.Run("plate owned by a customer resolves to the owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewCustomerResolver(customers, vehicles, nil)

		vehicles.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(entities.Vehicle{ID: "v-1", CustomerID: "c-9"}, nil)
		customers.EXPECT().GetByID(gomock.Any(), "c-9").Return(entities.Customer{ID: "c-9", DNI: "30111222"}, nil)

		res, err := r.Resolve(context.Background(), entities.Conversation{ID: "conv-1"}, plate)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.Customer.ID != "c-9" || res.IsNew {
			t.Fatalf("unexpected resolution: %+v", res)
		}
	})

	t.Run("anonymous conversation customer is promoted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(customers, nil, nil)

		conv := entities.Conversation{ID: "conv-1", CustomerID: "anon-1"}
		customers.EXPECT().FindByIdentifier(gomock.Any(), dni).Return(entities.Customer{}, nil)
		customers.EXPECT().GetByID(gomock.Any(), "anon-1").Return(entities.Customer{ID: "anon-1", IsAnonymous: true}, nil)
		customers.EXPECT().CompleteAnonymous(gomock.Any(), "anon-1", dni, gomock.AssignableToTypeOf(time.Time{})).
			Return(entities.Customer{ID: "anon-1", DNI: "12345678"}, nil)

		res, err := r.Resolve(context.Background(), conv, dni)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.WasAnonymous || res.IsNew || res.Customer.ID != "anon-1" {
			t.Fatalf("unexpected resolution: %+v", res)
		}
		if res.Message() != "Perfecto 12345678, ya te he identificado completamente." {
			t.Fatalf("unexpected message: %q", res.Message())
		}
	})

	t.Run("identified conversation customer is not promoted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(customers, nil, nil)

		conv := entities.Conversation{ID: "conv-1", CustomerID: "c-1"}
		customers.EXPECT().FindByIdentifier(gomock.Any(), dni).Return(entities.Customer{}, nil)
		customers.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Customer{ID: "c-1", Email: "a@b.com"}, nil)
		customers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		)

		res, err := r.Resolve(context.Background(), conv, dni)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.IsNew || res.Customer.ID == "c-1" {
			t.Fatalf("expected a fresh customer, got %+v", res)
		}
	})

	t.Run("duplicate key on create converges on the winner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(customers, nil, nil)

		gomock.InOrder(
			customers.EXPECT().FindByIdentifier(gomock.Any(), dni).Return(entities.Customer{}, nil),
			customers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Customer{}, interfaces.ErrDuplicateKey),
			customers.EXPECT().FindByIdentifier(gomock.Any(), dni).Return(entities.Customer{ID: "winner"}, nil),
		)

		res, err := r.Resolve(context.Background(), entities.Conversation{ID: "conv-1"}, dni)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.Customer.ID != "winner" || res.IsNew {
			t.Fatalf("unexpected resolution: %+v", res)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(customers, nil, nil)

		customers.EXPECT().FindByIdentifier(gomock.Any(), dni).Return(entities.Customer{}, errors.New("db"))

		_, err := r.Resolve(context.Background(), entities.Conversation{}, dni)
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestCustomerResolver_Get(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		r := NewCustomerResolver(nil, nil, nil)
		if _, err := r.Get(context.Background(), " "); !errors.Is(err, ErrInvalidCustomerID) {
			t.Fatalf("expected ErrInvalidCustomerID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		r := NewCustomerResolver(customers, nil, nil)

		customers.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Customer{}, nil)
		if _, err := r.Get(context.Background(), "c-1"); !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})
}
