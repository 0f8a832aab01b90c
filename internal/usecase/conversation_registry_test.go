package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cotizador_seguros/internal/domain/entities"
	mock_interfaces "cotizador_seguros/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConversationRegistry_FindOrCreate(t *testing.T) {
	t.Run("blank external id", func(t *testing.T) {
		r := NewConversationRegistry(nil, nil)
		var verr *ValidationError
		if _, err := r.FindOrCreate(context.Background(), "  ", "u"); !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("trims ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIConversationRepository(ctrl)
		r := NewConversationRegistry(repo, nil)

		repo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(echoConversation)

		c, err := r.FindOrCreate(context.Background(), " ext-1 ", " user-1 ")
		if err != nil || c.ExternalID != "ext-1" || c.ExternalUserID != "user-1" || c.ID == "" {
			t.Fatalf("unexpected conversation: %+v err=%v", c, err)
		}
	})
}

func TestConversationRegistry_LinkCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIConversationRepository(ctrl)
	r := NewConversationRegistry(repo, nil)

	conv := entities.Conversation{ID: "conv-1", CustomerID: "c-old"}
	repo.EXPECT().LinkCustomer(gomock.Any(), "conv-1", "c-new", gomock.Any()).
		Return(entities.Conversation{ID: "conv-1", CustomerID: "c-new", Status: entities.ConversationStatusIdentified}, nil)

	linked, err := r.LinkCustomer(context.Background(), conv, "c-new")
	if err != nil || linked.CustomerID != "c-new" {
		t.Fatalf("unexpected result: %+v err=%v", linked, err)
	}

	repo.EXPECT().LinkCustomer(gomock.Any(), "conv-2", "c-new", gomock.Any()).Return(entities.Conversation{}, nil)
	if _, err := r.LinkCustomer(context.Background(), entities.Conversation{ID: "conv-2"}, "c-new"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestConversationRegistry_LinkCustomerWarnsOnOwnershipChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIConversationRepository(ctrl)
	core, logs := observer.New(zap.InfoLevel)
	r := NewConversationRegistry(repo, zap.New(core))

	repo.EXPECT().LinkCustomer(gomock.Any(), "conv-1", "c-new", gomock.Any()).
		Return(entities.Conversation{ID: "conv-1", CustomerID: "c-new"}, nil)
	if _, err := r.LinkCustomer(context.Background(), entities.Conversation{ID: "conv-1", CustomerID: "c-old"}, "c-new"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	entries := logs.FilterMessage("conversation ownership changed").All()
	if len(entries) != 1 || entries[0].Level != zap.WarnLevel {
		t.Fatalf("expected one warning, got %+v", entries)
	}

	repo.EXPECT().LinkCustomer(gomock.Any(), "conv-2", "c-new", gomock.Any()).
		Return(entities.Conversation{ID: "conv-2", CustomerID: "c-new"}, nil)
	if _, err := r.LinkCustomer(context.Background(), entities.Conversation{ID: "conv-2"}, "c-new"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := logs.FilterMessage("conversation ownership changed").Len(); n != 1 {
		t.Fatalf("first link must not warn, got %d warnings", n)
	}
}

func TestConversationRegistry_PreviousConversations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIConversationRepository(ctrl)
	r := NewConversationRegistry(repo, nil)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	active := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().ListByCustomer(gomock.Any(), "c-1", "conv-now", 5).Return([]entities.Conversation{
		{ID: "conv-a", ExternalID: "ext-a", Status: entities.ConversationStatusIdentified, LastActivityAt: &active, CreatedAt: created},
		{ID: "conv-b", ExternalID: "ext-b", Status: entities.ConversationStatusCompleted, CreatedAt: created},
	}, nil)
	repo.EXPECT().CountVehicles(gomock.Any(), "conv-a").Return(2, nil)
	repo.EXPECT().CountVehicles(gomock.Any(), "conv-b").Return(0, nil)

	out, err := r.PreviousConversations(context.Background(), "c-1", "conv-now")
	if err != nil || len(out) != 2 {
		t.Fatalf("unexpected result: %+v err=%v", out, err)
	}
	if out[0].ExternalID != "ext-a" || !out[0].Date.Equal(active) || out[0].VehicleCount != 2 {
		t.Fatalf("unexpected first summary: %+v", out[0])
	}
	if !out[1].Date.Equal(created) {
		t.Fatalf("expected creation date fallback, got %v", out[1].Date)
	}
}
