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

func validVehicleInput() VehicleInput {
	return VehicleInput{
		Plate:      "ab 123 cd",
		Make:       "Toyota",
		Model:      "Corolla",
		Version:    "XEI 2.0",
		Year:       2020,
		Fuel:       "Nafta",
		PostalCode: "1425",
	}
}

func TestVehicleInput_Normalize(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("canonicalizes plate fuel and usage", func(t *testing.T) {
		in, err := validVehicleInput().Normalize(now)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if in.Plate != "AB123CD" || in.Fuel != "nafta" || in.Usage != "particular" {
			t.Fatalf("unexpected normalized input: %+v", in)
		}
	})

	cases := []struct {
		name   string
		mutate func(*VehicleInput)
		field  string
	}{
		{"bad plate", func(in *VehicleInput) { in.Plate = "12" }, "patente"},
		{"missing make", func(in *VehicleInput) { in.Make = " " }, "marca"},
		{"missing version", func(in *VehicleInput) { in.Version = "" }, "version"},
		{"year too old", func(in *VehicleInput) { in.Year = 1899 }, "year"},
		{"year too new", func(in *VehicleInput) { in.Year = 2027 }, "year"},
		{"bad fuel", func(in *VehicleInput) { in.Fuel = "vapor" }, "combustible"},
		{"long postal code", func(in *VehicleInput) { in.PostalCode = "12345678901" }, "codigo_postal"},
		{"bad usage", func(in *VehicleInput) { in.Usage = "militar" }, "uso"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validVehicleInput()
			tc.mutate(&in)
			_, err := in.Normalize(now)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, verr.Field)
			}
		})
	}

	t.Run("next year is accepted", func(t *testing.T) {
		in := validVehicleInput()
		in.Year = 2026
		if _, err := in.Normalize(now); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	})
}

func TestVehicleResolver_Resolve(t *testing.T) {
	customer := entities.Customer{ID: "c-1"}

	t.Run("creates a new vehicle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		repo.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(entities.Vehicle{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, v entities.Vehicle) (entities.Vehicle, error) {
				if v.ID == "" || v.CustomerID != "c-1" || v.Plate != "AB123CD" || v.Fuel != entities.FuelNafta {
					t.Fatalf("unexpected vehicle: %+v", v)
				}
				return v, nil
			},
		)

		v, created, err := r.Resolve(context.Background(), customer, validVehicleInput())
		if err != nil || !created || !v.IsComplete() {
			t.Fatalf("unexpected result: %+v created=%v err=%v", v, created, err)
		}
	})

	t.Run("returns existing vehicle as stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		stored := entities.Vehicle{ID: "v-1", CustomerID: "c-2", Plate: "AB123CD", Make: "Ford"}
		repo.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(stored, nil)

		v, created, err := r.Resolve(context.Background(), customer, validVehicleInput())
		if err != nil || created || v.Make != "Ford" {
			t.Fatalf("unexpected result: %+v created=%v err=%v", v, created, err)
		}
	})

	t.Run("duplicate plate converges", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		gomock.InOrder(
			repo.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(entities.Vehicle{}, nil),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Vehicle{}, interfaces.ErrDuplicateKey),
			repo.EXPECT().FindByPlate(gomock.Any(), "AB123CD").Return(entities.Vehicle{ID: "v-9"}, nil),
		)

		v, created, err := r.Resolve(context.Background(), customer, validVehicleInput())
		if err != nil || created || v.ID != "v-9" {
			t.Fatalf("unexpected result: %+v created=%v err=%v", v, created, err)
		}
	})
}

func TestVehicleResolver_Update(t *testing.T) {
	t.Run("revises owner postal code version and fuel only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		stored := entities.Vehicle{ID: "v-1", CustomerID: "c-old", Plate: "AB123CD", Make: "Ford", Model: "Ka", Year: 2015}
		repo.EXPECT().Revise(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, rev entities.VehicleRevision) (entities.Vehicle, error) {
				if rev.CustomerID != "c-new" || rev.PostalCode != "1425" || rev.Version != "XEI 2.0" {
					t.Fatalf("unexpected revision: %+v", rev)
				}
				if rev.Fuel == nil || *rev.Fuel != entities.FuelNafta {
					t.Fatalf("expected fuel revision, got %+v", rev.Fuel)
				}
				return rev.Apply(stored), nil
			},
		)

		v, err := r.Update(context.Background(), stored, entities.Customer{ID: "c-new"}, validVehicleInput())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if v.Make != "Ford" || v.Model != "Ka" || v.Year != 2015 || v.CustomerID != "c-new" {
			t.Fatalf("chassis facts must be kept: %+v", v)
		}
	})

	t.Run("fuel omitted keeps stored fuel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		in := validVehicleInput()
		in.Fuel = ""
		repo.EXPECT().Revise(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, rev entities.VehicleRevision) (entities.Vehicle, error) {
				if rev.Fuel != nil {
					t.Fatalf("expected no fuel revision")
				}
				return entities.Vehicle{ID: "v-1"}, nil
			},
		)

		if _, err := r.Update(context.Background(), entities.Vehicle{ID: "v-1"}, entities.Customer{ID: "c-1"}, in); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	})

	t.Run("postal code omitted keeps stored postal code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		stored := entities.Vehicle{
			ID: "v-1", CustomerID: "c-1", Plate: "AB123CD", Make: "Toyota", Model: "Corolla",
			Version: "XEI 2.0", Year: 2020, Fuel: entities.FuelNafta, PostalCode: "1406",
		}
		in := validVehicleInput()
		in.PostalCode = ""
		repo.EXPECT().Revise(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, rev entities.VehicleRevision) (entities.Vehicle, error) {
				return rev.Apply(stored), nil
			},
		)

		v, err := r.Update(context.Background(), stored, entities.Customer{ID: "c-1"}, in)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if v.PostalCode != "1406" || !v.IsComplete() {
			t.Fatalf("expected stored postal code kept, got %+v", v)
		}
	})

	t.Run("plate-only vehicle receives chassis facts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		stored := entities.Vehicle{ID: "v-1", CustomerID: "c-1", Plate: "AB123CD", Usage: entities.UsageParticular}
		repo.EXPECT().Revise(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, rev entities.VehicleRevision) (entities.Vehicle, error) {
				if rev.Make != "Toyota" || rev.Model != "Corolla" || rev.Year != 2020 {
					t.Fatalf("expected chassis in revision, got %+v", rev)
				}
				return rev.Apply(stored), nil
			},
		)

		v, err := r.Update(context.Background(), stored, entities.Customer{ID: "c-1"}, validVehicleInput())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !v.IsComplete() {
			t.Fatalf("expected complete vehicle, got %+v", v)
		}
	})
}

func TestVehicleResolver_ResolvePlate(t *testing.T) {
	t.Run("claims unowned vehicle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		repo.EXPECT().FindByPlate(gomock.Any(), "ABC123").Return(entities.Vehicle{ID: "v-1", Plate: "ABC123"}, nil)
		repo.EXPECT().Revise(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, rev entities.VehicleRevision) (entities.Vehicle, error) {
				return entities.Vehicle{ID: "v-1", CustomerID: rev.CustomerID}, nil
			},
		)

		v, created, err := r.ResolvePlate(context.Background(), entities.Customer{ID: "c-1"}, "abc 123")
		if err != nil || created || v.CustomerID != "c-1" {
			t.Fatalf("unexpected result: %+v created=%v err=%v", v, created, err)
		}
	})

	t.Run("creates bare vehicle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIVehicleRepository(ctrl)
		r := NewVehicleResolver(repo, nil)

		repo.EXPECT().FindByPlate(gomock.Any(), "ABC123").Return(entities.Vehicle{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, v entities.Vehicle) (entities.Vehicle, error) { return v, nil },
		)

		v, created, err := r.ResolvePlate(context.Background(), entities.Customer{ID: "c-1"}, "ABC123")
		if err != nil || !created || v.IsComplete() {
			t.Fatalf("unexpected result: %+v created=%v err=%v", v, created, err)
		}
	})
}
