package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	request "cotizador_seguros/internal/adapter/http/dto/request"
	"cotizador_seguros/internal/adapter/http/handlers/mocks"
	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type recordedCall struct{ tool, result string }

type fakeToolMetrics struct{ calls []recordedCall }

func (f *fakeToolMetrics) ToolCalled(tool, result string) {
	f.calls = append(f.calls, recordedCall{tool, result})
}

func newToolsRouter(t *testing.T, uc usecase.IAgentToolUseCase, m IToolMetrics) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	h := NewToolsHandler(uc, m, nil)
	r := gin.New()
	r.POST("/v1/tools/identify-customer", h.IdentifyCustomer)
	r.POST("/v1/tools/identify-vehicle", h.IdentifyVehicle)
	r.POST("/v1/tools/:tool", h.Dispatch)
	return r
}

func postJSON(r *gin.Engine, path, body string, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

const vehicleBody = `{"external_conversation_id":"conv-1","patente":"AB123CD","marca":"Ford","modelo":"Ka","version":"SE","year":2020,"combustible":"nafta","codigo_postal":"1406"}`

func TestToolsHandler_IdentifyCustomer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		m := &fakeToolMetrics{}
		r := newToolsRouter(t, uc, m)

		uc.EXPECT().IdentifyCustomer(gomock.Any(), usecase.IdentifyCustomerCommand{
			ExternalConversationID: "conv-1",
			ExternalUserID:         "user-1",
			IdentifierType:         "dni",
			IdentifierValue:        "30.123.456",
		}).Return(usecase.IdentifyCustomerResult{
			Customer:   entities.Customer{ID: "cus-1", DNI: "30123456"},
			IsNew:      true,
			ToolOutput: "Cliente identificado correctamente",
		}, nil)

		w, body := postJSON(r, "/v1/tools/identify-customer",
			`{"external_conversation_id":"conv-1","identifier_type":"dni","identifier_value":"30.123.456"}`,
			UserIDHeader, "user-1")

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body["success"] != true || body["customer_id"] != "cus-1" || body["is_new"] != true {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if len(m.calls) != 1 || m.calls[0] != (recordedCall{"identify_customer", "success"}) {
			t.Fatalf("unexpected metrics: %+v", m.calls)
		}
	})

	t.Run("validation error from usecase is 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		r := newToolsRouter(t, uc, nil)

		uc.EXPECT().IdentifyCustomer(gomock.Any(), gomock.Any()).
			Return(usecase.IdentifyCustomerResult{}, &usecase.ValidationError{Field: "dni", Reason: "DNI inválido"})

		w, body := postJSON(r, "/v1/tools/identify-customer",
			`{"thread_id":"t-1","identifier_type":"dni","identifier_value":"12"}`)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body["success"] != false || body["error_code"] != "validation_error" || body["error"] != "DNI inválido" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("missing conversation id is 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		r := newToolsRouter(t, uc, nil)

		w, body := postJSON(r, "/v1/tools/identify-customer", `{"identifier_type":"dni","identifier_value":"30123456"}`)

		if w.Code != http.StatusUnprocessableEntity || body["error_code"] != "validation_error" {
			t.Fatalf("expected validation_error 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unexpected error hides details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		m := &fakeToolMetrics{}
		r := newToolsRouter(t, uc, m)

		uc.EXPECT().IdentifyCustomer(gomock.Any(), gomock.Any()).
			Return(usecase.IdentifyCustomerResult{}, errors.New("pq: connection refused"))

		w, body := postJSON(r, "/v1/tools/identify-customer",
			`{"external_conversation_id":"conv-1","identifier_type":"email","identifier_value":"a@b.com"}`)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if body["error_code"] != "server_error" || body["error"] != "Error interno del servidor" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if len(m.calls) != 1 || m.calls[0].result != "server_error" {
			t.Fatalf("unexpected metrics: %+v", m.calls)
		}
	})
}

func TestToolsHandler_IdentifyVehicle(t *testing.T) {
	t.Run("success with quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		r := newToolsRouter(t, uc, nil)

		uc.EXPECT().IdentifyVehicle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd usecase.IdentifyVehicleCommand) (usecase.IdentifyVehicleResult, error) {
				if cmd.ExternalConversationID != "conv-1" || cmd.Vehicle.Year != 2020 || cmd.Vehicle.Fuel != "nafta" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return usecase.IdentifyVehicleResult{
					Vehicle:    entities.Vehicle{ID: "veh-1", Plate: "AB123CD", Make: "Ford", Model: "Ka", Version: "SE", Year: 2020, Fuel: entities.FuelNafta, PostalCode: "1406"},
					CustomerID: "cus-1",
					IsNew:      true,
					Quote:      &entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending},
					NextStep:   usecase.NextStepCoverageSelection,
					ToolOutput: "Vehículo registrado correctamente.",
				}, nil
			})

		w, body := postJSON(r, "/v1/tools/identify-vehicle", vehicleBody)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body["quote_id"] != "q-1" || body["is_complete"] != true || body["next_step"] != "coverage_selection" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("missing customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		r := newToolsRouter(t, uc, nil)

		uc.EXPECT().IdentifyVehicle(gomock.Any(), gomock.Any()).Return(usecase.IdentifyVehicleResult{}, usecase.ErrMissingCustomer)

		w, body := postJSON(r, "/v1/tools/identify-vehicle", vehicleBody)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if body["success"] != false || body["error_code"] != "missing_customer" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("invalid plate never reaches usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		r := newToolsRouter(t, uc, nil)

		w, body := postJSON(r, "/v1/tools/identify-vehicle",
			`{"external_conversation_id":"conv-1","patente":"123","marca":"Ford","modelo":"Ka","version":"SE","year":2020}`)

		if w.Code != http.StatusUnprocessableEntity || body["error_code"] != "validation_error" {
			t.Fatalf("expected validation_error 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		r := newToolsRouter(t, uc, nil)

		w, _ := postJSON(r, "/v1/tools/identify-vehicle", "{")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

func TestToolsHandler_Dispatch(t *testing.T) {
	t.Run("routes by tool name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		r := newToolsRouter(t, uc, nil)

		uc.EXPECT().IdentifyVehicle(gomock.Any(), gomock.Any()).Return(usecase.IdentifyVehicleResult{NextStep: usecase.NextStepCompleteVehicle}, nil)

		w, _ := postJSON(r, "/v1/tools/identify_vehicle", vehicleBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAgentToolUseCase(ctrl)
		m := &fakeToolMetrics{}
		r := newToolsRouter(t, uc, m)

		w, body := postJSON(r, "/v1/tools/get_weather", `{}`)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if body["error_code"] != "tool_not_found" || body["error"] != "Herramienta no soportada: get_weather" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if len(m.calls) != 1 || m.calls[0] != (recordedCall{"get_weather", "tool_not_found"}) {
			t.Fatalf("unexpected metrics: %+v", m.calls)
		}
	})
}

func TestMapToolError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&usecase.ValidationError{Reason: "x"}, http.StatusUnprocessableEntity, "validation_error"},
		{usecase.ErrMissingCustomer, http.StatusInternalServerError, "missing_customer"},
		{&usecase.ToolNotFoundError{Tool: "x"}, http.StatusInternalServerError, "tool_not_found"},
		{errors.New("x"), http.StatusInternalServerError, "server_error"},
	}
	for _, tc := range cases {
		status, body := mapToolError(tc.err)
		if status != tc.status || body.ErrorCode != tc.code || body.Success {
			t.Fatalf("%v: got %d %+v", tc.err, status, body)
		}
	}
}
