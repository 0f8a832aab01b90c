package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindVehicle(t *testing.T, body string) (IdentifyVehicleRequest, error) {
	t.Helper()
	if err := RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req IdentifyVehicleRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestConversationRef_Resolve(t *testing.T) {
	r := ConversationRef{ExternalConversationID: " conv-1 ", ThreadID: "thread-1"}
	if got := r.ResolveConversationID(); got != "conv-1" {
		t.Fatalf("expected conv-1, got %q", got)
	}

	r2 := ConversationRef{ThreadID: " thread-1 "}
	if got := r2.ResolveConversationID(); got != "thread-1" {
		t.Fatalf("expected thread-1, got %q", got)
	}

	if got := (ConversationRef{OpenAIUserID: "u-2"}).ResolveUserID("u-3"); got != "u-2" {
		t.Fatalf("expected u-2, got %q", got)
	}
	if got := (ConversationRef{}).ResolveUserID(" u-3 "); got != "u-3" {
		t.Fatalf("expected header fallback, got %q", got)
	}
}

func TestIdentifyCustomerRequest_ToCommand(t *testing.T) {
	r := IdentifyCustomerRequest{IdentifierType: "dni", IdentifierValue: "30123456"}
	if _, err := r.ToCommand(""); !errors.Is(err, ErrMissingConversationID) {
		t.Fatalf("expected ErrMissingConversationID, got %v", err)
	}

	r.ThreadID = "thread-9"
	cmd, err := r.ToCommand("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.ExternalConversationID != "thread-9" || cmd.ExternalUserID != "user-1" || cmd.IdentifierValue != "30123456" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	cases := map[string]int{`2020`: 2020, `"2021"`: 2021, `" 2019 "`: 2019, `null`: 0, `""`: 0}
	for in, want := range cases {
		var n FlexInt
		if err := json.Unmarshal([]byte(in), &n); err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if int(n) != want {
			t.Fatalf("%s: expected %d, got %d", in, want, n)
		}
	}

	var n FlexInt
	if err := json.Unmarshal([]byte(`"dos mil"`), &n); err == nil {
		t.Fatalf("expected error for non numeric year")
	}
}

func TestIdentifyVehicleRequest_Binding(t *testing.T) {
	valid := `{"thread_id":"t-1","patente":"ab 123 cd","marca":"Ford","modelo":"Ka","version":"SE","year":"2020","combustible":"Nafta","codigo_postal":"1406"}`

	t.Run("valid payload", func(t *testing.T) {
		req, err := bindVehicle(t, valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cmd, err := req.ToCommand("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.Vehicle.Year != 2020 || cmd.Vehicle.Plate != "ab 123 cd" || cmd.ExternalConversationID != "t-1" {
			t.Fatalf("unexpected command: %+v", cmd)
		}
	})

	t.Run("bad plate", func(t *testing.T) {
		_, err := bindVehicle(t, strings.Replace(valid, "ab 123 cd", "A1", 1))
		if err == nil {
			t.Fatalf("expected binding error")
		}
		if msg := BindingMessage(err); !strings.Contains(msg, "Patente inválida") {
			t.Fatalf("unexpected message: %s", msg)
		}
	})

	t.Run("bad fuel", func(t *testing.T) {
		_, err := bindVehicle(t, strings.Replace(valid, "Nafta", "kerosene", 1))
		if err == nil {
			t.Fatalf("expected binding error")
		}
		if msg := BindingMessage(err); !strings.Contains(msg, "Combustible inválido") {
			t.Fatalf("unexpected message: %s", msg)
		}
	})

	t.Run("fuel is optional", func(t *testing.T) {
		if _, err := bindVehicle(t, strings.Replace(valid, `"combustible":"Nafta",`, "", 1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing make uses json name", func(t *testing.T) {
		_, err := bindVehicle(t, strings.Replace(valid, `"marca":"Ford",`, "", 1))
		if err == nil {
			t.Fatalf("expected binding error")
		}
		if msg := BindingMessage(err); !strings.Contains(msg, "marca es requerido") {
			t.Fatalf("unexpected message: %s", msg)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := bindVehicle(t, "{")
		if err == nil {
			t.Fatalf("expected binding error")
		}
		if msg := BindingMessage(err); !strings.Contains(msg, "cuerpo de la solicitud") {
			t.Fatalf("unexpected message: %s", msg)
		}
	})
}
