package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingConversationID = errors.New("El campo external_conversation_id es requerido")

	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the plate and fuel tags on gin's validator and
// makes field errors report json names. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("plate", validatePlate); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("fuel", validateFuel)
	})
	return registerErr
}

func validatePlate(fl validator.FieldLevel) bool {
	_, err := entities.NormalizePlate(fl.Field().String())
	return err == nil
}

func validateFuel(fl validator.FieldLevel) bool {
	_, err := entities.ParseFuel(fl.Field().String())
	return err == nil
}

// ConversationRef identifies the conversation a tool call belongs to. The
// OpenAI flavoured names thread_id and openai_user_id are accepted as aliases.
type ConversationRef struct {
	ExternalConversationID string `json:"external_conversation_id" binding:"max=255"`
	ThreadID               string `json:"thread_id" binding:"max=255"`
	ExternalUserID         string `json:"external_user_id" binding:"max=255"`
	OpenAIUserID           string `json:"openai_user_id" binding:"max=255"`
}

func (r ConversationRef) ResolveConversationID() string {
	if v := strings.TrimSpace(r.ExternalConversationID); v != "" {
		return v
	}
	return strings.TrimSpace(r.ThreadID)
}

// ResolveUserID prefers the body and falls back to header.
func (r ConversationRef) ResolveUserID(header string) string {
	if v := strings.TrimSpace(r.ExternalUserID); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.OpenAIUserID); v != "" {
		return v
	}
	return strings.TrimSpace(header)
}

type IdentifyCustomerRequest struct {
	ConversationRef
	IdentifierType  string `json:"identifier_type" binding:"required"`
	IdentifierValue string `json:"identifier_value" binding:"required,max=255"`
}

func (r IdentifyCustomerRequest) ToCommand(userHeader string) (usecase.IdentifyCustomerCommand, error) {
	convID := r.ResolveConversationID()
	if convID == "" {
		return usecase.IdentifyCustomerCommand{}, ErrMissingConversationID
	}
	return usecase.IdentifyCustomerCommand{
		ExternalConversationID: convID,
		ExternalUserID:         r.ResolveUserID(userHeader),
		IdentifierType:         r.IdentifierType,
		IdentifierValue:        r.IdentifierValue,
	}, nil
}

type IdentifyVehicleRequest struct {
	ConversationRef
	Plate      string  `json:"patente" binding:"required,plate"`
	Make       string  `json:"marca" binding:"required,max=100"`
	Model      string  `json:"modelo" binding:"required,max=100"`
	Version    string  `json:"version" binding:"required,max=100"`
	Year       FlexInt `json:"year" binding:"required"`
	Fuel       string  `json:"combustible" binding:"omitempty,fuel"`
	PostalCode string  `json:"codigo_postal" binding:"max=10"`
	Usage      string  `json:"uso"`
}

func (r IdentifyVehicleRequest) ToCommand(userHeader string) (usecase.IdentifyVehicleCommand, error) {
	convID := r.ResolveConversationID()
	if convID == "" {
		return usecase.IdentifyVehicleCommand{}, ErrMissingConversationID
	}
	return usecase.IdentifyVehicleCommand{
		ExternalConversationID: convID,
		ExternalUserID:         r.ResolveUserID(userHeader),
		Vehicle: usecase.VehicleInput{
			Plate:      r.Plate,
			Make:       r.Make,
			Model:      r.Model,
			Version:    r.Version,
			Year:       int(r.Year),
			Fuel:       r.Fuel,
			PostalCode: r.PostalCode,
			Usage:      r.Usage,
		},
	}, nil
}

// FlexInt accepts both 2020 and "2020"; agents are not consistent about it.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*n = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

// BindingMessage turns a ShouldBindJSON error into a message the agent can
// relay to the user.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Error de validación: cuerpo de la solicitud inválido"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Error de validación: el campo %s es requerido", field)
	case "max":
		return fmt.Sprintf("Error de validación: el campo %s no puede superar %s caracteres", field, fe.Param())
	case "plate":
		return "Error de validación: Patente inválida (ej: ABC123)"
	case "fuel":
		return "Error de validación: Combustible inválido (nafta, diesel, gnc, electrico, hibrido)"
	}
	return fmt.Sprintf("Error de validación: el campo %s es inválido", field)
}
