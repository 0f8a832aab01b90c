package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IdentifierKind is the closed set of identifiers a customer can be found by.
type IdentifierKind int

const (
	IdentifierDNI IdentifierKind = iota + 1
	IdentifierEmail
	IdentifierPhone
	IdentifierPlate
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierDNI:
		return "dni"
	case IdentifierEmail:
		return "email"
	case IdentifierPhone:
		return "phone"
	case IdentifierPlate:
		return "plate"
	}
	return fmt.Sprintf("IdentifierKind(%d)", int(k))
}

// ParseIdentifierKind accepts the tool vocabulary and its Spanish aliases.
func ParseIdentifierKind(raw string) (IdentifierKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dni":
		return IdentifierDNI, nil
	case "email":
		return IdentifierEmail, nil
	case "phone", "telefono", "teléfono":
		return IdentifierPhone, nil
	case "plate", "patente":
		return IdentifierPlate, nil
	}
	return 0, &InvalidIdentifierError{Field: "identifier_type", Reason: fmt.Sprintf("Tipo de identificador no soportado: %s", raw)}
}

// Identifier is a validated, normalized identifier value.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// InvalidIdentifierError carries a human-readable reason for the caller.
type InvalidIdentifierError struct {
	Field  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return e.Reason
}

var (
	dniPattern        = regexp.MustCompile(`^\d{7,8}$`)
	plateOldPattern   = regexp.MustCompile(`^[A-Z]{3}\d{3}$`)
	plateMercoPattern = regexp.MustCompile(`^[A-Z]{2}\d{3}[A-Z]{2}$`)
	phonePattern      = regexp.MustCompile(`^\+\d{11,15}$`)

	emailValidator = validator.New()
)

// NewIdentifier normalizes raw for kind and validates it against the kind's grammar.
func NewIdentifier(kind IdentifierKind, raw string) (Identifier, error) {
	var (
		value string
		err   error
	)
	switch kind {
	case IdentifierDNI:
		value, err = normalizeDNI(raw)
	case IdentifierEmail:
		value, err = normalizeEmail(raw)
	case IdentifierPhone:
		value, err = NormalizePhone(raw)
	case IdentifierPlate:
		value, err = NormalizePlate(raw)
	default:
		return Identifier{}, &InvalidIdentifierError{Field: "identifier_type", Reason: "Tipo de identificador no soportado"}
	}
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{Kind: kind, Value: value}, nil
}

func normalizeDNI(raw string) (string, error) {
	v := strings.NewReplacer(".", "", " ", "", "-", "").Replace(strings.TrimSpace(raw))
	if !dniPattern.MatchString(v) {
		return "", &InvalidIdentifierError{Field: "dni", Reason: "DNI inválido"}
	}
	return v, nil
}

func normalizeEmail(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || emailValidator.Var(v, "required,email") != nil {
		return "", &InvalidIdentifierError{Field: "email", Reason: "Email inválido"}
	}
	return v, nil
}

// NormalizePhone returns an E.164-like "+<digits>" form. Ten-digit national
// numbers get the Argentine mobile prefix (+549) backfilled.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	v := b.String()

	switch {
	case strings.HasPrefix(v, "+"):
	case strings.HasPrefix(v, "549") && len(v) == 13:
		v = "+" + v
	case strings.HasPrefix(v, "54") && len(v) == 12:
		v = "+549" + v[2:]
	default:
		v = strings.TrimPrefix(v, "0")
		if len(v) == 10 {
			v = "+549" + v
		}
	}

	if !phonePattern.MatchString(v) {
		return "", &InvalidIdentifierError{Field: "phone", Reason: "Teléfono inválido"}
	}
	return v, nil
}

// NormalizePlate uppercases raw, strips all whitespace and checks it against
// the old (ABC123) and Mercosur (AB123CD) grammars.
func NormalizePlate(raw string) (string, error) {
	v := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if !plateOldPattern.MatchString(v) && !plateMercoPattern.MatchString(v) {
		return "", &InvalidIdentifierError{Field: "patente", Reason: "Patente inválida (ej: ABC123)"}
	}
	return v, nil
}
