package entities

import (
	"errors"
	"testing"
)

func TestNewIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		kind    IdentifierKind
		raw     string
		want    string
		wantErr string
	}{
		{name: "dni 8 digits", kind: IdentifierDNI, raw: "30123727", want: "30123727"},
		{name: "dni with dots", kind: IdentifierDNI, raw: "30.123.727", want: "30123727"},
		{name: "dni 7 digits", kind: IdentifierDNI, raw: "1234567", want: "1234567"},
		{name: "dni too short", kind: IdentifierDNI, raw: "123456", wantErr: "DNI inválido"},
		{name: "dni letters", kind: IdentifierDNI, raw: "30A23727", wantErr: "DNI inválido"},
		{name: "email lowercased", kind: IdentifierEmail, raw: "  Juan.Perez@Example.COM ", want: "juan.perez@example.com"},
		{name: "email invalid", kind: IdentifierEmail, raw: "juan@", wantErr: "Email inválido"},
		{name: "phone national", kind: IdentifierPhone, raw: "11 2345-6789", want: "+5491123456789"},
		{name: "phone trunk zero", kind: IdentifierPhone, raw: "0351 4567890", want: "+5493514567890"},
		{name: "phone country code", kind: IdentifierPhone, raw: "54 11 2345 6789", want: "+5491123456789"},
		{name: "phone full", kind: IdentifierPhone, raw: "+54 9 11 2345-6789", want: "+5491123456789"},
		{name: "phone too short", kind: IdentifierPhone, raw: "12345", wantErr: "Teléfono inválido"},
		{name: "plate mercosur spaced", kind: IdentifierPlate, raw: "ab 123 cd", want: "AB123CD"},
		{name: "plate old", kind: IdentifierPlate, raw: "abc123", want: "ABC123"},
		{name: "plate invalid", kind: IdentifierPlate, raw: "A1B2C3", wantErr: "Patente inválida (ej: ABC123)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewIdentifier(tc.kind, tc.raw)
			if tc.wantErr != "" {
				var invalid *InvalidIdentifierError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidIdentifierError, got %v", err)
				}
				if invalid.Reason != tc.wantErr {
					t.Fatalf("expected reason %q, got %q", tc.wantErr, invalid.Reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != tc.kind || got.Value != tc.want {
				t.Fatalf("expected %s/%q, got %s/%q", tc.kind, tc.want, got.Kind, got.Value)
			}
		})
	}
}

func TestParseIdentifierKind(t *testing.T) {
	for raw, want := range map[string]IdentifierKind{
		"dni":      IdentifierDNI,
		"EMAIL":    IdentifierEmail,
		"telefono": IdentifierPhone,
		"phone":    IdentifierPhone,
		"patente":  IdentifierPlate,
	} {
		got, err := ParseIdentifierKind(raw)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", raw, want, got, err)
		}
	}

	if _, err := ParseIdentifierKind("cuit"); err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
}

func TestCustomerWithIdentifier(t *testing.T) {
	c := Customer{ID: "c-1", IsAnonymous: true}

	c = c.WithIdentifier(Identifier{Kind: IdentifierEmail, Value: "a@b.com"})
	if c.Email != "a@b.com" || !c.HasContactIdentifier() {
		t.Fatalf("expected email set, got %+v", c)
	}

	plated := Customer{ID: "c-2"}.WithIdentifier(Identifier{Kind: IdentifierPlate, Value: "AB123CD"})
	if plated.HasContactIdentifier() {
		t.Fatalf("plate must not become a contact identifier: %+v", plated)
	}
}
