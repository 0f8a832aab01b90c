package repository

import (
	"errors"
	"strings"

	"cotizador_seguros/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// translateGormError maps unique-constraint violations onto the port error.
// gorm translates them when the dialector supports it; the message check
// covers connections opened without TranslateError.
func translateGormError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return interfaces.ErrDuplicateKey
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return interfaces.ErrDuplicateKey
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
