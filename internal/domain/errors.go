package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del flujo de emisión de órdenes de venta.
	ErrCorrelativeConfigMissing = errors.New("no existe configuración de correlativo para el punto de venta y tipo de documento")
	ErrRangeExhausted           = errors.New("rango de numeración autorizado agotado")
	ErrConcurrentModification   = errors.New("el correlativo fue modificado por otra operación")
)

// ValidationError identifica el campo o la referencia que falló la validación.
// errors.Is(err, ErrInvalidInput) devuelve true para este tipo.
type ValidationError struct {
	Field     string // campo del request (ej: "clientId", "details[2].quantity")
	Reference string // id del recurso ausente/inválido, si aplica
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("%s: %s (id: %s)", e.Field, e.Message, e.Reference)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye un error de validación para un campo.
func NewValidationError(field, reference, message string) *ValidationError {
	return &ValidationError{Field: field, Reference: reference, Message: message}
}
