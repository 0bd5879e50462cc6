package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                  = errors.New("recurso no encontrado")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrUnauthorized              = errors.New("credenciales inválidas")
	ErrForbidden                 = errors.New("no tiene permisos para esta acción")
	ErrConflict                  = errors.New("conflicto con el estado actual")
	ErrInsufficientStock         = errors.New("stock insuficiente")
	ErrQualityControlNotApproved = errors.New("no existe un control de calidad aprobado para el material")
	ErrAlreadyApproved           = errors.New("el control de calidad ya fue aprobado")
)

// FieldError agrega a un error de dominio el campo afectado y un mensaje legible.
// errors.Is(err, ErrInvalidInput) sigue funcionando sobre el error envuelto.
type FieldError struct {
	Err     error
	Field   string
	Message string
}

// NewFieldError construye un FieldError sobre un error base.
func NewFieldError(base error, field, message string) *FieldError {
	return &FieldError{Err: base, Field: field, Message: message}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error { return e.Err }

// Invalid atajo para errores de validación sobre un campo.
func Invalid(field, message string) error {
	return NewFieldError(ErrInvalidInput, field, message)
}
