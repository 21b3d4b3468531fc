package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrCustomerHasDependents = errors.New("el cliente tiene tickets u oportunidades asociadas")
	ErrTokenRevoked          = errors.New("token revocado")
	ErrServiceUnavailable    = errors.New("servicio externo no disponible")
)
