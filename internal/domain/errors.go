package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrNoProfile          = errors.New("no existe perfil de usuario")
	ErrInvalidTenant      = errors.New("el perfil no tiene kiosco válido")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrEmptyCart          = errors.New("la venta no tiene items")
	ErrAlreadyClosed      = errors.New("la caja de hoy ya fue cerrada")
	ErrTokenMismatch      = errors.New("el token de verificación no coincide")
	ErrTokenExpired       = errors.New("el token de verificación ya expiró")
)
