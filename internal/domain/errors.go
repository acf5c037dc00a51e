package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores los envuelven con %w; los handlers los comparan con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("credenciales inválidas")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrRender            = errors.New("no se pudo generar el documento")
)
