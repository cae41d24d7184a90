package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNegativeStock      = errors.New("la operación dejaría el stock en negativo")
	ErrWeakPassword       = errors.New("la contraseña debe tener al menos 8 caracteres")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrStoreAlreadyExists = errors.New("el usuario ya tiene una tienda")
	ErrStoreNameTaken     = errors.New("ya existe una tienda con ese nombre")
	ErrHasHistory         = errors.New("el producto tiene movimientos registrados")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
