package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los clasifican con errors.Is y los traducen a códigos.
var (
	// ErrInvalidRequest entrada estructuralmente inválida: campo requerido ausente,
	// campos mutuamente excluyentes, cantidad no positiva, lote vacío, etc.
	ErrInvalidRequest = errors.New("solicitud inválida")
	// ErrReferenceNotFound un producto, variante o ubicación referenciada no existe o está eliminada.
	ErrReferenceNotFound = errors.New("referencia no encontrada")
	// ErrNotFound el recurso principal (traslado, ítem) no existe.
	ErrNotFound = errors.New("recurso no encontrado")
	// ErrInvalidState la operación no es válida en el estado actual del traslado.
	ErrInvalidState = errors.New("estado no permite la operación")
	// ErrForbidden operación prohibida en el estado actual (editar/cancelar fuera de PENDING).
	ErrForbidden = errors.New("operación no permitida")
	// ErrQuantityExceeded un delta de envío/recepción excede el límite legal de la cantidad.
	ErrQuantityExceeded = errors.New("cantidad excede el límite permitido")
	// ErrInternal fallo de persistencia o del ledger después de validar; siempre con rollback total.
	ErrInternal = errors.New("error interno")

	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrDuplicate          = errors.New("recurso duplicado")
)
