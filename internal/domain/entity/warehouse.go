package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// Origen o destino posible de un traslado de stock.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft delete: una bodega eliminada no es ubicación válida
}

// Active indica si la bodega puede usarse como ubicación de traslados.
func (w *Warehouse) Active() bool { return w.DeletedAt == nil }
