package entity

import "time"

// Shop representa una tienda (punto de venta) con inventario propio.
// Origen o destino posible de un traslado de stock.
type Shop struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Active indica si la tienda puede usarse como ubicación de traslados.
func (s *Shop) Active() bool { return s.DeletedAt == nil }
