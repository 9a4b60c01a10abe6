package entity

import "time"

// ProductVariant representa una variante de un producto (talla, color, etc.).
// Una línea de traslado puede referenciarla; siempre debe pertenecer al
// producto de la misma línea.
type ProductVariant struct {
	ID        string
	ProductID string
	SKU       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Active indica si la variante puede referenciarse en nuevos traslados.
func (v *ProductVariant) Active() bool { return v.DeletedAt == nil }
