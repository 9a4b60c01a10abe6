package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// DefaultPurchaseCost es la fuente del snapshot de costo que se estampa en el
// ledger al enviar/recibir un traslado (costo al momento de la acción).
type Product struct {
	ID                  string
	SKU                 string // código único
	Name                string
	Description         string
	SalePrice           decimal.Decimal
	DefaultPurchaseCost decimal.Decimal
	UnitMeasure         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // soft delete
}

// Active indica si el producto puede referenciarse en nuevos traslados.
func (p *Product) Active() bool { return p.DeletedAt == nil }
