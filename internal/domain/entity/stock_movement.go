package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de stock.
const (
	MovementTypeTransferOut = "TRANSFER_OUT" // salida de la ubicación origen
	MovementTypeTransferIn  = "TRANSFER_IN"  // entrada a la ubicación destino
)

// Tipos de documento que referencian movimientos.
const (
	ReferenceTypeStockTransfer = "stock_transfer"
)

// StockMovement es una entrada inmutable del ledger de stock: una unidad de
// inventario entrando o saliendo de una ubicación. Se escribe exactamente una
// vez por acción de envío/recepción, dentro de la misma transacción que
// actualiza la línea del traslado, y nunca se muta ni se borra.
type StockMovement struct {
	ID               string
	ProductID        string
	ProductVariantID *string
	LocationKind     string // warehouse | shop
	LocationID       string
	Type             string          // TRANSFER_OUT | TRANSFER_IN
	Quantity         decimal.Decimal // con signo: negativo salida, positivo entrada
	UnitCost         decimal.Decimal // snapshot del costo al momento de la acción
	TotalCost        decimal.Decimal
	MovementDate     time.Time
	ReferenceType    string // stock_transfer
	ReferenceID      string // ID del traslado
	ReferenceItemID  *string
	Note             string
	CreatedAt        time.Time
	CreatedBy        string // UserID del actor
}
