package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransferItem representa una línea de un traslado. Mantiene los tres
// contadores monótonos del ciclo de vida de la línea, con el invariante
// 0 <= QuantityReceived <= QuantityShipped <= QuantityRequested.
type StockTransferItem struct {
	ID               string
	TransferID       string
	ProductID        string
	ProductVariantID *string // si está presente debe pertenecer a ProductID

	QuantityRequested decimal.Decimal // positivo; inmutable una vez iniciado el envío
	QuantityShipped   decimal.Decimal // inicia en 0, solo crece
	QuantityReceived  decimal.Decimal // inicia en 0, solo crece

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingToShip cantidad que todavía puede enviarse contra la línea.
func (i *StockTransferItem) RemainingToShip() decimal.Decimal {
	return i.QuantityRequested.Sub(i.QuantityShipped)
}

// RemainingToReceive cantidad enviada pendiente de recibir.
func (i *StockTransferItem) RemainingToReceive() decimal.Decimal {
	return i.QuantityShipped.Sub(i.QuantityReceived)
}

// FullyReceived indica si todo lo enviado en la línea ya fue recibido.
func (i *StockTransferItem) FullyReceived() bool {
	return i.QuantityReceived.Equal(i.QuantityShipped)
}

// QuantitiesValid verifica el invariante de orden de los tres contadores.
func (i *StockTransferItem) QuantitiesValid() bool {
	return !i.QuantityReceived.IsNegative() &&
		i.QuantityReceived.LessThanOrEqual(i.QuantityShipped) &&
		i.QuantityShipped.LessThanOrEqual(i.QuantityRequested)
}
