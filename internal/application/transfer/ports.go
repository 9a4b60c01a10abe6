package transfer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// traslados: cabecera, líneas y asientos del ledger se confirman o se
// revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		transferRepo repository.StockTransferRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// DispatchNoteLine es una línea del traslado ya resuelta (nombres en lugar
// de IDs) lista para la remisión en PDF.
type DispatchNoteLine struct {
	SKU               string
	ProductName       string
	VariantName       string // vacío cuando la línea no tiene variante
	QuantityRequested decimal.Decimal
	QuantityShipped   decimal.Decimal
	QuantityReceived  decimal.Decimal
}

// DispatchNoteData reúne todo lo que necesita la remisión: el traslado, las
// ubicaciones y el solicitante ya resueltos a nombres legibles.
type DispatchNoteData struct {
	Transfer        *entity.StockTransfer
	SourceName      string
	SourceKind      string
	DestinationName string
	DestinationKind string
	RequestedByName string
	Lines           []DispatchNoteLine
}

// DispatchNotePDFGenerator genera la representación PDF de la remisión de un
// traslado de stock.
type DispatchNotePDFGenerator interface {
	GenerateDispatchNote(ctx context.Context, data *DispatchNoteData) ([]byte, error)
}
