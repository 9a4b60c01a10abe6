package repository

import (
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// StockMovementRepository define el puerto del ledger de movimientos de stock.
// Append-only: el motor de traslados solo escribe, nunca consulta de vuelta;
// las lecturas existen para el endpoint de reportes.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error)
	ListByLocation(locationKind, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
