package repository

import (
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// TransferFilter criterios de búsqueda para listados de traslados.
// Search aplica sobre transfer_number y notes (texto libre).
type TransferFilter struct {
	Status      string
	WarehouseID string // origen o destino
	ShopID      string // origen o destino
	RequestedBy string
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string
	Limit       int
	Offset      int
}

// StockTransferRepository define el puerto de persistencia del agregado traslado.
// Las operaciones de escritura se usan dentro de transacciones (TxRunner).
type StockTransferRepository interface {
	// Create persiste cabecera e ítems de un traslado nuevo.
	Create(transfer *entity.StockTransfer) error
	// GetByID carga un traslado no eliminado; nil si no existe. withItems carga las líneas.
	GetByID(id string, withItems bool) (*entity.StockTransfer, error)
	// GetByIDForUpdate carga el traslado con ítems y bloquea la fila de cabecera
	// (SELECT FOR UPDATE) para serializar envíos/recepciones concurrentes.
	GetByIDForUpdate(id string) (*entity.StockTransfer, error)
	// UpdateHeader persiste los campos de cabecera (status, fechas, actores, notas).
	UpdateHeader(transfer *entity.StockTransfer) error
	// UpdateItemQuantities persiste los contadores de una línea.
	UpdateItemQuantities(item *entity.StockTransferItem) error
	// ReplaceItems descarta las líneas existentes y crea el conjunto nuevo (solo PENDING).
	ReplaceItems(transferID string, items []*entity.StockTransferItem) error
	// SoftDelete marca la cabecera como eliminada; las líneas quedan para auditoría.
	SoftDelete(id string, deletedAt time.Time) error
	// List / Count listados con filtros y paginación.
	List(filter TransferFilter) ([]*entity.StockTransfer, error)
	Count(filter TransferFilter) (int, error)
	// ExistsNumber verifica si un número de traslado ya fue usado (incluye eliminados).
	ExistsNumber(transferNumber string) (bool, error)
}
