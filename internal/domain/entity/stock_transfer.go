package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

// Estados del ciclo de vida de un traslado de stock.
const (
	TransferStatusPending           = "PENDING"
	TransferStatusInTransit         = "IN_TRANSIT"
	TransferStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	TransferStatusReceived          = "RECEIVED"
	TransferStatusCancelled         = "CANCELLED"
)

// Tipos de ubicación de origen/destino de un traslado.
const (
	LocationKindWarehouse = "warehouse"
	LocationKindShop      = "shop"
)

// transferTransitions define las únicas transiciones legales del estado.
// RECEIVED y CANCELLED son terminales; PARTIALLY_RECEIVED solo avanza a RECEIVED.
var transferTransitions = map[string][]string{
	TransferStatusPending:           {TransferStatusInTransit, TransferStatusCancelled},
	TransferStatusInTransit:         {TransferStatusPartiallyReceived, TransferStatusReceived},
	TransferStatusPartiallyReceived: {TransferStatusReceived},
	TransferStatusReceived:          {},
	TransferStatusCancelled:         {},
}

// StockTransfer representa un traslado de inventario entre dos ubicaciones
// (bodega o tienda), con flujo solicitud → envío parcial → recepción parcial.
// Es la raíz del agregado: posee sus ítems y el campo Status se deriva siempre
// del conjunto de ítems, nunca se muta por otra vía.
type StockTransfer struct {
	ID             string
	TransferNumber string // formato TRF-<fecha>-<8 hex>, único, nunca reutilizado

	SourceWarehouseID      *string
	SourceShopID           *string
	DestinationWarehouseID *string
	DestinationShopID      *string

	Status string

	RequestDate time.Time
	ShipDate    *time.Time // se fija en el primer envío
	ReceiveDate *time.Time // se fija en la primera recepción

	RequestedByUserID string
	ShippedByUserID   *string
	ReceivedByUserID  *string

	Notes string

	Items []*StockTransferItem

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft delete; solo desde PENDING o CANCELLED
}

// SourceLocation devuelve (tipo, id) de la ubicación origen.
func (t *StockTransfer) SourceLocation() (kind, id string) {
	if t.SourceWarehouseID != nil {
		return LocationKindWarehouse, *t.SourceWarehouseID
	}
	if t.SourceShopID != nil {
		return LocationKindShop, *t.SourceShopID
	}
	return "", ""
}

// DestinationLocation devuelve (tipo, id) de la ubicación destino.
func (t *StockTransfer) DestinationLocation() (kind, id string) {
	if t.DestinationWarehouseID != nil {
		return LocationKindWarehouse, *t.DestinationWarehouseID
	}
	if t.DestinationShopID != nil {
		return LocationKindShop, *t.DestinationShopID
	}
	return "", ""
}

// CanTransitionTo indica si el paso del estado actual a next es legal.
func (t *StockTransfer) CanTransitionTo(next string) bool {
	for _, s := range transferTransitions[t.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// TransitionTo aplica la transición de estado si es legal; si no, retorna
// ErrInvalidState identificando el estado actual y el solicitado.
func (t *StockTransfer) TransitionTo(next string) error {
	if !t.CanTransitionTo(next) {
		return fmt.Errorf("transición %s -> %s: %w", t.Status, next, domain.ErrInvalidState)
	}
	t.Status = next
	return nil
}

// CanUpdate la cabecera y los ítems solo se editan mientras el traslado está PENDING.
func (t *StockTransfer) CanUpdate() bool { return t.Status == TransferStatusPending }

// CanShip el envío solo procede desde PENDING.
func (t *StockTransfer) CanShip() bool { return t.Status == TransferStatusPending }

// CanReceive la recepción procede desde IN_TRANSIT o PARTIALLY_RECEIVED.
func (t *StockTransfer) CanReceive() bool {
	return t.Status == TransferStatusInTransit || t.Status == TransferStatusPartiallyReceived
}

// CanCancel solo se cancela un traslado PENDING.
func (t *StockTransfer) CanCancel() bool { return t.Status == TransferStatusPending }

// CanDelete el borrado lógico solo aplica en PENDING o CANCELLED.
func (t *StockTransfer) CanDelete() bool {
	return t.Status == TransferStatusPending || t.Status == TransferStatusCancelled
}

// FindItem busca un ítem del traslado por su ID; nil si no pertenece al agregado.
func (t *StockTransfer) FindItem(itemID string) *StockTransferItem {
	for _, it := range t.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// DeriveReceiptStatus deriva el estado tras aplicar recepciones sobre el
// conjunto completo de ítems: RECEIVED si todo lo enviado fue recibido (y se
// envió al menos una unidad), PARTIALLY_RECEIVED en cualquier otro caso.
func (t *StockTransfer) DeriveReceiptStatus() string {
	totalShipped := decimal.Zero
	allReceived := true
	for _, it := range t.Items {
		totalShipped = totalShipped.Add(it.QuantityShipped)
		if !it.QuantityReceived.Equal(it.QuantityShipped) {
			allReceived = false
		}
	}
	if allReceived && totalShipped.GreaterThan(decimal.Zero) {
		return TransferStatusReceived
	}
	return TransferStatusPartiallyReceived
}
