package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea solicitada al crear o reemplazar ítems de un traslado.
type TransferItemRequest struct {
	ProductID         string          `json:"product_id" validate:"required,uuid"`
	ProductVariantID  *string         `json:"product_variant_id" validate:"omitempty,uuid"`
	QuantityRequested decimal.Decimal `json:"quantity_requested" validate:"required"`
}

// CreateTransferRequest entrada para crear un traslado.
// Exactamente uno de source_warehouse_id/source_shop_id y uno de
// destination_warehouse_id/destination_shop_id.
type CreateTransferRequest struct {
	SourceWarehouseID      *string               `json:"source_warehouse_id" validate:"omitempty,uuid"`
	SourceShopID           *string               `json:"source_shop_id" validate:"omitempty,uuid"`
	DestinationWarehouseID *string               `json:"destination_warehouse_id" validate:"omitempty,uuid"`
	DestinationShopID      *string               `json:"destination_shop_id" validate:"omitempty,uuid"`
	RequestDate            *time.Time            `json:"request_date"`
	Notes                  string                `json:"notes"`
	Items                  []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateTransferRequest entrada para editar un traslado PENDING.
// Punteros nil dejan el campo sin cambios; Items no-nil reemplaza el conjunto
// completo de líneas (las existentes se descartan y los contadores vuelven a 0).
type UpdateTransferRequest struct {
	SourceWarehouseID      *string               `json:"source_warehouse_id"`
	SourceShopID           *string               `json:"source_shop_id"`
	DestinationWarehouseID *string               `json:"destination_warehouse_id"`
	DestinationShopID      *string               `json:"destination_shop_id"`
	RequestDate            *time.Time            `json:"request_date"`
	Notes                  *string               `json:"notes"`
	Items                  []TransferItemRequest `json:"items"`
}

// ShipTransferItemRequest par (línea, cantidad) de un envío.
type ShipTransferItemRequest struct {
	ItemID          string          `json:"item_id" validate:"required,uuid"`
	QuantityShipped decimal.Decimal `json:"quantity_shipped"`
}

// ShipTransferRequest entrada para enviar un traslado (total o parcial).
type ShipTransferRequest struct {
	Items    []ShipTransferItemRequest `json:"items" validate:"required,min=1,dive"`
	ShipDate *time.Time                `json:"ship_date"`
	Notes    *string                   `json:"notes"`
}

// ReceiveTransferItemRequest par (línea, cantidad) de una recepción.
type ReceiveTransferItemRequest struct {
	ItemID           string          `json:"item_id" validate:"required,uuid"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// ReceiveTransferRequest entrada para recibir un traslado (total o parcial).
type ReceiveTransferRequest struct {
	Items       []ReceiveTransferItemRequest `json:"items" validate:"required,min=1,dive"`
	ReceiveDate *time.Time                   `json:"receive_date"`
	Notes       *string                      `json:"notes"`
}

// TransferItemResponse salida de una línea de traslado.
type TransferItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	ProductVariantID  *string         `json:"product_variant_id,omitempty"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
	QuantityShipped   decimal.Decimal `json:"quantity_shipped"`
	QuantityReceived  decimal.Decimal `json:"quantity_received"`
}

// TransferResponse salida de un traslado, con líneas opcionales.
type TransferResponse struct {
	ID                     string                 `json:"id"`
	TransferNumber         string                 `json:"transfer_number"`
	SourceWarehouseID      *string                `json:"source_warehouse_id,omitempty"`
	SourceShopID           *string                `json:"source_shop_id,omitempty"`
	DestinationWarehouseID *string                `json:"destination_warehouse_id,omitempty"`
	DestinationShopID      *string                `json:"destination_shop_id,omitempty"`
	Status                 string                 `json:"status"`
	RequestDate            time.Time              `json:"request_date"`
	ShipDate               *time.Time             `json:"ship_date,omitempty"`
	ReceiveDate            *time.Time             `json:"receive_date,omitempty"`
	RequestedByUserID      string                 `json:"requested_by_user_id"`
	ShippedByUserID        *string                `json:"shipped_by_user_id,omitempty"`
	ReceivedByUserID       *string                `json:"received_by_user_id,omitempty"`
	Notes                  string                 `json:"notes"`
	Items                  []TransferItemResponse `json:"items,omitempty"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
}

// ListTransfersRequest filtros de listado de traslados.
type ListTransfersRequest struct {
	Status      string     `query:"status"`
	WarehouseID string     `query:"warehouse_id"`
	ShopID      string     `query:"shop_id"`
	RequestedBy string     `query:"requested_by"`
	DateFrom    *time.Time `query:"date_from"`
	DateTo      *time.Time `query:"date_to"`
	Search      string     `query:"search"`
	Limit       int        `query:"limit"`
	Offset      int        `query:"offset"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
