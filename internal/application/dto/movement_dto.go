package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementResponse salida de una entrada del ledger de stock (solo lectura).
type MovementResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductVariantID *string         `json:"product_variant_id,omitempty"`
	LocationKind     string          `json:"location_kind"`
	LocationID       string          `json:"location_id"`
	Type             string          `json:"type"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	MovementDate     time.Time       `json:"movement_date"`
	ReferenceType    string          `json:"reference_type"`
	ReferenceID      string          `json:"reference_id"`
	ReferenceItemID  *string         `json:"reference_item_id,omitempty"`
	Note             string          `json:"note,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos del ledger.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
