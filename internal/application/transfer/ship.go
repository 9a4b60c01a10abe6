package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// Ship aplica un envío (total o parcial) sobre un traslado PENDING.
// Por cada par (línea, cantidad): incrementa QuantityShipped acotado por lo
// solicitado pendiente y asienta un movimiento TRANSFER_OUT en la ubicación
// origen, con el costo de compra vigente del producto como snapshot.
// Todo ocurre en una sola transacción con la cabecera bloqueada
// (SELECT FOR UPDATE): dos envíos concurrentes no pueden validar contra una
// lectura obsoleta y sobregirar la cantidad solicitada.
func (uc *TransferUseCase) Ship(ctx context.Context, id, userID string, in dto.ShipTransferRequest) (*dto.TransferResponse, error) {
	if err := uc.validateActor(userID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("el envío requiere al menos una línea: %w", domain.ErrInvalidRequest)
	}

	var out *dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(
		transferRepo repository.StockTransferRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		t, err := transferRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
		}
		if !t.CanShip() {
			return fmt.Errorf("traslado %s en estado %s no se puede enviar: %w", id, t.Status, domain.ErrInvalidState)
		}

		now := time.Now()
		shipDate := now
		if in.ShipDate != nil {
			shipDate = *in.ShipDate
		}
		if shipDate.Before(t.RequestDate) {
			return fmt.Errorf("ship_date anterior a request_date: %w", domain.ErrInvalidRequest)
		}

		srcKind, srcID := t.SourceLocation()
		note := t.Notes
		if in.Notes != nil {
			note = *in.Notes
		}

		applied := false
		for _, pair := range in.Items {
			item := t.FindItem(pair.ItemID)
			if item == nil {
				return fmt.Errorf("línea %s no pertenece al traslado %s: %w", pair.ItemID, id, domain.ErrInvalidRequest)
			}
			if pair.QuantityShipped.IsNegative() {
				return fmt.Errorf("línea %s: quantity_shipped negativa: %w", pair.ItemID, domain.ErrInvalidRequest)
			}
			if pair.QuantityShipped.IsZero() {
				continue
			}
			remaining := item.RemainingToShip()
			if pair.QuantityShipped.GreaterThan(remaining) {
				return fmt.Errorf("línea %s: enviar %s excede lo solicitado pendiente %s: %w",
					pair.ItemID, pair.QuantityShipped, remaining, domain.ErrQuantityExceeded)
			}

			item.QuantityShipped = item.QuantityShipped.Add(pair.QuantityShipped)
			item.UpdatedAt = now
			if err := transferRepo.UpdateItemQuantities(item); err != nil {
				return err
			}

			unitCost, err := uc.costSnapshot(productRepo, item.ProductID)
			if err != nil {
				return err
			}
			itemID := item.ID
			mov := &entity.StockMovement{
				ProductID:        item.ProductID,
				ProductVariantID: item.ProductVariantID,
				LocationKind:     srcKind,
				LocationID:       srcID,
				Type:             entity.MovementTypeTransferOut,
				Quantity:         pair.QuantityShipped.Neg(),
				UnitCost:         unitCost,
				TotalCost:        pair.QuantityShipped.Neg().Mul(unitCost),
				MovementDate:     shipDate,
				ReferenceType:    entity.ReferenceTypeStockTransfer,
				ReferenceID:      t.ID,
				ReferenceItemID:  &itemID,
				Note:             note,
				CreatedAt:        now,
				CreatedBy:        userID,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}
			applied = true
		}
		if !applied {
			return fmt.Errorf("el envío no incluye cantidades positivas: %w", domain.ErrInvalidRequest)
		}

		if err := t.TransitionTo(entity.TransferStatusInTransit); err != nil {
			return err
		}
		t.ShippedByUserID = &userID
		t.ShipDate = &shipDate
		if in.Notes != nil {
			t.Notes = *in.Notes
		}
		t.UpdatedAt = now
		if err := transferRepo.UpdateHeader(t); err != nil {
			return err
		}
		out = toTransferResponse(t, true)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transfer_id", id).
		Int("lines", len(in.Items)).
		Msg("traslado enviado")
	return out, nil
}

// costSnapshot lee el costo de compra vigente del producto al momento de la
// acción. Es un snapshot: cambios de costo posteriores no recalculan asientos.
func (uc *TransferUseCase) costSnapshot(productRepo repository.ProductRepository, productID string) (decimal.Decimal, error) {
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, fmt.Errorf("producto %s: %w", productID, domain.ErrReferenceNotFound)
	}
	return product.DefaultPurchaseCost, nil
}
