package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// Receive aplica una recepción (total o parcial) sobre un traslado IN_TRANSIT
// o PARTIALLY_RECEIVED. Por cada par: incrementa QuantityReceived acotado por
// lo enviado pendiente y asienta un movimiento TRANSFER_IN en el destino con
// la misma política de snapshot de costo que el envío. Al final el estado se
// deriva del conjunto completo de líneas: RECEIVED si todo lo enviado fue
// recibido (IN_TRANSIT puede saltar directo a RECEIVED en una sola recepción
// completa), PARTIALLY_RECEIVED si queda remanente. Misma atomicidad y
// bloqueo de cabecera que el envío.
func (uc *TransferUseCase) Receive(ctx context.Context, id, userID string, in dto.ReceiveTransferRequest) (*dto.TransferResponse, error) {
	if err := uc.validateActor(userID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("la recepción requiere al menos una línea: %w", domain.ErrInvalidRequest)
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
		if !t.CanReceive() {
			return fmt.Errorf("traslado %s en estado %s no se puede recibir: %w", id, t.Status, domain.ErrInvalidState)
		}

		now := time.Now()
		receiveDate := now
		if in.ReceiveDate != nil {
			receiveDate = *in.ReceiveDate
		}
		if t.ShipDate != nil && receiveDate.Before(*t.ShipDate) {
			return fmt.Errorf("receive_date anterior a ship_date: %w", domain.ErrInvalidRequest)
		}

		dstKind, dstID := t.DestinationLocation()
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
			if pair.QuantityReceived.IsNegative() {
				return fmt.Errorf("línea %s: quantity_received negativa: %w", pair.ItemID, domain.ErrInvalidRequest)
			}
			if pair.QuantityReceived.IsZero() {
				continue
			}
			remaining := item.RemainingToReceive()
			if pair.QuantityReceived.GreaterThan(remaining) {
				return fmt.Errorf("línea %s: recibir %s excede lo enviado pendiente %s: %w",
					pair.ItemID, pair.QuantityReceived, remaining, domain.ErrQuantityExceeded)
			}

			item.QuantityReceived = item.QuantityReceived.Add(pair.QuantityReceived)
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
				LocationKind:     dstKind,
				LocationID:       dstID,
				Type:             entity.MovementTypeTransferIn,
				Quantity:         pair.QuantityReceived,
				UnitCost:         unitCost,
				TotalCost:        pair.QuantityReceived.Mul(unitCost),
				MovementDate:     receiveDate,
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
			return fmt.Errorf("la recepción no incluye cantidades positivas: %w", domain.ErrInvalidRequest)
		}

		// Derivar el estado releyendo el conjunto completo de líneas.
		next := t.DeriveReceiptStatus()
		if next != t.Status {
			if err := t.TransitionTo(next); err != nil {
				return err
			}
		}
		t.ReceivedByUserID = &userID
		if t.ReceiveDate == nil || in.ReceiveDate != nil {
			t.ReceiveDate = &receiveDate
		}
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
		Str("status", out.Status).
		Msg("recepción aplicada")
	return out, nil
}
