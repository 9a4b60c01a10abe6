package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// numberAttempts reintentos de generación si el número de traslado colisiona.
const numberAttempts = 5

// TransferUseCase orquesta el ciclo de vida de los traslados de stock:
// crear → enviar (parcial) → recibir (parcial) → recibido, con cancelación y
// borrado lógico. Cada operación mutadora corre en una sola transacción que
// abarca cabecera, líneas y asientos del ledger.
// Se construye una vez en el arranque y se inyecta; no guarda estado propio.
type TransferUseCase struct {
	txRunner      TxRunner
	transferRepo  repository.StockTransferRepository
	warehouseRepo repository.WarehouseRepository
	shopRepo      repository.ShopRepository
	productRepo   repository.ProductRepository
	variantRepo   repository.ProductVariantRepository
	userRepo      repository.UserRepository
	pdfGen        DispatchNotePDFGenerator
	log           *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.StockTransferRepository,
	warehouseRepo repository.WarehouseRepository,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	userRepo repository.UserRepository,
	pdfGen DispatchNotePDFGenerator,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		shopRepo:      shopRepo,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		userRepo:      userRepo,
		pdfGen:        pdfGen,
		log:           log,
	}
}

// Create crea un traslado en estado PENDING con al menos una línea.
// Valida ubicaciones y líneas antes de abrir la transacción (fail fast) y
// genera un número de traslado único no secuencial.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if err := uc.validateActor(userID); err != nil {
		return nil, err
	}
	if err := uc.validateItems(in.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	requestDate := now
	if in.RequestDate != nil {
		requestDate = *in.RequestDate
	}
	t := &entity.StockTransfer{
		ID:                     uuid.New().String(),
		SourceWarehouseID:      normalizeID(in.SourceWarehouseID),
		SourceShopID:           normalizeID(in.SourceShopID),
		DestinationWarehouseID: normalizeID(in.DestinationWarehouseID),
		DestinationShopID:      normalizeID(in.DestinationShopID),
		Status:                 entity.TransferStatusPending,
		RequestDate:            requestDate,
		RequestedByUserID:      userID,
		Notes:                  in.Notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.validateLocations(t); err != nil {
		return nil, err
	}

	number, err := uc.uniqueNumber(now)
	if err != nil {
		return nil, err
	}
	t.TransferNumber = number
	t.Items = buildItems(t.ID, in.Items, now)

	err = uc.txRunner.Run(ctx, func(
		transferRepo repository.StockTransferRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		return transferRepo.Create(t)
	})
	if err != nil {
		return nil, fmt.Errorf("crear traslado: %w", err)
	}

	uc.log.Info().
		Str("transfer_id", t.ID).
		Str("transfer_number", t.TransferNumber).
		Int("items", len(t.Items)).
		Msg("traslado creado")
	return toTransferResponse(t, true), nil
}

// Update edita cabecera y/o líneas de un traslado PENDING. Si vienen líneas,
// el conjunto se reemplaza completo: las existentes se descartan y los
// contadores de envío/recepción vuelven a cero (todavía no hubo envío).
func (uc *TransferUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateTransferRequest) (*dto.TransferResponse, error) {
	if err := uc.validateActor(userID); err != nil {
		return nil, err
	}

	var out *dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(
		transferRepo repository.StockTransferRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		t, err := transferRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
		}
		if !t.CanUpdate() {
			return fmt.Errorf("traslado %s en estado %s no es editable: %w", id, t.Status, domain.ErrForbidden)
		}

		now := time.Now()
		locationChanged := applyLocationChanges(t, in)
		if locationChanged {
			if err := uc.validateLocations(t); err != nil {
				return err
			}
		}
		if in.RequestDate != nil {
			t.RequestDate = *in.RequestDate
		}
		if in.Notes != nil {
			t.Notes = *in.Notes
		}
		t.UpdatedAt = now

		if in.Items != nil {
			if err := uc.validateItems(in.Items); err != nil {
				return err
			}
			t.Items = buildItems(t.ID, in.Items, now)
			if err := transferRepo.ReplaceItems(t.ID, t.Items); err != nil {
				return err
			}
		}
		if err := transferRepo.UpdateHeader(t); err != nil {
			return err
		}
		out = toTransferResponse(t, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel cancela un traslado PENDING. CANCELLED es estado terminal.
func (uc *TransferUseCase) Cancel(ctx context.Context, id, userID string) (*dto.TransferResponse, error) {
	if err := uc.validateActor(userID); err != nil {
		return nil, err
	}
	var out *dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(
		transferRepo repository.StockTransferRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		t, err := transferRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
		}
		if !t.CanCancel() {
			return fmt.Errorf("traslado %s en estado %s no se puede cancelar: %w", id, t.Status, domain.ErrForbidden)
		}
		if err := t.TransitionTo(entity.TransferStatusCancelled); err != nil {
			return err
		}
		t.UpdatedAt = time.Now()
		if err := transferRepo.UpdateHeader(t); err != nil {
			return err
		}
		out = toTransferResponse(t, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transfer_id", id).Msg("traslado cancelado")
	return out, nil
}

// Delete hace borrado lógico de un traslado PENDING o CANCELLED.
// Las líneas permanecen para auditoría.
func (uc *TransferUseCase) Delete(ctx context.Context, id, userID string) error {
	if err := uc.validateActor(userID); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		transferRepo repository.StockTransferRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		t, err := transferRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
		}
		if !t.CanDelete() {
			return fmt.Errorf("traslado %s en estado %s no se puede eliminar: %w", id, t.Status, domain.ErrInvalidRequest)
		}
		return transferRepo.SoftDelete(id, time.Now())
	})
}

// GetByID retorna un traslado con líneas opcionales; sin mutación de estado.
func (uc *TransferUseCase) GetByID(id string, withItems bool) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(id, withItems)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
	}
	return toTransferResponse(t, withItems), nil
}

// List lista traslados con filtros por estado, ubicación, solicitante, rango
// de fechas y búsqueda de texto sobre número y notas.
func (uc *TransferUseCase) List(in dto.ListTransfersRequest) (*dto.TransferListResponse, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.Normalize()
	limit, offset := page.Limit, page.Offset
	filter := repository.TransferFilter{
		Status:      in.Status,
		WarehouseID: in.WarehouseID,
		ShopID:      in.ShopID,
		RequestedBy: in.RequestedBy,
		DateFrom:    in.DateFrom,
		DateTo:      in.DateTo,
		Search:      in.Search,
		Limit:       limit,
		Offset:      offset,
	}
	list, err := uc.transferRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.transferRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t, false))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// uniqueNumber genera el número de traslado y verifica colisiones contra la
// BD (incluye eliminados: un número nunca se reutiliza).
func (uc *TransferUseCase) uniqueNumber(now time.Time) (string, error) {
	for i := 0; i < numberAttempts; i++ {
		number := newTransferNumber(now)
		exists, err := uc.transferRepo.ExistsNumber(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("no fue posible generar un número de traslado único: %w", domain.ErrInternal)
}

// applyLocationChanges aplica los punteros de ubicación del request sobre la
// entidad; retorna true si algún lado cambió. Un puntero a cadena vacía limpia
// el campo (permite cambiar bodega por tienda en el mismo lado).
func applyLocationChanges(t *entity.StockTransfer, in dto.UpdateTransferRequest) bool {
	changed := false
	if in.SourceWarehouseID != nil {
		t.SourceWarehouseID = normalizeID(in.SourceWarehouseID)
		changed = true
	}
	if in.SourceShopID != nil {
		t.SourceShopID = normalizeID(in.SourceShopID)
		changed = true
	}
	if in.DestinationWarehouseID != nil {
		t.DestinationWarehouseID = normalizeID(in.DestinationWarehouseID)
		changed = true
	}
	if in.DestinationShopID != nil {
		t.DestinationShopID = normalizeID(in.DestinationShopID)
		changed = true
	}
	return changed
}

// normalizeID convierte punteros a cadena vacía en nil.
func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// buildItems materializa las líneas solicitadas con contadores en cero.
func buildItems(transferID string, items []dto.TransferItemRequest, now time.Time) []*entity.StockTransferItem {
	out := make([]*entity.StockTransferItem, 0, len(items))
	for _, in := range items {
		out = append(out, &entity.StockTransferItem{
			ID:                uuid.New().String(),
			TransferID:        transferID,
			ProductID:         in.ProductID,
			ProductVariantID:  normalizeID(in.ProductVariantID),
			QuantityRequested: in.QuantityRequested,
			QuantityShipped:   decimal.Zero,
			QuantityReceived:  decimal.Zero,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return out
}

func toTransferResponse(t *entity.StockTransfer, withItems bool) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	resp := &dto.TransferResponse{
		ID:                     t.ID,
		TransferNumber:         t.TransferNumber,
		SourceWarehouseID:      t.SourceWarehouseID,
		SourceShopID:           t.SourceShopID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		DestinationShopID:      t.DestinationShopID,
		Status:                 t.Status,
		RequestDate:            t.RequestDate,
		ShipDate:               t.ShipDate,
		ReceiveDate:            t.ReceiveDate,
		RequestedByUserID:      t.RequestedByUserID,
		ShippedByUserID:        t.ShippedByUserID,
		ReceivedByUserID:       t.ReceivedByUserID,
		Notes:                  t.Notes,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
	if withItems {
		resp.Items = make([]dto.TransferItemResponse, 0, len(t.Items))
		for _, it := range t.Items {
			resp.Items = append(resp.Items, dto.TransferItemResponse{
				ID:                it.ID,
				ProductID:         it.ProductID,
				ProductVariantID:  it.ProductVariantID,
				QuantityRequested: it.QuantityRequested,
				QuantityShipped:   it.QuantityShipped,
				QuantityReceived:  it.QuantityReceived,
			})
		}
	}
	return resp
}
