package usecase

import (
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// MovementUseCase lecturas del ledger de movimientos de stock para reportes.
// Solo lectura: el ledger lo escribe exclusivamente el motor de traslados.
type MovementUseCase struct {
	repo repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// ListByReference lista los asientos generados por un documento (ej. un traslado).
func (uc *MovementUseCase) ListByReference(referenceType, referenceID string) (*dto.MovementListResponse, error) {
	list, err := uc.repo.ListByReference(referenceType, referenceID)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, 0, 0), nil
}

// ListByLocation lista asientos de una ubicación en un rango de fechas.
func (uc *MovementUseCase) ListByLocation(locationKind, locationID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.repo.ListByLocation(locationKind, locationID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, limit, offset), nil
}

func toMovementList(list []*entity.StockMovement, limit, offset int) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:               m.ID,
			ProductID:        m.ProductID,
			ProductVariantID: m.ProductVariantID,
			LocationKind:     m.LocationKind,
			LocationID:       m.LocationID,
			Type:             m.Type,
			Quantity:         m.Quantity,
			UnitCost:         m.UnitCost,
			TotalCost:        m.TotalCost,
			MovementDate:     m.MovementDate,
			ReferenceType:    m.ReferenceType,
			ReferenceID:      m.ReferenceID,
			ReferenceItemID:  m.ReferenceItemID,
			Note:             m.Note,
			CreatedBy:        m.CreatedBy,
			CreatedAt:        m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
