package transfer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// validateLocations verifica las ubicaciones de un traslado:
// exactamente una de bodega/tienda por lado, que cada referencia exista y no
// esté eliminada, y que origen y destino no sean la misma ubicación concreta.
// Solo lecturas; sin efectos secundarios.
func (uc *TransferUseCase) validateLocations(t *entity.StockTransfer) error {
	if err := uc.validateSide("origen", t.SourceWarehouseID, t.SourceShopID); err != nil {
		return err
	}
	if err := uc.validateSide("destino", t.DestinationWarehouseID, t.DestinationShopID); err != nil {
		return err
	}
	srcKind, srcID := t.SourceLocation()
	dstKind, dstID := t.DestinationLocation()
	if srcKind == dstKind && srcID == dstID {
		return fmt.Errorf("origen y destino son la misma ubicación (%s %s): %w", srcKind, srcID, domain.ErrInvalidRequest)
	}
	return nil
}

// validateSide aplica la regla "exactamente una de bodega/tienda" a un lado y
// resuelve la referencia contra su repositorio.
func (uc *TransferUseCase) validateSide(side string, warehouseID, shopID *string) error {
	hasWarehouse := warehouseID != nil && *warehouseID != ""
	hasShop := shopID != nil && *shopID != ""
	if hasWarehouse == hasShop {
		return fmt.Errorf("%s: se requiere exactamente una de bodega o tienda: %w", side, domain.ErrInvalidRequest)
	}
	if hasWarehouse {
		wh, err := uc.warehouseRepo.GetByID(*warehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("%s: bodega %s: %w", side, *warehouseID, domain.ErrReferenceNotFound)
		}
		return nil
	}
	shop, err := uc.shopRepo.GetByID(*shopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return fmt.Errorf("%s: tienda %s: %w", side, *shopID, domain.ErrReferenceNotFound)
	}
	return nil
}

// validateItems verifica cada línea solicitada: producto existente y no
// eliminado, variante (si viene) perteneciente al mismo producto, y cantidad
// solicitada estrictamente positiva. No se aceptan líneas anónimas.
func (uc *TransferUseCase) validateItems(items []dto.TransferItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("se requiere al menos una línea: %w", domain.ErrInvalidRequest)
	}
	for idx, in := range items {
		if in.ProductID == "" {
			return fmt.Errorf("línea %d: product_id es requerido: %w", idx, domain.ErrInvalidRequest)
		}
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("línea %d: producto %s: %w", idx, in.ProductID, domain.ErrReferenceNotFound)
		}
		if in.ProductVariantID != nil && *in.ProductVariantID != "" {
			variant, err := uc.variantRepo.GetByID(*in.ProductVariantID)
			if err != nil {
				return err
			}
			if variant == nil {
				return fmt.Errorf("línea %d: variante %s: %w", idx, *in.ProductVariantID, domain.ErrReferenceNotFound)
			}
			if variant.ProductID != in.ProductID {
				return fmt.Errorf("línea %d: la variante %s no pertenece al producto %s: %w",
					idx, *in.ProductVariantID, in.ProductID, domain.ErrInvalidRequest)
			}
		}
		if !in.QuantityRequested.GreaterThan(decimal.Zero) {
			return fmt.Errorf("línea %d: quantity_requested debe ser positiva: %w", idx, domain.ErrInvalidRequest)
		}
	}
	return nil
}

// validateActor verifica que el usuario que ejecuta la acción exista.
func (uc *TransferUseCase) validateActor(userID string) error {
	if userID == "" {
		return fmt.Errorf("user_id es requerido: %w", domain.ErrInvalidRequest)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %s: %w", userID, domain.ErrReferenceNotFound)
	}
	return nil
}
