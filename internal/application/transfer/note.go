package transfer

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// DispatchNote genera la remisión (nota de despacho) en PDF de un traslado.
// Resuelve nombres de ubicaciones, solicitante y productos antes de delegar
// en el generador; es una operación de solo lectura.
func (uc *TransferUseCase) DispatchNote(ctx context.Context, id string) ([]byte, error) {
	t, err := uc.transferRepo.GetByID(id, true)
	if err != nil {
		return nil, fmt.Errorf("cargar traslado %s: %w", id, err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}

	srcKind, srcID := t.SourceLocation()
	dstKind, dstID := t.DestinationLocation()
	srcName, err := uc.locationName(srcKind, srcID)
	if err != nil {
		return nil, err
	}
	dstName, err := uc.locationName(dstKind, dstID)
	if err != nil {
		return nil, err
	}

	requestedBy := ""
	if t.RequestedByUserID != "" {
		user, err := uc.userRepo.GetByID(t.RequestedByUserID)
		if err != nil {
			return nil, fmt.Errorf("cargar solicitante: %w", err)
		}
		if user != nil {
			requestedBy = user.Name
		}
	}

	lines := make([]DispatchNoteLine, 0, len(t.Items))
	for _, item := range t.Items {
		line, err := uc.noteLine(item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	data := &DispatchNoteData{
		Transfer:        t,
		SourceName:      srcName,
		SourceKind:      srcKind,
		DestinationName: dstName,
		DestinationKind: dstKind,
		RequestedByName: requestedBy,
		Lines:           lines,
	}
	pdf, err := uc.pdfGen.GenerateDispatchNote(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("generar remisión %s: %w", t.TransferNumber, err)
	}
	return pdf, nil
}

// locationName resuelve el nombre legible de una ubicación por tipo e ID.
// Si la ubicación fue eliminada después del traslado se degrada al ID.
func (uc *TransferUseCase) locationName(kind, id string) (string, error) {
	switch kind {
	case entity.LocationKindWarehouse:
		w, err := uc.warehouseRepo.GetByID(id)
		if err != nil {
			return "", fmt.Errorf("cargar bodega %s: %w", id, err)
		}
		if w != nil {
			return w.Name, nil
		}
	case entity.LocationKindShop:
		s, err := uc.shopRepo.GetByID(id)
		if err != nil {
			return "", fmt.Errorf("cargar tienda %s: %w", id, err)
		}
		if s != nil {
			return s.Name, nil
		}
	}
	return id, nil
}

// noteLine resuelve nombres de producto y variante de una línea.
func (uc *TransferUseCase) noteLine(item *entity.StockTransferItem) (DispatchNoteLine, error) {
	line := DispatchNoteLine{
		QuantityRequested: item.QuantityRequested,
		QuantityShipped:   item.QuantityShipped,
		QuantityReceived:  item.QuantityReceived,
	}

	p, err := uc.productRepo.GetByID(item.ProductID)
	if err != nil {
		return line, fmt.Errorf("cargar producto %s: %w", item.ProductID, err)
	}
	if p != nil {
		line.SKU = p.SKU
		line.ProductName = p.Name
	} else {
		line.ProductName = item.ProductID
	}

	if item.ProductVariantID != nil {
		v, err := uc.variantRepo.GetByID(*item.ProductVariantID)
		if err != nil {
			return line, fmt.Errorf("cargar variante %s: %w", *item.ProductVariantID, err)
		}
		if v != nil {
			line.VariantName = v.Name
			if v.SKU != "" {
				line.SKU = v.SKU
			}
		}
	}
	return line, nil
}
