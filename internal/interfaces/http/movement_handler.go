package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// MovementHandler lecturas del ledger de movimientos de stock (protegido).
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// ListByTransfer godoc
// @Summary      Asientos del ledger generados por un traslado
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/transfers/{id}/movements [get]
func (h *MovementHandler) ListByTransfer(c *fiber.Ctx) error {
	out, err := h.uc.ListByReference(entity.ReferenceTypeStockTransfer, c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Asientos del ledger de una ubicación
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        location_kind  query  string  true   "warehouse o shop"
// @Param        location_id    query  string  true   "ID de la ubicación"
// @Param        date_from      query  string  false  "Desde (RFC3339)"
// @Param        date_to        query  string  false  "Hasta (RFC3339)"
// @Param        limit          query  int     false  "Límite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) ListByLocation(c *fiber.Ctx) error {
	kind := c.Query("location_kind")
	locID := c.Query("location_id")
	if kind == "" || locID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_kind y location_id son requeridos"})
	}
	if kind != entity.LocationKindWarehouse && kind != entity.LocationKindShop {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_kind debe ser warehouse o shop"})
	}

	var from, to *time.Time
	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválida, se espera RFC3339"})
		}
		from = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválida, se espera RFC3339"})
		}
		to = &t
	}

	limit, offset := pageParams(c)
	out, err := h.uc.ListByLocation(kind, locID, from, to, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
