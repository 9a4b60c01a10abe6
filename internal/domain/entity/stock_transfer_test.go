package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

func str(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del traslado
// ──────────────────────────────────────────────────────────────────────────────

// allStatuses todos los estados del ciclo de vida, para recorrer la grilla completa.
var allStatuses = []string{
	entity.TransferStatusPending,
	entity.TransferStatusInTransit,
	entity.TransferStatusPartiallyReceived,
	entity.TransferStatusReceived,
	entity.TransferStatusCancelled,
}

// legalTransitions la grilla de transiciones legales esperada.
// Todo par (origen, destino) que no aparezca aquí debe rechazarse.
var legalTransitions = map[string]map[string]bool{
	entity.TransferStatusPending: {
		entity.TransferStatusInTransit: true,
		entity.TransferStatusCancelled: true,
	},
	entity.TransferStatusInTransit: {
		entity.TransferStatusPartiallyReceived: true,
		entity.TransferStatusReceived:          true,
	},
	entity.TransferStatusPartiallyReceived: {
		entity.TransferStatusReceived: true,
	},
	entity.TransferStatusReceived:  {},
	entity.TransferStatusCancelled: {},
}

// TestTransiciones_GrillaCompleta recorre todos los pares (estado, destino) y
// verifica que CanTransitionTo coincide exactamente con la grilla esperada:
// ni una transición legal rechazada ni una ilegal aceptada.
func TestTransiciones_GrillaCompleta(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			tr := &entity.StockTransfer{Status: from}
			expected := legalTransitions[from][to]
			assert.Equal(t, expected, tr.CanTransitionTo(to),
				"transición %s -> %s", from, to)
		}
	}
}

// TestTransitionTo_Legal aplica una transición permitida y verifica el cambio.
func TestTransitionTo_Legal(t *testing.T) {
	tr := &entity.StockTransfer{Status: entity.TransferStatusPending}
	require.NoError(t, tr.TransitionTo(entity.TransferStatusInTransit))
	assert.Equal(t, entity.TransferStatusInTransit, tr.Status)
}

// TestTransitionTo_Ilegal verifica que una transición prohibida retorna
// ErrInvalidState y deja el estado intacto.
func TestTransitionTo_Ilegal(t *testing.T) {
	tr := &entity.StockTransfer{Status: entity.TransferStatusReceived}
	err := tr.TransitionTo(entity.TransferStatusPending)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"la transición desde un estado terminal debe fallar con ErrInvalidState")
	assert.Equal(t, entity.TransferStatusReceived, tr.Status,
		"el estado no debe mutar cuando la transición es rechazada")
}

// TestGuards verifica las guardas de operación por estado.
func TestGuards(t *testing.T) {
	cases := []struct {
		status     string
		canUpdate  bool
		canShip    bool
		canReceive bool
		canCancel  bool
		canDelete  bool
	}{
		{entity.TransferStatusPending, true, true, false, true, true},
		{entity.TransferStatusInTransit, false, false, true, false, false},
		{entity.TransferStatusPartiallyReceived, false, false, true, false, false},
		{entity.TransferStatusReceived, false, false, false, false, false},
		{entity.TransferStatusCancelled, false, false, false, false, true},
	}
	for _, c := range cases {
		tr := &entity.StockTransfer{Status: c.status}
		assert.Equal(t, c.canUpdate, tr.CanUpdate(), "CanUpdate en %s", c.status)
		assert.Equal(t, c.canShip, tr.CanShip(), "CanShip en %s", c.status)
		assert.Equal(t, c.canReceive, tr.CanReceive(), "CanReceive en %s", c.status)
		assert.Equal(t, c.canCancel, tr.CanCancel(), "CanCancel en %s", c.status)
		assert.Equal(t, c.canDelete, tr.CanDelete(), "CanDelete en %s", c.status)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones origen/destino
// ──────────────────────────────────────────────────────────────────────────────

func TestSourceLocation_Bodega(t *testing.T) {
	tr := &entity.StockTransfer{SourceWarehouseID: str("wh-1")}
	kind, id := tr.SourceLocation()
	assert.Equal(t, entity.LocationKindWarehouse, kind)
	assert.Equal(t, "wh-1", id)
}

func TestDestinationLocation_Tienda(t *testing.T) {
	tr := &entity.StockTransfer{DestinationShopID: str("shop-9")}
	kind, id := tr.DestinationLocation()
	assert.Equal(t, entity.LocationKindShop, kind)
	assert.Equal(t, "shop-9", id)
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación del estado de recepción
// ──────────────────────────────────────────────────────────────────────────────

// TestDeriveReceiptStatus_TodoRecibido todo lo enviado fue recibido → RECEIVED.
func TestDeriveReceiptStatus_TodoRecibido(t *testing.T) {
	tr := &entity.StockTransfer{
		Status: entity.TransferStatusInTransit,
		Items: []*entity.StockTransferItem{
			{QuantityRequested: dec("10"), QuantityShipped: dec("10"), QuantityReceived: dec("10")},
			{QuantityRequested: dec("5"), QuantityShipped: dec("3"), QuantityReceived: dec("3")},
		},
	}
	assert.Equal(t, entity.TransferStatusReceived, tr.DeriveReceiptStatus(),
		"cuando cada línea tiene received == shipped el traslado está RECEIVED aunque shipped < requested")
}

// TestDeriveReceiptStatus_Parcial queda remanente por recibir → PARTIALLY_RECEIVED.
func TestDeriveReceiptStatus_Parcial(t *testing.T) {
	tr := &entity.StockTransfer{
		Status: entity.TransferStatusInTransit,
		Items: []*entity.StockTransferItem{
			{QuantityRequested: dec("10"), QuantityShipped: dec("10"), QuantityReceived: dec("4")},
		},
	}
	assert.Equal(t, entity.TransferStatusPartiallyReceived, tr.DeriveReceiptStatus())
}

// TestDeriveReceiptStatus_NadaEnviado sin unidades enviadas nunca hay RECEIVED,
// aunque trivialmente received == shipped en todas las líneas.
func TestDeriveReceiptStatus_NadaEnviado(t *testing.T) {
	tr := &entity.StockTransfer{
		Status: entity.TransferStatusInTransit,
		Items: []*entity.StockTransferItem{
			{QuantityRequested: dec("10"), QuantityShipped: decimal.Zero, QuantityReceived: decimal.Zero},
		},
	}
	assert.Equal(t, entity.TransferStatusPartiallyReceived, tr.DeriveReceiptStatus())
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes de las líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestItem_Remanentes(t *testing.T) {
	it := &entity.StockTransferItem{
		QuantityRequested: dec("10"),
		QuantityShipped:   dec("6"),
		QuantityReceived:  dec("2.5"),
	}
	assert.True(t, dec("4").Equal(it.RemainingToShip()))
	assert.True(t, dec("3.5").Equal(it.RemainingToReceive()))
	assert.False(t, it.FullyReceived())
}

func TestItem_QuantitiesValid(t *testing.T) {
	cases := []struct {
		name                         string
		requested, shipped, received string
		valid                        bool
	}{
		{"orden correcto", "10", "6", "2", true},
		{"todo en cero", "10", "0", "0", true},
		{"recibido igual a enviado", "10", "10", "10", true},
		{"enviado excede solicitado", "10", "11", "0", false},
		{"recibido excede enviado", "10", "5", "6", false},
		{"recibido negativo", "10", "5", "-1", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it := &entity.StockTransferItem{
				QuantityRequested: dec(c.requested),
				QuantityShipped:   dec(c.shipped),
				QuantityReceived:  dec(c.received),
			}
			assert.Equal(t, c.valid, it.QuantitiesValid())
		})
	}
}

// TestFindItem busca líneas por ID dentro del agregado.
func TestFindItem(t *testing.T) {
	tr := &entity.StockTransfer{
		Items: []*entity.StockTransferItem{
			{ID: "item-1"},
			{ID: "item-2"},
		},
	}
	require.NotNil(t, tr.FindItem("item-2"))
	assert.Equal(t, "item-2", tr.FindItem("item-2").ID)
	assert.Nil(t, tr.FindItem("ajena"), "una línea de otro traslado no debe encontrarse")
}
