package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cli/internal/application/inventory"
	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
	"github.com/jhoicas/inventario-cli/internal/infrastructure/csvstore"
	"github.com/jhoicas/inventario-cli/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newLedger arma un ledger real sobre un filesystem en memoria.
func newLedger(t *testing.T) (*inventory.StockLedger, *inventory.ItemUseCase) {
	t.Helper()
	fs := afero.NewMemMapFs()
	items, err := csvstore.NewItemStore(fs, "data")
	require.NoError(t, err)
	movements, err := csvstore.NewMovementStore(fs, "data")
	require.NoError(t, err)
	ledger := inventory.NewStockLedger(items, movements, logger.Nop())
	return ledger, inventory.NewItemUseCase(items)
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// failingMovementRepo falla todo Append para simular el corte entre la
// reescritura de stock y el log.
type failingMovementRepo struct{}

func (failingMovementRepo) List() ([]*entity.Movement, error) { return nil, nil }
func (failingMovementRepo) NextID() int64                     { return 5001 }
func (failingMovementRepo) Append(*entity.Movement) error     { return errors.New("disco lleno") }

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ArticuloInexistente(t *testing.T) {
	ledger, _ := newLedger(t)
	assert.ErrorIs(t, ledger.Adjust(1001, 5), domain.ErrItemNotFound)
}

// Un delta que dejaría la cantidad negativa falla y no toca nada.
func TestAdjust_StockInsuficiente(t *testing.T) {
	ledger, items := newLedger(t)
	it, err := items.Create("Widget", "Hardware", 10, price("2.50"))
	require.NoError(t, err)

	err = ledger.Adjust(it.ID, -11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := items.FindByID(it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity, "la cantidad no debe cambiar cuando el ajuste falla")
}

// Ajustar exactamente a cero es válido.
func TestAdjust_HastaCero(t *testing.T) {
	ledger, items := newLedger(t)
	it, err := items.Create("Widget", "Hardware", 10, price("2.50"))
	require.NoError(t, err)

	require.NoError(t, ledger.Adjust(it.ID, -10))
	got, err := items.FindByID(it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// IN suma exactamente n y deja un movimiento IN de cantidad n en el log;
// OUT resta n.
func TestRecordMovement_EfectosInYOut(t *testing.T) {
	ledger, items := newLedger(t)
	it, err := items.Create("Widget", "Hardware", 10, price("2.50"))
	require.NoError(t, err)

	receipt, err := ledger.RecordMovement(it.ID, entity.MovementIn, 5, "compra")
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusApplied, receipt.Status)
	assert.Equal(t, entity.MovementIn, receipt.Movement.Type)
	assert.Equal(t, 5, receipt.Movement.Quantity)

	got, err := items.FindByID(it.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity)

	_, err = ledger.RecordMovement(it.ID, entity.MovementOut, 4, "venta")
	require.NoError(t, err)
	got, err = items.FindByID(it.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, got.Quantity)

	movements, err := ledger.ListMovements()
	require.NoError(t, err)
	require.Len(t, movements, 2)
}

// Cantidad cero o negativa falla con ErrInvalidQuantity sin tocar el artículo
// ni el log.
func TestRecordMovement_CantidadInvalida(t *testing.T) {
	ledger, items := newLedger(t)
	it, err := items.Create("Widget", "Hardware", 10, price("2.50"))
	require.NoError(t, err)

	for _, qty := range []int{0, -3} {
		_, err = ledger.RecordMovement(it.ID, entity.MovementIn, qty, "x")
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}

	got, err := items.FindByID(it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	movements, err := ledger.ListMovements()
	require.NoError(t, err)
	assert.Empty(t, movements)
}

// Un OUT que dejaría el stock negativo falla con ErrInsufficientStock y no
// registra movimiento.
func TestRecordMovement_OutSinStock(t *testing.T) {
	ledger, items := newLedger(t)
	it, err := items.Create("Widget", "Hardware", 2, price("2.50"))
	require.NoError(t, err)

	_, err = ledger.RecordMovement(it.ID, entity.MovementOut, 3, "venta")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	movements, err := ledger.ListMovements()
	require.NoError(t, err)
	assert.Empty(t, movements)
}

// El timestamp del movimiento sale del reloj inyectado, truncado a segundos.
func TestRecordMovement_RelojInyectado(t *testing.T) {
	ledger, items := newLedger(t)
	fixed := time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.Local)
	ledger.WithClock(func() time.Time { return fixed })

	it, err := items.Create("Widget", "Hardware", 10, price("2.50"))
	require.NoError(t, err)

	receipt, err := ledger.RecordMovement(it.ID, entity.MovementIn, 1, "")
	require.NoError(t, err)
	assert.True(t, fixed.Truncate(time.Second).Equal(receipt.Movement.Timestamp))
}

// Si el append falla, el stock ya quedó reescrito: el recibo sale con
// StatusLogPending y el error envuelve ErrLedgerDiverged.
func TestRecordMovement_AppendFallidoDejaRecibo(t *testing.T) {
	fs := afero.NewMemMapFs()
	itemStore, err := csvstore.NewItemStore(fs, "data")
	require.NoError(t, err)
	items := inventory.NewItemUseCase(itemStore)
	ledger := inventory.NewStockLedger(itemStore, failingMovementRepo{}, logger.Nop())

	it, err := items.Create("Widget", "Hardware", 10, price("2.50"))
	require.NoError(t, err)

	receipt, err := ledger.RecordMovement(it.ID, entity.MovementOut, 3, "venta")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLedgerDiverged)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Pending())
	assert.Equal(t, int64(5001), receipt.Movement.ID)

	// El stock quedó aplicado: la divergencia es visible, no enmascarada.
	got, err := items.FindByID(it.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

// Store vacío → crear "Widget" devuelve 1001 → OUT 3 devuelve 5001 y deja
// stock 7 → OUT 100 falla con stock insuficiente y el stock sigue en 7.
func TestEscenario_CrearMoverYQuedarseSinStock(t *testing.T) {
	ledger, items := newLedger(t)

	it, err := items.Create("Widget", "Hardware", 10, price("2.50"))
	require.NoError(t, err)
	assert.Equal(t, int64(1001), it.ID)

	receipt, err := ledger.RecordMovement(1001, entity.MovementOut, 3, "sale")
	require.NoError(t, err)
	assert.Equal(t, int64(5001), receipt.Movement.ID)

	got, err := items.FindByID(1001)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	_, err = ledger.RecordMovement(1001, entity.MovementOut, 100, "bulk")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err = items.FindByID(1001)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListMovementsBetween
// ──────────────────────────────────────────────────────────────────────────────

// El rango es inclusivo en ambas fechas: [from 00:00, to+1d 00:00).
func TestListMovementsBetween_RangoInclusivo(t *testing.T) {
	ledger, items := newLedger(t)
	it, err := items.Create("Widget", "Hardware", 100, price("2.50"))
	require.NoError(t, err)

	days := []time.Time{
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local),
		time.Date(2024, 3, 2, 23, 59, 59, 0, time.Local),
		time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local),
	}
	for _, d := range days {
		day := d
		ledger.WithClock(func() time.Time { return day })
		_, err = ledger.RecordMovement(it.ID, entity.MovementOut, 1, "")
		require.NoError(t, err)
	}

	got, err := ledger.ListMovementsBetween(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local),
	)
	require.NoError(t, err)
	require.Len(t, got, 2, "el día 'hasta' cuenta completo; el día siguiente no")
	assert.Equal(t, days[0].Unix(), got[0].Timestamp.Unix())
	assert.Equal(t, days[1].Unix(), got[1].Timestamp.Unix())
}
