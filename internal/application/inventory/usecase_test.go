package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/application/inventory"
	"github.com/almacen-pro/almacen-api/internal/domain"
	"github.com/almacen-pro/almacen-api/internal/infrastructure/sheets"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type stockFixture struct {
	uc        *inventory.StockUseCase
	movements *sheets.MovementRepo
	lots      *sheets.LotRepo
	bulk      *sheets.BulkStockRepo
}

// newStockFixture arma el caso de uso sobre un libro en memoria con dos
// artículos de catálogo.
func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	book, err := sheets.Open("", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = book.Close() })
	require.NoError(t, sheets.Bootstrap(book))

	require.NoError(t, book.Append(sheets.SheetCatalog, [][]interface{}{
		{"A1", "SKU-001", "Leche entera", "Lácteos", "pieza", "5", "50", "R1", "activo", "", ""},
		{"F1", "SKU-900", "Laptop", "Equipo", "pieza", "0", "3", "TI", "activo", "1", "SN-778"},
	}))

	movements := sheets.NewMovementRepository(book)
	lots := sheets.NewLotRepository(book)
	bulk := sheets.NewBulkStockRepository(book)
	uc := inventory.NewStockUseCase(
		sheets.NewItemRepository(book), movements, lots, bulk, logger.Nop(),
	).WithClock(func() time.Time { return fixedNow })
	return &stockFixture{uc: uc, movements: movements, lots: lots, bulk: bulk}
}

func entry(itemID, qty, cost string) dto.EntryRequest {
	return dto.EntryRequest{ItemID: itemID, Quantity: qty, Cost: cost}
}

func TestRecordEntry_CantidadInvalida_NoApendiza(t *testing.T) {
	f := newStockFixture(t)

	cases := []dto.EntryRequest{
		entry("A1", "0", "10"),    // cantidad cero
		entry("A1", "-3", "10"),   // cantidad negativa
		entry("A1", "abc", "10"),  // cantidad no numérica
		entry("A1", "5", "-1.50"), // costo negativo
		entry("", "5", "10"),      // sin artículo
	}
	for _, in := range cases {
		err := f.uc.RecordEntry(context.Background(), in, "ana@almacen.test")
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "entrada %+v debe rechazarse", in)
	}

	all, err := f.movements.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all, "ninguna entrada inválida debe tocar el kardex")
}

func TestRecordEntry_ArticuloInexistente_NotFound(t *testing.T) {
	f := newStockFixture(t)
	err := f.uc.RecordEntry(context.Background(), entry("ZZZ", "5", "10"), "ana@almacen.test")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordEntry_Valida_LlegaAlKardex(t *testing.T) {
	f := newStockFixture(t)
	require.NoError(t, f.uc.RecordEntry(context.Background(), entry("A1", "10", "8.50"), "ana@almacen.test"))

	rows, err := f.movements.ListByItem("A1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "10", rows[0].Quantity)
	assert.Equal(t, "8.50", rows[0].Cost)
	assert.Equal(t, "ana@almacen.test", rows[0].ActorEmail)
}

// Con caducidad nace un lote; el kardex recibe la misma Entrada.
func TestRecordEntryWithTracking_ConCaducidad_CreaLote(t *testing.T) {
	f := newStockFixture(t)
	in := entry("A1", "12", "8.00")
	in.ExpirationDate = "2026-04-01"
	require.NoError(t, f.uc.RecordEntryWithTracking(context.Background(), in, "ana@almacen.test"))

	lots, err := f.lots.ListByItem("A1")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, 12, lots[0].InitialQuantity)
	assert.Equal(t, 12, lots[0].RemainingQty)
	assert.Equal(t, "2026-04-01", lots[0].ExpirationDate)

	bulk, err := f.bulk.Get("A1")
	require.NoError(t, err)
	assert.Nil(t, bulk, "la entrada perecedera no debe tocar el granel")

	kardex, err := f.movements.ListByItem("A1")
	require.NoError(t, err)
	assert.Len(t, kardex, 1, "el kardex debe reflejar la misma entrada")
}

// Sin caducidad se acumula el contador a granel (read-modify-write).
func TestRecordEntryWithTracking_SinCaducidad_AcumulaGranel(t *testing.T) {
	f := newStockFixture(t)
	require.NoError(t, f.uc.RecordEntryWithTracking(context.Background(), entry("A1", "7", "8.00"), "ana@almacen.test"))
	require.NoError(t, f.uc.RecordEntryWithTracking(context.Background(), entry("A1", "3", "9.00"), "ana@almacen.test"))

	bulk, err := f.bulk.Get("A1")
	require.NoError(t, err)
	require.NotNil(t, bulk)
	assert.Equal(t, 10, bulk.Quantity)

	lots, err := f.lots.ListByItem("A1")
	require.NoError(t, err)
	assert.Empty(t, lots)

	total, err := f.uc.CurrentStock(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, 10, total, "kardex y granel deben contar lo mismo")
}

// La salida de activo fijo siempre es cantidad 1, costo 0, con número de serie.
func TestRecordExit_ActivoFijo(t *testing.T) {
	f := newStockFixture(t)
	require.NoError(t, f.uc.RecordExit(context.Background(), "F1", "beto@almacen.test"))

	rows, err := f.movements.ListByItem("F1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].Quantity)
	assert.Equal(t, "0", rows[0].Cost)
	assert.Equal(t, "SN-778", rows[0].SerialNumber)
}

// La importación por lotes sigue en secuencia: la fila corrupta se reporta
// con su artículo y las demás se procesan normal.
func TestBulkImport_FallaParcialNoDetieneElResto(t *testing.T) {
	f := newStockFixture(t)
	result := f.uc.BulkImport(context.Background(), []dto.EntryRequest{
		entry("A1", "10", "8.00"),
		entry("A1", "abc", "8.00"),
		entry("A1", "5", "9.00"),
	}, "ana@almacen.test")

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "A1", result.Errors[0].ItemID)

	total, err := f.uc.CurrentStock(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, 15, total, "sólo las filas válidas cuentan en el stock")
}

func TestCurrentStock_SinMovimientos_Cero(t *testing.T) {
	f := newStockFixture(t)
	total, err := f.uc.CurrentStock(context.Background(), "A1")
	require.NoError(t, err)
	assert.Zero(t, total)
}
