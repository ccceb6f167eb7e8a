package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/almacen-api/internal/application/report"
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/infrastructure/sheets"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

type reportFixture struct {
	uc        *report.ReportUseCase
	movements *sheets.MovementRepo
	lots      *sheets.LotRepo
	bulk      *sheets.BulkStockRepo
}

// newReportFixture arma el caso de uso con dos artículos: A1 con mínimo 5 y
// B2 con mínimo 10.
func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	book, err := sheets.Open("", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = book.Close() })
	require.NoError(t, sheets.Bootstrap(book))

	require.NoError(t, book.Append(sheets.SheetCatalog, [][]interface{}{
		{"A1", "SKU-001", "Leche entera", "Lácteos", "pieza", "5", "50", "R1", "activo", "", ""},
		{"B2", "SKU-002", "Harina", "Abarrotes", "kg", "10", "100", "R2", "activo", "", ""},
	}))

	movements := sheets.NewMovementRepository(book)
	lots := sheets.NewLotRepository(book)
	bulk := sheets.NewBulkStockRepository(book)
	uc := report.NewReportUseCase(sheets.NewItemRepository(book), movements, lots, bulk, logger.Nop())
	return &reportFixture{uc: uc, movements: movements, lots: lots, bulk: bulk}
}

func (f *reportFixture) seedKardex(t *testing.T, rows ...entity.Movement) {
	t.Helper()
	for i := range rows {
		require.NoError(t, f.movements.Append(&rows[i]))
	}
}

func TestValuation_StockPorUltimoCosto(t *testing.T) {
	f := newReportFixture(t)
	f.seedKardex(t,
		entity.Movement{ID: "m1", ItemID: "A1", Type: entity.MovementEntrada, Quantity: "10", Cost: "8.00"},
		entity.Movement{ID: "m2", ItemID: "A1", Type: entity.MovementEntrada, Quantity: "5", Cost: "9.00"},
		entity.Movement{ID: "m3", ItemID: "A1", Type: entity.MovementSalida, Quantity: "3", Cost: "0"},
		entity.Movement{ID: "m4", ItemID: "B2", Type: entity.MovementEntrada, Quantity: "2", Cost: "20"},
	)

	rep, err := f.uc.Valuation(context.Background())
	require.NoError(t, err)

	// A1: (10+5-3)=12 × 9.00 = 108; B2: 2 × 20 = 40.
	assert.Equal(t, "148", rep.Total)
	require.Len(t, rep.Lines, 2)
	assert.Equal(t, 12, rep.Lines[0].Stock)
	assert.Equal(t, "9", rep.Lines[0].LastCost)
	assert.Equal(t, "108", rep.Lines[0].Value)
}

func TestValuation_SinMovimientos_Cero(t *testing.T) {
	f := newReportFixture(t)
	rep, err := f.uc.Valuation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0", rep.Total)
}

// Frontera inclusiva: stock == mínimo ya alerta.
func TestLowStock_FronteraInclusiva(t *testing.T) {
	f := newReportFixture(t)
	f.seedKardex(t,
		// A1 queda exactamente en su mínimo (5).
		entity.Movement{ID: "m1", ItemID: "A1", Type: entity.MovementEntrada, Quantity: "5", Cost: "8"},
		// B2 queda arriba de su mínimo (10).
		entity.Movement{ID: "m2", ItemID: "B2", Type: entity.MovementEntrada, Quantity: "11", Cost: "20"},
	)

	alerts, err := f.uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "A1", alerts[0].ItemID)
	assert.Equal(t, 5, alerts[0].Stock)
	assert.Equal(t, 5, alerts[0].MinStock)
}

// Las tres representaciones se suman de forma independiente, sin conciliarse.
func TestPlanning_TresRepresentacionesIndependientes(t *testing.T) {
	f := newReportFixture(t)
	f.seedKardex(t,
		entity.Movement{ID: "m1", ItemID: "A1", Type: entity.MovementEntrada, Quantity: "9", Cost: "8"},
	)
	require.NoError(t, f.lots.Create(&entity.Lot{ID: "l1", ItemID: "A1", InitialQuantity: 6, RemainingQty: 4, ExpirationDate: "2026-04-01"}))
	require.NoError(t, f.lots.Create(&entity.Lot{ID: "l2", ItemID: "A1", InitialQuantity: 3, RemainingQty: 3, ExpirationDate: "2026-05-01"}))
	require.NoError(t, f.bulk.Upsert(&entity.BulkStock{ItemID: "B2", Quantity: 25}))

	lines, err := f.uc.Planning(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, 9, lines[0].LedgerStock)
	assert.Equal(t, 7, lines[0].LotStock, "los lotes suman por remanente, no por cantidad inicial")
	assert.Zero(t, lines[0].BulkStock)

	assert.Zero(t, lines[1].LedgerStock)
	assert.Zero(t, lines[1].LotStock)
	assert.Equal(t, 25, lines[1].BulkStock)
}
