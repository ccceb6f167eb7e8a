package sheets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/almacen-api/internal/infrastructure/sheets"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

// openBook abre un libro en memoria con todas las hojas del esquema.
func openBook(t *testing.T) *sheets.Workbook {
	t.Helper()
	book, err := sheets.Open("", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = book.Close() })
	require.NoError(t, sheets.Bootstrap(book))
	return book
}

func TestBootstrap_CreaTodasLasHojasConHeader(t *testing.T) {
	book := openBook(t)

	for _, sheet := range []string{
		sheets.SheetCatalog, sheets.SheetKardex, sheets.SheetLots,
		sheets.SheetBulk, sheets.SheetRequests, sheets.SheetDrafts,
		sheets.SheetProviders, sheets.SheetTokens, sheets.SheetDirectory,
	} {
		idx, err := book.SheetIndex(sheet)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, 0, "debe existir la hoja %s", sheet)

		rows, err := book.Rows(sheet)
		require.NoError(t, err)
		require.NotEmpty(t, rows, "la hoja %s debe llevar header en la fila 1", sheet)
		assert.NotEmpty(t, rows[0])
	}
}

func TestBootstrap_Idempotente(t *testing.T) {
	book := openBook(t)
	require.NoError(t, book.Append(sheets.SheetBulk, [][]interface{}{{"A1", "10"}}))

	// Un segundo bootstrap no debe tocar los datos existentes.
	require.NoError(t, sheets.Bootstrap(book))

	rows, err := book.Rows(sheets.SheetBulk)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"A1", "10"}, rows[1])
}

func TestAppend_ConservaElOrden(t *testing.T) {
	book := openBook(t)
	require.NoError(t, book.Append(sheets.SheetDirectory, [][]interface{}{
		{"a@x", "admin"},
		{"b@x", "user"},
	}))
	require.NoError(t, book.Append(sheets.SheetDirectory, [][]interface{}{
		{"c@x", "supervisor"},
	}))

	rows, err := book.Rows(sheets.SheetDirectory)
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3
	assert.Equal(t, "a@x", rows[1][0])
	assert.Equal(t, "b@x", rows[2][0])
	assert.Equal(t, "c@x", rows[3][0])
}

func TestUpdate_SobrescribeEnSitio(t *testing.T) {
	book := openBook(t)
	require.NoError(t, book.Append(sheets.SheetBulk, [][]interface{}{
		{"A1", "10"},
		{"B2", "20"},
	}))

	require.NoError(t, book.Update(sheets.SheetBulk, 3, [][]interface{}{{"B2", "25"}}))

	rows, err := book.Rows(sheets.SheetBulk)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "10"}, rows[1], "la fila vecina no debe tocarse")
	assert.Equal(t, []string{"B2", "25"}, rows[2])
}

func TestDeleteRows_DesplazaHaciaArriba(t *testing.T) {
	book := openBook(t)
	require.NoError(t, book.Append(sheets.SheetDirectory, [][]interface{}{
		{"a@x", "admin"},
		{"b@x", "user"},
		{"c@x", "user"},
	}))

	require.NoError(t, book.DeleteRows(sheets.SheetDirectory, 3, 3))

	rows, err := book.Rows(sheets.SheetDirectory)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a@x", rows[1][0])
	assert.Equal(t, "c@x", rows[2][0], "la fila siguiente debe subir al hueco")
}

// ── Vista header-aware ───────────────────────────────────────────────────────

// El mapeo nombre → columna es case-insensitive y tolera espacios.
func TestHeaderView_NombresNormalizados(t *testing.T) {
	book := openBook(t)
	require.NoError(t, book.Append(sheets.SheetDirectory, [][]interface{}{
		{"a@x", "admin"},
	}))

	view, err := book.HeaderView(sheets.SheetDirectory)
	require.NoError(t, err)
	require.Len(t, view.Data, 1)

	assert.Equal(t, 0, view.Col("email"))
	assert.Equal(t, 0, view.Col("EMAIL"))
	assert.Equal(t, 0, view.Col("  Email  "))
	assert.Equal(t, 1, view.Col("rol"))
	assert.Equal(t, -1, view.Col("inexistente"))
}

// Get devuelve def con columna ausente o fila corta, sin reventar.
func TestHeaderView_GetSeguro(t *testing.T) {
	book := openBook(t)
	require.NoError(t, book.Append(sheets.SheetDirectory, [][]interface{}{
		{"a@x", "admin"},
		{"b@x"}, // fila corta: sin celda de rol
	}))

	view, err := book.HeaderView(sheets.SheetDirectory)
	require.NoError(t, err)
	require.Len(t, view.Data, 2)

	assert.Equal(t, "admin", view.Get(view.Data[0], "Rol", "user"))
	assert.Equal(t, "user", view.Get(view.Data[1], "Rol", "user"), "fila corta → valor por defecto")
	assert.Equal(t, "n/a", view.Get(view.Data[0], "ColumnaFantasma", "n/a"), "columna ausente → valor por defecto")
}
