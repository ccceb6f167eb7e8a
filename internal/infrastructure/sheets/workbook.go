// Package sheets implementa la persistencia tabular sobre un libro .xlsx
// (excelize): el libro de cálculo actúa como base de datos sustituta.
// Cada hoja es una tabla; la fila 1 es el header por convención.
package sheets

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/almacen-pro/almacen-api/pkg/logger"
)

// Workbook adaptador tipado sobre el libro. Todas las mutaciones persisten de
// inmediato; con Path vacío el libro vive sólo en memoria (tests). Cualquier
// fallo de E/S se propaga al caller sin reintentos: la política de reintento
// es responsabilidad de quien llama.
type Workbook struct {
	mu   sync.Mutex
	file *excelize.File
	path string
	log  *logger.Logger
}

// Open abre el libro en path, creándolo si no existe. Path vacío = en memoria.
func Open(path string, log *logger.Logger) (*Workbook, error) {
	if path == "" {
		return &Workbook{file: excelize.NewFile(), log: log}, nil
	}
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("abrir libro %s: %w", path, err)
		}
		return &Workbook{file: f, path: path, log: log}, nil
	}
	w := &Workbook{file: excelize.NewFile(), path: path, log: log}
	if err := w.persist(); err != nil {
		return nil, err
	}
	return w, nil
}

// Close libera el libro subyacente.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// EnsureSheet garantiza que la hoja exista con el header dado en la fila 1.
// Si ya existe no la toca.
func (w *Workbook) EnsureSheet(name string, header []interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("buscar hoja %s: %w", name, err)
	}
	if idx >= 0 {
		return nil
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("crear hoja %s: %w", name, err)
	}
	if err := w.file.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("header de %s: %w", name, err)
	}
	return w.persist()
}

// SheetIndex devuelve el índice de la hoja, o -1 si no existe.
func (w *Workbook) SheetIndex(name string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.GetSheetIndex(name)
}

// Rows devuelve todas las filas de la hoja en orden, header incluido.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowsLocked(sheet)
}

func (w *Workbook) rowsLocked(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}
	return rows, nil
}

// Append agrega filas al final de la hoja sin reordenar las existentes.
func (w *Workbook) Append(sheet string, rows [][]interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	existing, err := w.rowsLocked(sheet)
	if err != nil {
		return err
	}
	next := len(existing) + 1
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, next+i)
		if err != nil {
			return err
		}
		r := row
		if err := w.file.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("append en %s: %w", sheet, err)
		}
	}
	return w.persist()
}

// Update sobrescribe en sitio un rango acotado que inicia en startRow (1-based).
func (w *Workbook) Update(sheet string, startRow int, rows [][]interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return err
		}
		r := row
		if err := w.file.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("update en %s: %w", sheet, err)
		}
	}
	return w.persist()
}

// Clear blanquea las filas desde fromRow (1-based) hacia abajo sin quitar la
// estructura de la hoja.
func (w *Workbook) Clear(sheet string, fromRow int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	rows, err := w.rowsLocked(sheet)
	if err != nil {
		return err
	}
	for i := fromRow; i <= len(rows); i++ {
		width := len(rows[i-1])
		if width == 0 {
			continue
		}
		blank := make([]interface{}, width)
		for j := range blank {
			blank[j] = ""
		}
		cell, err := excelize.CoordinatesToCellName(1, i)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(sheet, cell, &blank); err != nil {
			return fmt.Errorf("clear en %s: %w", sheet, err)
		}
	}
	return w.persist()
}

// DeleteRows elimina las filas [start, end] (1-based, inclusive) desplazando
// las siguientes hacia arriba.
func (w *Workbook) DeleteRows(sheet string, start, end int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := end; i >= start; i-- {
		if err := w.file.RemoveRow(sheet, i); err != nil {
			return fmt.Errorf("borrar fila %d de %s: %w", i, sheet, err)
		}
	}
	return w.persist()
}

func (w *Workbook) persist() error {
	if w.path == "" {
		return nil
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("guardar libro: %w", err)
	}
	return nil
}

// ── Vista header-aware ───────────────────────────────────────────────────────

// View vista de una hoja cuya fila 1 es header: mapeo nombre → índice de
// columna (case-insensitive, trimmed) más las filas de datos debajo.
type View struct {
	sheet string
	cols  map[string]int
	Data  [][]string
	log   *logger.Logger
}

// HeaderView construye la vista header-aware de la hoja.
func (w *Workbook) HeaderView(sheet string) (*View, error) {
	rows, err := w.Rows(sheet)
	if err != nil {
		return nil, err
	}
	v := &View{sheet: sheet, cols: make(map[string]int), log: w.log}
	if len(rows) == 0 {
		return v, nil
	}
	for i, name := range rows[0] {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, dup := v.cols[key]; !dup {
			v.cols[key] = i
		}
	}
	v.Data = rows[1:]
	return v, nil
}

// Col devuelve el índice de la columna, o -1 si el nombre no está en el header.
func (v *View) Col(name string) int {
	if i, ok := v.cols[normalize(name)]; ok {
		return i
	}
	return -1
}

// Get accessor seguro: devuelve la celda de la columna pedida o def si la
// columna no existe en el header (con warning) o la fila es corta.
func (v *View) Get(row []string, name, def string) string {
	i := v.Col(name)
	if i < 0 {
		if v.log != nil {
			v.log.Warn().Str("sheet", v.sheet).Str("column", name).Msg("columna ausente en header, usando valor por defecto")
		}
		return def
	}
	if i >= len(row) {
		return def
	}
	return row[i]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
