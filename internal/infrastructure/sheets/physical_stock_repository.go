package sheets

import (
	"strconv"

	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
)

var (
	_ repository.LotRepository       = (*LotRepo)(nil)
	_ repository.BulkStockRepository = (*BulkStockRepo)(nil)
)

// LotRepo lotes perecederos sobre la hoja Lotes.
type LotRepo struct {
	book *Workbook
}

// NewLotRepository construye el adaptador de lotes.
func NewLotRepository(book *Workbook) *LotRepo {
	return &LotRepo{book: book}
}

// Create agrega un lote nuevo al final de la hoja.
func (r *LotRepo) Create(lot *entity.Lot) error {
	return r.book.Append(SheetLots, [][]interface{}{{
		lot.ID, lot.ItemID, strconv.Itoa(lot.InitialQuantity),
		strconv.Itoa(lot.RemainingQty), lot.ExpirationDate, lot.Timestamp,
	}})
}

// ListAll devuelve todos los lotes en orden de hoja.
func (r *LotRepo) ListAll() ([]entity.Lot, error) {
	v, err := r.book.HeaderView(SheetLots)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Lot, 0, len(v.Data))
	for _, row := range v.Data {
		id := v.Get(row, "ID", "")
		if id == "" {
			continue
		}
		initial, _ := strconv.Atoi(v.Get(row, "CantidadInicial", "0"))
		remaining, _ := strconv.Atoi(v.Get(row, "CantidadRestante", "0"))
		out = append(out, entity.Lot{
			ID:              id,
			ItemID:          v.Get(row, "ItemID", ""),
			InitialQuantity: initial,
			RemainingQty:    remaining,
			ExpirationDate:  v.Get(row, "Caducidad", ""),
			Timestamp:       v.Get(row, "Timestamp", ""),
		})
	}
	return out, nil
}

// ListByItem devuelve los lotes de un artículo.
func (r *LotRepo) ListByItem(itemID string) ([]entity.Lot, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Lot, 0)
	for _, l := range all {
		if l.ItemID == itemID {
			out = append(out, l)
		}
	}
	return out, nil
}

// BulkStockRepo contador de stock no perecedero sobre la hoja StockGranel.
type BulkStockRepo struct {
	book *Workbook
}

// NewBulkStockRepository construye el adaptador del contador a granel.
func NewBulkStockRepository(book *Workbook) *BulkStockRepo {
	return &BulkStockRepo{book: book}
}

// Get busca la fila del artículo. Devuelve nil si aún no tiene contador.
func (r *BulkStockRepo) Get(itemID string) (*entity.BulkStock, error) {
	v, err := r.book.HeaderView(SheetBulk)
	if err != nil {
		return nil, err
	}
	for _, row := range v.Data {
		if v.Get(row, "ItemID", "") != itemID {
			continue
		}
		qty, _ := strconv.Atoi(v.Get(row, "Cantidad", "0"))
		return &entity.BulkStock{ItemID: itemID, Quantity: qty}, nil
	}
	return nil, nil
}

// Upsert sobrescribe la fila del artículo si existe, o la agrega al final.
func (r *BulkStockRepo) Upsert(stock *entity.BulkStock) error {
	v, err := r.book.HeaderView(SheetBulk)
	if err != nil {
		return err
	}
	row := []interface{}{stock.ItemID, strconv.Itoa(stock.Quantity)}
	for i, data := range v.Data {
		if v.Get(data, "ItemID", "") == stock.ItemID {
			// fila de hoja = índice de datos + 2 (header en fila 1)
			return r.book.Update(SheetBulk, i+2, [][]interface{}{row})
		}
	}
	return r.book.Append(SheetBulk, [][]interface{}{row})
}

// ListAll devuelve todos los contadores en orden de hoja.
func (r *BulkStockRepo) ListAll() ([]entity.BulkStock, error) {
	v, err := r.book.HeaderView(SheetBulk)
	if err != nil {
		return nil, err
	}
	out := make([]entity.BulkStock, 0, len(v.Data))
	for _, row := range v.Data {
		id := v.Get(row, "ItemID", "")
		if id == "" {
			continue
		}
		qty, _ := strconv.Atoi(v.Get(row, "Cantidad", "0"))
		out = append(out, entity.BulkStock{ItemID: id, Quantity: qty})
	}
	return out, nil
}
