package sheets

import (
	"strconv"
	"strings"

	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo catálogo de artículos sobre la hoja Catalogo.
type ItemRepo struct {
	book *Workbook
}

// NewItemRepository construye el adaptador del catálogo.
func NewItemRepository(book *Workbook) *ItemRepo {
	return &ItemRepo{book: book}
}

// GetByID busca el artículo por ID. Devuelve nil si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

// List devuelve el catálogo completo en orden de hoja.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	v, err := r.book.HeaderView(SheetCatalog)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.Item, 0, len(v.Data))
	for _, row := range v.Data {
		id := v.Get(row, "ID", "")
		if id == "" {
			continue
		}
		minStock, _ := strconv.Atoi(v.Get(row, "StockMinimo", "0"))
		maxStock, _ := strconv.Atoi(v.Get(row, "StockMaximo", "0"))
		items = append(items, &entity.Item{
			ID:           id,
			SKU:          v.Get(row, "SKU", ""),
			Name:         v.Get(row, "Nombre", ""),
			Family:       v.Get(row, "Familia", ""),
			Unit:         v.Get(row, "Unidad", ""),
			MinStock:     minStock,
			MaxStock:     maxStock,
			Location:     v.Get(row, "Ubicacion", ""),
			Status:       v.Get(row, "Estado", ""),
			IsAsset:      isTruthy(v.Get(row, "ActivoFijo", "")),
			SerialNumber: v.Get(row, "NumeroSerie", ""),
		})
	}
	return items, nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "si", "sí", "x":
		return true
	}
	return false
}
