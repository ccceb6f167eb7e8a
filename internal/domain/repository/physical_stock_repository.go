package repository

import "github.com/almacen-pro/almacen-api/internal/domain/entity"

// LotRepository puerto de lotes perecederos.
type LotRepository interface {
	Create(lot *entity.Lot) error
	ListByItem(itemID string) ([]entity.Lot, error)
	ListAll() ([]entity.Lot, error)
}

// BulkStockRepository puerto del contador de stock no perecedero.
// Get devuelve nil (sin error) cuando el artículo no tiene fila todavía.
type BulkStockRepository interface {
	Get(itemID string) (*entity.BulkStock, error)
	Upsert(stock *entity.BulkStock) error
	ListAll() ([]entity.BulkStock, error)
}
