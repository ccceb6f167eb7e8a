package repository

import "github.com/almacen-pro/almacen-api/internal/domain/entity"

// ItemRepository puerto de lectura del catálogo de artículos.
type ItemRepository interface {
	GetByID(id string) (*entity.Item, error)
	List() ([]*entity.Item, error)
}
