package repository

import "github.com/almacen-pro/almacen-api/internal/domain/entity"

// MovementRepository puerto del kardex. Sólo-apéndice: no hay update ni delete.
type MovementRepository interface {
	Append(m *entity.Movement) error
	ListAll() ([]entity.Movement, error)
	ListByItem(itemID string) ([]entity.Movement, error)
}
