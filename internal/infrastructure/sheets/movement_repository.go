package sheets

import (
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo kardex sobre la hoja Kardex. Sólo-apéndice por contrato:
// este adaptador no expone update ni delete sobre movimientos.
type MovementRepo struct {
	book *Workbook
}

// NewMovementRepository construye el adaptador del kardex.
func NewMovementRepository(book *Workbook) *MovementRepo {
	return &MovementRepo{book: book}
}

// Append registra un movimiento al final del kardex.
func (r *MovementRepo) Append(m *entity.Movement) error {
	return r.book.Append(SheetKardex, [][]interface{}{{
		m.ID, m.Timestamp, m.ItemID, m.Type, m.Quantity, m.Cost,
		m.Provider, m.Invoice, m.ExpirationDate, m.SerialNumber, m.ActorEmail,
	}})
}

// ListAll devuelve el kardex completo en orden del libro.
func (r *MovementRepo) ListAll() ([]entity.Movement, error) {
	v, err := r.book.HeaderView(SheetKardex)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Movement, 0, len(v.Data))
	for _, row := range v.Data {
		if v.Get(row, "ID", "") == "" {
			continue
		}
		out = append(out, entity.Movement{
			ID:             v.Get(row, "ID", ""),
			Timestamp:      v.Get(row, "Timestamp", ""),
			ItemID:         v.Get(row, "ItemID", ""),
			Type:           v.Get(row, "Tipo", ""),
			Quantity:       v.Get(row, "Cantidad", ""),
			Cost:           v.Get(row, "Costo", ""),
			Provider:       v.Get(row, "Proveedor", ""),
			Invoice:        v.Get(row, "Factura", ""),
			ExpirationDate: v.Get(row, "Caducidad", ""),
			SerialNumber:   v.Get(row, "NumeroSerie", ""),
			ActorEmail:     v.Get(row, "Usuario", ""),
		})
	}
	return out, nil
}

// ListByItem devuelve los movimientos de un artículo en orden del libro.
func (r *MovementRepo) ListByItem(itemID string) ([]entity.Movement, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Movement, 0)
	for _, m := range all {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}
