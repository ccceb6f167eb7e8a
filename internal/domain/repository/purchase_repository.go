package repository

import "github.com/almacen-pro/almacen-api/internal/domain/entity"

// RequestRepository puerto de solicitudes de compra.
type RequestRepository interface {
	Create(req *entity.PurchaseRequest) error
	List() ([]entity.PurchaseRequest, error)
	// Decide sobrescribe status/approver/timestamp de la única fila con ese ID
	// cuyo estado siga Pendiente, en una sola escritura acotada.
	// Devuelve domain.ErrNotFound si no hay fila Pendiente con ese ID.
	Decide(id, status, approver, decidedAt string) error
	// MarkInProcess transiciona Pendiente → En Proceso enriqueciendo
	// proveedor, costo y fecha de entrega en la misma fila.
	MarkInProcess(id, provider, cost, deliveryDate string) error
}

// DraftRepository puerto de borradores de orden.
type DraftRepository interface {
	Create(draft *entity.DraftOrder) error
	// GetPending devuelve el borrador sólo si su estado sigue Pendiente;
	// cualquier otro estado o ID inexistente es domain.ErrNotFound.
	GetPending(id string) (*entity.DraftOrder, error)
	// Get devuelve el borrador en cualquier estado (lo usan approve/reject).
	Get(id string) (*entity.DraftOrder, error)
	SetStatus(id, status string) error
}

// ProviderRepository puerto del catálogo de proveedores.
type ProviderRepository interface {
	GetByName(name string) (*entity.Provider, error)
	List() ([]entity.Provider, error)
	UpdatePriceHistory(id, historyJSON string) error
}
