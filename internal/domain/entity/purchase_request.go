package entity

// Estados de una solicitud de compra. Pendiente → En Proceso es de una sola vía.
const (
	RequestPendiente = "Pendiente"
	RequestEnProceso = "En Proceso"
)

// PurchaseRequest solicitud de compra creada por cualquier usuario autenticado.
// Un admin/supervisor la selecciona hacia una orden de compra, enriqueciéndola
// con proveedor, costo y fecha de entrega.
type PurchaseRequest struct {
	ID           string
	Timestamp    string
	Requester    string // email
	ProductName  string
	EstimatedQty string
	Justification string
	Specs        string
	Status       string
	Provider     string
	Cost         string
	DeliveryDate string
	Approver     string
	DecidedAt    string
}
