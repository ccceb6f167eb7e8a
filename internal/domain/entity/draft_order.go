package entity

// Estados de un borrador de orden. Aprobada y Rechazada son terminales.
const (
	DraftPendiente = "Pendiente"
	DraftAprobada  = "Aprobada"
	DraftRechazada = "Rechazada"
)

// DraftOrder borrador de orden de compra pendiente de aprobación.
// Payload es el contenido completo de la orden serializado como JSON opaco
// en una sola celda; el enlace de aprobación embebe el ID y sólo resuelve
// mientras el estado siga Pendiente.
type DraftOrder struct {
	ID        string
	Payload   string // JSON opaco
	Status    string
	Timestamp string
	Requester string // email
}
