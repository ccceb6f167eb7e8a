package dto

// CreateRequestRequest alta de una solicitud de compra.
type CreateRequestRequest struct {
	ProductName   string `json:"product_name"`
	EstimatedQty  string `json:"estimated_qty"`
	Justification string `json:"justification"`
	Specs         string `json:"specs"`
}

// OrderItem renglón de una orden de compra. RequestID enlaza la solicitud
// original cuando el renglón nace de una; puede ir vacío.
type OrderItem struct {
	RequestID   string `json:"request_id,omitempty"`
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
	UnitCost    string `json:"unit_cost"`
}

// OrderPayload contenido completo de la orden. Se serializa como un solo blob
// JSON en la celda Payload del borrador; esta struct le da forma tipada antes
// de serializar.
type OrderPayload struct {
	Provider     string      `json:"provider"`
	DeliveryDate string      `json:"delivery_date"`
	Notes        string      `json:"notes,omitempty"`
	Items        []OrderItem `json:"items"`
}

// SubmitOrderRequest envío de una orden a aprobación.
type SubmitOrderRequest struct {
	Order OrderPayload `json:"order"`
}

// SubmitOrderResponse identificador del borrador embebible en el enlace
// de aprobación de un solo uso.
type SubmitOrderResponse struct {
	DraftID string `json:"draft_id"`
}

// DraftResponse borrador pendiente devuelto por el enlace de aprobación.
type DraftResponse struct {
	DraftID   string       `json:"draft_id"`
	Order     OrderPayload `json:"order"`
	Requester string       `json:"requester"`
	Timestamp string       `json:"timestamp"`
}

// DecisionRequest decisión sobre una solicitud legacy.
type DecisionRequest struct {
	Action string `json:"action"` // "aprobar" | "rechazar"
}
