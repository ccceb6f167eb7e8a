package entity

// Provider proveedor del catálogo. PriceHistory se guarda como JSON
// (producto → {cost, date}) y se fusiona best-effort al emitir cada orden.
type Provider struct {
	ID           string
	Name         string
	Contact      string
	Phone        string
	Email        string
	PriceHistory string // JSON: map[productName]PriceEntry
}

// PriceEntry última cotización conocida de un producto con un proveedor.
type PriceEntry struct {
	Cost string `json:"cost"`
	Date string `json:"date"`
}
