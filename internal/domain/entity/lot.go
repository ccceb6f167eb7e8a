package entity

// Lot representa un lote físico de stock perecedero. Se lleva aparte del stock
// derivado del kardex y se suma de forma independiente en las vistas de planeación.
type Lot struct {
	ID              string
	ItemID          string
	InitialQuantity int
	RemainingQty    int
	ExpirationDate  string
	Timestamp       string
}

// BulkStock es el contador directo de stock no perecedero por artículo
// (read-modify-write en cada entrada, no derivado del kardex).
type BulkStock struct {
	ItemID   string
	Quantity int
}
