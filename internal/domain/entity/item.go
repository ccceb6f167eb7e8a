package entity

// Item representa un artículo del catálogo. La identidad (ID, SKU) es inmutable;
// los campos descriptivos los administra un admin fuera del núcleo de stock.
type Item struct {
	ID           string
	SKU          string
	Name         string
	Family       string
	Unit         string
	MinStock     int
	MaxStock     int
	Location     string
	Status       string
	IsAsset      bool   // activo fijo: sale de a una unidad vía responsiva
	SerialNumber string
}
