package dto

// ValuationLine valuación de un artículo: stock × último costo de entrada.
type ValuationLine struct {
	ItemID   string `json:"item_id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	LastCost string `json:"last_cost"`
	Value    string `json:"value"`
}

// ValuationResponse valuación total del inventario.
type ValuationResponse struct {
	Total string          `json:"total"`
	Lines []ValuationLine `json:"lines"`
}

// LowStockAlert artículo en o bajo su mínimo (frontera inclusiva).
type LowStockAlert struct {
	ItemID   string `json:"item_id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// PlanningLine vista de planeación de compras: las tres representaciones
// físicas de stock de un artículo, sumadas de forma independiente.
type PlanningLine struct {
	ItemID      string `json:"item_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	LedgerStock int    `json:"ledger_stock"`
	LotStock    int    `json:"lot_stock"`
	BulkStock   int    `json:"bulk_stock"`
}
