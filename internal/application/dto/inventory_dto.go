package dto

// EntryRequest entrada de inventario (unitaria o fila de importación por lotes).
// Quantity llega como celda cruda: la regla de validación la parsea y rechaza
// lo no numérico con InvalidInput.
type EntryRequest struct {
	ItemID         string `json:"item_id"`
	Quantity       string `json:"quantity"`
	Cost           string `json:"cost"`
	Provider       string `json:"provider"`
	Invoice        string `json:"invoice"`
	ExpirationDate string `json:"expiration_date"`
	SerialNumber   string `json:"serial_number"`
}

// ExitRequest salida de activo fijo vía responsiva: siempre una unidad, costo cero.
type ExitRequest struct {
	ItemID string `json:"item_id"`
}

// BulkImportRequest importación por lotes de entradas.
type BulkImportRequest struct {
	Entries []EntryRequest `json:"entries"`
}

// BulkImportError falla individual dentro de una importación por lotes.
type BulkImportError struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// BulkImportResult tally de la importación. El batch responde 200 aunque haya
// errores parciales: el caller debe inspeccionar el cuerpo.
type BulkImportResult struct {
	SuccessCount int               `json:"success_count"`
	ErrorCount   int               `json:"error_count"`
	Errors       []BulkImportError `json:"errors"`
}

// StockResponse stock actual de un artículo derivado del kardex.
type StockResponse struct {
	ItemID string `json:"item_id"`
	Stock  int    `json:"stock"`
}
