package sheets

// Hojas del libro. Cada una lleva header en la fila 1.
const (
	SheetCatalog   = "Catalogo"
	SheetKardex    = "Kardex"
	SheetLots      = "Lotes"
	SheetBulk      = "StockGranel"
	SheetRequests  = "Solicitudes"
	SheetDrafts    = "Borradores"
	SheetProviders = "Proveedores"
	SheetTokens    = "Tokens"
	SheetDirectory = "Directorio"
)

var headers = map[string][]interface{}{
	SheetCatalog:   {"ID", "SKU", "Nombre", "Familia", "Unidad", "StockMinimo", "StockMaximo", "Ubicacion", "Estado", "ActivoFijo", "NumeroSerie"},
	SheetKardex:    {"ID", "Timestamp", "ItemID", "Tipo", "Cantidad", "Costo", "Proveedor", "Factura", "Caducidad", "NumeroSerie", "Usuario"},
	SheetLots:      {"ID", "ItemID", "CantidadInicial", "CantidadRestante", "Caducidad", "Timestamp"},
	SheetBulk:      {"ItemID", "Cantidad"},
	SheetRequests:  {"ID", "Timestamp", "Solicitante", "Producto", "CantidadEstimada", "Justificacion", "Especificaciones", "Estado", "Proveedor", "Costo", "FechaEntrega", "Aprobador", "FechaDecision"},
	SheetDrafts:    {"ID", "Payload", "Estado", "Timestamp", "Solicitante"},
	SheetProviders: {"ID", "Nombre", "Contacto", "Telefono", "Email", "HistorialPrecios"},
	SheetTokens:    {"Token", "Email", "Vence"},
	SheetDirectory: {"Email", "Rol"},
}

// Bootstrap garantiza que todas las hojas del esquema existan con su header.
func Bootstrap(w *Workbook) error {
	for sheet, header := range headers {
		if err := w.EnsureSheet(sheet, header); err != nil {
			return err
		}
	}
	return nil
}
