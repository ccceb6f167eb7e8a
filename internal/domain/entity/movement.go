package entity

// Tipos de movimiento del kardex.
const (
	MovementEntrada = "Entrada"
	MovementSalida  = "Salida"
)

// Movement es un registro del kardex: libro de movimientos sólo-apéndice.
// Nunca se edita ni se borra; el stock actual es siempre un fold sobre esta secuencia.
// Quantity y Cost se conservan como celdas crudas: una cantidad no parseable se
// omite del fold con warning, nunca tumba el cálculo.
type Movement struct {
	ID             string
	Timestamp      string // RFC3339 al escribir; se conserva tal cual al leer
	ItemID         string
	Type           string // Entrada | Salida
	Quantity       string // positivo; el signo lo da Type
	Cost           string // sólo significativo en Entrada
	Provider       string
	Invoice        string
	ExpirationDate string
	SerialNumber   string
	ActorEmail     string
}
