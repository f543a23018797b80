package entity

import "time"

// Tipos de movimiento de stock (los literales que van en transactions.csv).
const (
	MovementIn  = "IN"  // entrada (compra)
	MovementOut = "OUT" // salida (venta)
)

// Movement representa un movimiento de stock: una entrada o salida de un
// artículo en un instante dado. Es inmutable una vez creado; el log de
// movimientos solo crece, nunca se reescribe ni se borra.
//
// ItemID puede referenciar un artículo que ya no existe (borrar un artículo
// no borra sus movimientos); quien consulte debe tolerar el lookup fallido.
type Movement struct {
	ID        int64
	ItemID    int64
	Type      string // MovementIn o MovementOut
	Quantity  int    // siempre positivo; el signo lo da Type
	Timestamp time.Time
	Note      string
}
