package entity

import "github.com/shopspring/decimal"

// Item representa un artículo del inventario (una fila de items.csv).
// El ID lo asigna el store al crear y es inmutable después; Quantity es el
// stock actual y nunca puede quedar negativo.
type Item struct {
	ID        int64
	Name      string
	Category  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Value devuelve el valor de inventario del artículo (cantidad por precio unitario).
func (i *Item) Value() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
