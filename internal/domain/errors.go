package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrItemNotFound      = errors.New("artículo no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser positiva")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicateUsername = errors.New("el nombre de usuario ya existe")

	// ErrLedgerDiverged: el stock quedó reescrito pero el movimiento no llegó
	// al log. El ledger queda divergente; la reparación es externa, nunca un
	// reintento automático.
	ErrLedgerDiverged = errors.New("stock actualizado sin movimiento en el log")
)

// MalformedRecordError: una línea del archivo no se pudo decodificar al tipo
// de la colección. Aborta la carga completa, nunca una carga parcial.
type MalformedRecordError struct {
	File   string
	Line   int
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registro inválido en %s:%d: %s: %v", e.File, e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("registro inválido en %s:%d: %s", e.File, e.Line, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
