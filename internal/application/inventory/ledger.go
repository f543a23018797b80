package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
	"github.com/jhoicas/inventario-cli/internal/domain/repository"
	"github.com/jhoicas/inventario-cli/pkg/logger"
)

// StockLedger acopla la mutación de stock al registro de movimientos: toda
// variación de cantidad queda emparejada con exactamente un movimiento
// durable, y la cantidad nunca baja de cero.
type StockLedger struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	now       func() time.Time
	log       *logger.Logger
}

// NewStockLedger construye el ledger sobre los dos stores.
func NewStockLedger(items repository.ItemRepository, movements repository.MovementRepository, log *logger.Logger) *StockLedger {
	return &StockLedger{items: items, movements: movements, now: time.Now, log: log}
}

// WithClock reemplaza la fuente de tiempo de los movimientos.
func (l *StockLedger) WithClock(now func() time.Time) *StockLedger {
	l.now = now
	return l
}

// ReceiptStatus desenlace de las dos fases de RecordMovement.
type ReceiptStatus int

const (
	// StatusApplied stock reescrito y movimiento agregado al log.
	StatusApplied ReceiptStatus = iota
	// StatusLogPending el stock quedó reescrito pero el movimiento no llegó
	// al log. El ledger está divergente: lo repara tooling externo, no un
	// reintento silencioso.
	StatusLogPending
)

// MovementReceipt resultado de RecordMovement. Con StatusLogPending, Movement
// es el registro que debió quedar en el log y no quedó.
type MovementReceipt struct {
	Movement *entity.Movement
	Status   ReceiptStatus
}

// Pending informa si el stock quedó aplicado sin su movimiento en el log.
func (r *MovementReceipt) Pending() bool { return r.Status == StatusLogPending }

// Adjust aplica delta a la cantidad del artículo y reescribe la colección
// completa antes de retornar. Si el artículo no existe o el resultado sería
// negativo, falla sin tocar nada.
func (l *StockLedger) Adjust(itemID int64, delta int) error {
	item, err := l.items.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	newQty := item.Quantity + delta
	if newQty < 0 {
		return fmt.Errorf("%w: actual %d, delta %d", domain.ErrInsufficientStock, item.Quantity, delta)
	}
	item.Quantity = newQty
	return l.items.Update(item)
}

// RecordMovement registra una entrada o salida en dos fases: primero ajusta y
// reescribe el stock, y solo si eso queda durable asigna el ID, arma el
// movimiento con el reloj inyectado y lo agrega al log. Entre ambas fases no
// hay rollback: si el append falla, el recibo sale con StatusLogPending y el
// error envuelve ErrLedgerDiverged.
func (l *StockLedger) RecordMovement(itemID int64, kind string, quantity int, note string) (*MovementReceipt, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var delta int
	switch kind {
	case entity.MovementIn:
		delta = quantity
	case entity.MovementOut:
		delta = -quantity
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, kind)
	}

	// Fase 1: validar y dejar durable el nuevo stock. Si falla, no se
	// registra nada y el artículo queda como estaba.
	if err := l.Adjust(itemID, delta); err != nil {
		return nil, err
	}

	// Fase 2: movimiento durable en el log. El formato tiene precisión de
	// segundos, así que el timestamp se trunca para que recargar el log
	// devuelva exactamente lo registrado.
	movement := &entity.Movement{
		ID:        l.movements.NextID(),
		ItemID:    itemID,
		Type:      kind,
		Quantity:  quantity,
		Timestamp: l.now().Truncate(time.Second),
		Note:      note,
	}
	if err := l.movements.Append(movement); err != nil {
		l.log.Warn().
			Int64("item_id", itemID).
			Int64("movement_id", movement.ID).
			Err(err).
			Msg("ledger divergente: stock aplicado sin movimiento en el log")
		return &MovementReceipt{Movement: movement, Status: StatusLogPending},
			fmt.Errorf("%w: %v", domain.ErrLedgerDiverged, err)
	}
	l.log.Info().
		Int64("item_id", itemID).
		Int64("movement_id", movement.ID).
		Str("type", kind).
		Int("quantity", quantity).
		Msg("movimiento registrado")
	return &MovementReceipt{Movement: movement, Status: StatusApplied}, nil
}

// ListMovements devuelve el log completo en orden de inserción.
func (l *StockLedger) ListMovements() ([]*entity.Movement, error) {
	return l.movements.List()
}

// ListMovementsBetween devuelve los movimientos con timestamp dentro de
// [from a las 00:00, día siguiente a to a las 00:00): ambos extremos de fecha
// inclusive.
func (l *StockLedger) ListMovementsBetween(from, to time.Time) ([]*entity.Movement, error) {
	all, err := l.movements.List()
	if err != nil {
		return nil, err
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	var out []*entity.Movement
	for _, m := range all {
		if !m.Timestamp.Before(start) && m.Timestamp.Before(end) {
			out = append(out, m)
		}
	}
	return out, nil
}
