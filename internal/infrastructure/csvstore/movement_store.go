package csvstore

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
	"github.com/jhoicas/inventario-cli/internal/domain/repository"
)

const (
	movementsFile  = "transactions.csv"
	movementIDBase = 5000

	// TimestampLayout formato de los timestamps en transactions.csv,
	// con precisión de segundos.
	TimestampLayout = "2006-01-02 15:04:05"
)

var _ repository.MovementRepository = (*MovementStore)(nil)

// MovementStore implementación del puerto MovementRepository sobre
// transactions.csv, un log estrictamente creciente: la única mutación es
// agregar una línea al final. Nunca pasa por saveAll, así que una escritura
// parcial jamás puede corromper registros ya durables.
type MovementStore struct {
	table     table[*entity.Movement]
	movements []*entity.Movement
}

// NewMovementStore abre (o crea con solo el encabezado) transactions.csv bajo
// dataDir y carga el log completo.
func NewMovementStore(fs afero.Fs, dataDir string) (*MovementStore, error) {
	s := &MovementStore{table: table[*entity.Movement]{
		fs:   fs,
		path: filepath.Join(dataDir, movementsFile),
		kind: recordKind[*entity.Movement]{
			header: "id,itemId,type,quantity,timestamp,note",
			encode: encodeMovement,
			decode: decodeMovement,
		},
	}}
	if _, err := s.table.init(); err != nil {
		return nil, err
	}
	movements, err := s.table.load()
	if err != nil {
		return nil, err
	}
	s.movements = movements
	return s, nil
}

func encodeMovement(m *entity.Movement) []string {
	return []string{
		strconv.FormatInt(m.ID, 10),
		strconv.FormatInt(m.ItemID, 10),
		m.Type,
		strconv.Itoa(m.Quantity),
		m.Timestamp.Format(TimestampLayout),
		m.Note,
	}
}

func decodeMovement(fields []string, file string, line int) (*entity.Movement, error) {
	if len(fields) != 6 {
		return nil, &domain.MalformedRecordError{File: file, Line: line,
			Reason: fmt.Sprintf("se esperaban 6 campos, hay %d", len(fields))}
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, &domain.MalformedRecordError{File: file, Line: line, Reason: "id no numérico", Err: err}
	}
	itemID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &domain.MalformedRecordError{File: file, Line: line, Reason: "itemId no numérico", Err: err}
	}
	kind := fields[2]
	if kind != entity.MovementIn && kind != entity.MovementOut {
		return nil, &domain.MalformedRecordError{File: file, Line: line,
			Reason: fmt.Sprintf("type desconocido %q", kind)}
	}
	qty, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, &domain.MalformedRecordError{File: file, Line: line, Reason: "quantity no numérico", Err: err}
	}
	ts, err := time.ParseInLocation(TimestampLayout, fields[4], time.Local)
	if err != nil {
		return nil, &domain.MalformedRecordError{File: file, Line: line, Reason: "timestamp inválido", Err: err}
	}
	return &entity.Movement{ID: id, ItemID: itemID, Type: kind, Quantity: qty, Timestamp: ts, Note: fields[5]}, nil
}

// List devuelve copias de todos los movimientos en orden de inserción.
func (s *MovementStore) List() ([]*entity.Movement, error) {
	out := make([]*entity.Movement, len(s.movements))
	for i, m := range s.movements {
		c := *m
		out[i] = &c
	}
	return out, nil
}

// NextID devuelve max(id)+1; con el log vacío, movementIDBase+1.
func (s *MovementStore) NextID() int64 {
	max := int64(movementIDBase)
	for _, m := range s.movements {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

// Append agrega el movimiento al final del archivo y de la copia en memoria.
func (s *MovementStore) Append(movement *entity.Movement) error {
	c := *movement
	if err := s.table.append(&c); err != nil {
		return err
	}
	s.movements = append(s.movements, &c)
	return nil
}
