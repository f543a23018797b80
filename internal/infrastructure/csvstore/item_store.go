package csvstore

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
	"github.com/jhoicas/inventario-cli/internal/domain/repository"
)

const (
	itemsFile  = "items.csv"
	itemIDBase = 1000
)

var _ repository.ItemRepository = (*ItemStore)(nil)

// ItemStore implementación del puerto ItemRepository sobre items.csv
// (colección de reescritura completa). La copia en memoria es el working set
// y el archivo su espejo durable; toda mutación reescribe el archivo entero
// antes de retornar.
type ItemStore struct {
	table table[*entity.Item]
	items []*entity.Item
}

// NewItemStore abre (o crea con solo el encabezado) items.csv bajo dataDir y
// carga la colección completa.
func NewItemStore(fs afero.Fs, dataDir string) (*ItemStore, error) {
	s := &ItemStore{table: table[*entity.Item]{
		fs:   fs,
		path: filepath.Join(dataDir, itemsFile),
		kind: recordKind[*entity.Item]{
			header: "id,name,category,quantity,unitPrice",
			encode: encodeItem,
			decode: decodeItem,
		},
	}}
	if _, err := s.table.init(); err != nil {
		return nil, err
	}
	items, err := s.table.load()
	if err != nil {
		return nil, err
	}
	s.items = items
	return s, nil
}

func encodeItem(it *entity.Item) []string {
	return []string{
		strconv.FormatInt(it.ID, 10),
		it.Name,
		it.Category,
		strconv.Itoa(it.Quantity),
		it.UnitPrice.String(),
	}
}

func decodeItem(fields []string, file string, line int) (*entity.Item, error) {
	if len(fields) != 5 {
		return nil, &domain.MalformedRecordError{File: file, Line: line,
			Reason: fmt.Sprintf("se esperaban 5 campos, hay %d", len(fields))}
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, &domain.MalformedRecordError{File: file, Line: line, Reason: "id no numérico", Err: err}
	}
	qty, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, &domain.MalformedRecordError{File: file, Line: line, Reason: "quantity no numérico", Err: err}
	}
	price, err := decimal.NewFromString(fields[4])
	if err != nil {
		return nil, &domain.MalformedRecordError{File: file, Line: line, Reason: "unitPrice no numérico", Err: err}
	}
	return &entity.Item{ID: id, Name: fields[1], Category: fields[2], Quantity: qty, UnitPrice: price}, nil
}

// List devuelve copias de todos los artículos en el orden de la colección.
func (s *ItemStore) List() ([]*entity.Item, error) {
	out := make([]*entity.Item, len(s.items))
	for i, it := range s.items {
		c := *it
		out[i] = &c
	}
	return out, nil
}

// GetByID devuelve una copia del artículo, o (nil, nil) si no existe.
func (s *ItemStore) GetByID(id int64) (*entity.Item, error) {
	for _, it := range s.items {
		if it.ID == id {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

// NextID devuelve max(id)+1; con la colección vacía, itemIDBase+1.
func (s *ItemStore) NextID() int64 {
	max := int64(itemIDBase)
	for _, it := range s.items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}

// Create agrega el artículo y reescribe el archivo completo. Si la escritura
// falla, la copia en memoria revierte para no divergir del archivo.
func (s *ItemStore) Create(item *entity.Item) error {
	c := *item
	s.items = append(s.items, &c)
	if err := s.table.saveAll(s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return err
	}
	return nil
}

// Update reemplaza el artículo con el mismo ID y reescribe el archivo.
func (s *ItemStore) Update(item *entity.Item) error {
	for i, it := range s.items {
		if it.ID != item.ID {
			continue
		}
		c := *item
		s.items[i] = &c
		if err := s.table.saveAll(s.items); err != nil {
			s.items[i] = it
			return err
		}
		return nil
	}
	return domain.ErrItemNotFound
}

// Delete quita el artículo y reescribe el archivo. Los movimientos que lo
// referencian quedan intactos: el borrado no cascadea al log.
func (s *ItemStore) Delete(id int64) error {
	for i, it := range s.items {
		if it.ID != id {
			continue
		}
		old := s.items
		s.items = append(append([]*entity.Item{}, old[:i]...), old[i+1:]...)
		if err := s.table.saveAll(s.items); err != nil {
			s.items = old
			return err
		}
		return nil
	}
	return domain.ErrItemNotFound
}
