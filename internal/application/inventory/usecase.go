package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
	"github.com/jhoicas/inventario-cli/internal/domain/repository"
)

// ItemUseCase altas, consultas, actualizaciones y bajas de artículos.
type ItemUseCase struct {
	items repository.ItemRepository
}

// NewItemUseCase construye el caso de uso de artículos.
func NewItemUseCase(items repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{items: items}
}

// ItemUpdate campos opcionales para actualización parcial: nil conserva el
// valor actual. El valor presente-vs-ausente se modela con punteros; el
// sentinel "campo en blanco" vive solo en la superficie interactiva.
type ItemUpdate struct {
	Name      *string
	Category  *string
	Quantity  *int
	UnitPrice *decimal.Decimal
}

// List devuelve todos los artículos.
func (uc *ItemUseCase) List() ([]*entity.Item, error) {
	return uc.items.List()
}

// FindByID devuelve el artículo, o (nil, nil) si no existe.
func (uc *ItemUseCase) FindByID(id int64) (*entity.Item, error) {
	return uc.items.GetByID(id)
}

// Create valida los datos, asigna el siguiente ID y persiste el artículo.
func (uc *ItemUseCase) Create(name, category string, quantity int, unitPrice decimal.Decimal) (*entity.Item, error) {
	if name == "" || quantity < 0 || unitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.Item{
		ID:        uc.items.NextID(),
		Name:      name,
		Category:  category,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update aplica los campos presentes de upd sobre el artículo y lo persiste.
// Cambiar Quantity por esta vía es una corrección directa: no genera
// movimiento y rompe la conciliación contra el log, a propósito.
func (uc *ItemUseCase) Update(id int64, upd ItemUpdate) error {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Quantity != nil {
		item.Quantity = *upd.Quantity
	}
	if upd.UnitPrice != nil {
		item.UnitPrice = *upd.UnitPrice
	}
	if item.Name == "" || item.Quantity < 0 || item.UnitPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.items.Update(item)
}

// Delete elimina el artículo. Sus movimientos quedan en el log: el ItemID de
// un movimiento puede apuntar a un artículo que ya no existe.
func (uc *ItemUseCase) Delete(id int64) error {
	return uc.items.Delete(id)
}
