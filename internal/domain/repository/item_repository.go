package repository

import "github.com/jhoicas/inventario-cli/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
// La implementación es dueña exclusiva de la colección: mantiene la copia en
// memoria y resincroniza el archivo tras cada mutación.
type ItemRepository interface {
	List() ([]*entity.Item, error)
	GetByID(id int64) (*entity.Item, error)
	// NextID devuelve max(id)+1 sobre la colección actual, partiendo de la
	// base propia del tipo cuando está vacía.
	NextID() int64
	Create(item *entity.Item) error
	Update(item *entity.Item) error
	Delete(id int64) error
}
