package repository

import "github.com/jhoicas/inventario-cli/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Username es la identidad del registro.
type UserRepository interface {
	List() ([]*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Create(user *entity.User) error
	Update(user *entity.User) error
	Delete(username string) error
}
