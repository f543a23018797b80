package repository

import "github.com/jhoicas/inventario-cli/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el log de
// movimientos (DIP). El log es append-only: no hay Update ni Delete, y la
// única mutación agrega una línea al final del archivo.
type MovementRepository interface {
	List() ([]*entity.Movement, error)
	NextID() int64
	Append(movement *entity.Movement) error
}
