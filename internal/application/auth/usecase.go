package auth

import (
	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
	"github.com/jhoicas/inventario-cli/internal/domain/repository"
)

// Credencial sembrada la primera vez que se crea users.csv.
//
// Nota de seguridad: es una credencial de arranque conocida por cualquiera
// que lea este código. Cambiarla en el primer inicio de sesión.
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "admin123"
)

// DefaultAdmin devuelve la cuenta inicial que el store siembra al crear
// users.csv por primera vez.
func DefaultAdmin(h PasswordHasher) *entity.User {
	return &entity.User{Username: DefaultAdminUser, PasswordHash: h.Hash(DefaultAdminPassword)}
}

// UserUseCase altas, bajas, autenticación y cambio de contraseña de cuentas.
type UserUseCase struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

// NewUserUseCase construye el caso de uso de cuentas.
func NewUserUseCase(users repository.UserRepository, hasher PasswordHasher) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher}
}

// Authenticate compara el hash del password con el almacenado. Un usuario
// inexistente y un password incorrecto responden igual.
func (uc *UserUseCase) Authenticate(username, password string) (bool, error) {
	u, err := uc.users.GetByUsername(username)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return u.PasswordHash == uc.hasher.Hash(password), nil
}

// AddUser crea una cuenta nueva. ErrDuplicateUsername si ya existe.
func (uc *UserUseCase) AddUser(username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}
	existing, err := uc.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateUsername
	}
	return uc.users.Create(&entity.User{
		Username:     username,
		PasswordHash: uc.hasher.Hash(password),
	})
}

// DeleteUser elimina la cuenta. ErrUserNotFound si no existe.
func (uc *UserUseCase) DeleteUser(username string) error {
	return uc.users.Delete(username)
}

// ChangePassword reemplaza el hash de la cuenta por el del password nuevo.
func (uc *UserUseCase) ChangePassword(username, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}
	u, err := uc.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = uc.hasher.Hash(newPassword)
	return uc.users.Update(u)
}

// List devuelve todas las cuentas.
func (uc *UserUseCase) List() ([]*entity.User, error) {
	return uc.users.List()
}
