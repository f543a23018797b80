package csvstore

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
	"github.com/jhoicas/inventario-cli/internal/domain/repository"
)

const usersFile = "users.csv"

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore implementación del puerto UserRepository sobre users.csv
// (colección de reescritura completa, como los artículos).
type UserStore struct {
	table table[*entity.User]
	users []*entity.User
}

// NewUserStore abre (o crea) users.csv bajo dataDir. La primera vez que el
// archivo se crea se siembra el registro seed, si no es nil, para que el
// sistema arranque con una cuenta de acceso.
func NewUserStore(fs afero.Fs, dataDir string, seed *entity.User) (*UserStore, error) {
	s := &UserStore{table: table[*entity.User]{
		fs:   fs,
		path: filepath.Join(dataDir, usersFile),
		kind: recordKind[*entity.User]{
			header: "username,passwordHash",
			encode: encodeUser,
			decode: decodeUser,
		},
	}}
	created, err := s.table.init()
	if err != nil {
		return nil, err
	}
	if created && seed != nil {
		c := *seed
		s.users = []*entity.User{&c}
		if err := s.table.saveAll(s.users); err != nil {
			return nil, err
		}
		return s, nil
	}
	users, err := s.table.load()
	if err != nil {
		return nil, err
	}
	s.users = users
	return s, nil
}

func encodeUser(u *entity.User) []string {
	return []string{u.Username, u.PasswordHash}
}

func decodeUser(fields []string, file string, line int) (*entity.User, error) {
	if len(fields) != 2 {
		return nil, &domain.MalformedRecordError{File: file, Line: line,
			Reason: fmt.Sprintf("se esperaban 2 campos, hay %d", len(fields))}
	}
	return &entity.User{Username: fields[0], PasswordHash: fields[1]}, nil
}

// List devuelve copias de todas las cuentas.
func (s *UserStore) List() ([]*entity.User, error) {
	out := make([]*entity.User, len(s.users))
	for i, u := range s.users {
		c := *u
		out[i] = &c
	}
	return out, nil
}

// GetByUsername devuelve una copia de la cuenta, o (nil, nil) si no existe.
func (s *UserStore) GetByUsername(username string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// Create agrega la cuenta y reescribe el archivo. Username debe ser único.
func (s *UserStore) Create(user *entity.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	c := *user
	s.users = append(s.users, &c)
	if err := s.table.saveAll(s.users); err != nil {
		s.users = s.users[:len(s.users)-1]
		return err
	}
	return nil
}

// Update reemplaza la cuenta con el mismo username y reescribe el archivo.
func (s *UserStore) Update(user *entity.User) error {
	for i, u := range s.users {
		if u.Username != user.Username {
			continue
		}
		c := *user
		s.users[i] = &c
		if err := s.table.saveAll(s.users); err != nil {
			s.users[i] = u
			return err
		}
		return nil
	}
	return domain.ErrUserNotFound
}

// Delete quita la cuenta y reescribe el archivo.
func (s *UserStore) Delete(username string) error {
	for i, u := range s.users {
		if u.Username != username {
			continue
		}
		old := s.users
		s.users = append(append([]*entity.User{}, old[:i]...), old[i+1:]...)
		if err := s.table.saveAll(s.users); err != nil {
			s.users = old
			return err
		}
		return nil
	}
	return domain.ErrUserNotFound
}
