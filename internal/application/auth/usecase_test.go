package auth_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cli/internal/application/auth"
	"github.com/jhoicas/inventario-cli/internal/domain"
	"github.com/jhoicas/inventario-cli/internal/infrastructure/csvstore"
)

func newUserUseCase(t *testing.T) *auth.UserUseCase {
	t.Helper()
	hasher := auth.SHA256Hasher{}
	store, err := csvstore.NewUserStore(afero.NewMemMapFs(), "data", auth.DefaultAdmin(hasher))
	require.NoError(t, err)
	return auth.NewUserUseCase(store, hasher)
}

// El hash es el digest SHA-256 en hex: 64 caracteres, determinista.
func TestSHA256Hasher(t *testing.T) {
	h := auth.SHA256Hasher{}
	assert.Len(t, h.Hash("admin123"), 64)
	assert.Equal(t, h.Hash("admin123"), h.Hash("admin123"))
	assert.NotEqual(t, h.Hash("admin123"), h.Hash("admin124"))
}

// La cuenta sembrada permite iniciar sesión con la credencial de arranque.
func TestAuthenticate_AdminSembrado(t *testing.T) {
	uc := newUserUseCase(t)

	ok, err := uc.Authenticate(auth.DefaultAdminUser, auth.DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Authenticate(auth.DefaultAdminUser, "otra")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.Authenticate("nadie", auth.DefaultAdminPassword)
	require.NoError(t, err)
	assert.False(t, ok, "usuario inexistente responde igual que password incorrecto")
}

func TestAddUser_YDuplicado(t *testing.T) {
	uc := newUserUseCase(t)

	require.NoError(t, uc.AddUser("ana", "secreto"))
	ok, err := uc.Authenticate("ana", "secreto")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, uc.AddUser("ana", "otro"), domain.ErrDuplicateUsername)
	assert.ErrorIs(t, uc.AddUser("", "x"), domain.ErrInvalidInput)
}

func TestChangePassword(t *testing.T) {
	uc := newUserUseCase(t)

	require.NoError(t, uc.ChangePassword(auth.DefaultAdminUser, "nuevo"))

	ok, err := uc.Authenticate(auth.DefaultAdminUser, auth.DefaultAdminPassword)
	require.NoError(t, err)
	assert.False(t, ok, "la credencial vieja deja de servir")
	ok, err = uc.Authenticate(auth.DefaultAdminUser, "nuevo")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, uc.ChangePassword("nadie", "x"), domain.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	uc := newUserUseCase(t)

	require.NoError(t, uc.AddUser("ana", "secreto"))
	require.NoError(t, uc.DeleteUser("ana"))
	assert.ErrorIs(t, uc.DeleteUser("ana"), domain.ErrUserNotFound)

	ok, err := uc.Authenticate("ana", "secreto")
	require.NoError(t, err)
	assert.False(t, ok)
}
