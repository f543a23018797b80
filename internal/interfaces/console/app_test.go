package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cli/internal/application/auth"
	"github.com/jhoicas/inventario-cli/internal/application/inventory"
	"github.com/jhoicas/inventario-cli/internal/application/report"
	"github.com/jhoicas/inventario-cli/internal/infrastructure/csvstore"
	"github.com/jhoicas/inventario-cli/internal/interfaces/console"
	"github.com/jhoicas/inventario-cli/pkg/logger"
)

// runSession ejecuta una sesión completa de consola con el guion de entradas
// dado (una por línea) sobre un filesystem en memoria, y devuelve la salida.
func runSession(t *testing.T, fs afero.Fs, script ...string) string {
	t.Helper()
	hasher := auth.SHA256Hasher{}
	itemStore, err := csvstore.NewItemStore(fs, "data")
	require.NoError(t, err)
	movementStore, err := csvstore.NewMovementStore(fs, "data")
	require.NoError(t, err)
	userStore, err := csvstore.NewUserStore(fs, "data", auth.DefaultAdmin(hasher))
	require.NoError(t, err)

	items := inventory.NewItemUseCase(itemStore)
	ledger := inventory.NewStockLedger(itemStore, movementStore, logger.Nop())
	users := auth.NewUserUseCase(userStore, hasher)
	reports := report.NewReportUseCase(fs, itemStore, ledger, "reports")

	var out bytes.Buffer
	app := console.New(strings.NewReader(strings.Join(script, "\n")+"\n"), &out, users, items, ledger, reports)
	require.NoError(t, app.Run())
	return out.String()
}

// Sesión de punta a punta: login, crear un artículo, registrar una salida y
// terminar. Los archivos quedan escritos en el fs.
func TestSesion_CrearYMover(t *testing.T) {
	fs := afero.NewMemMapFs()
	out := runSession(t, fs,
		"admin", "admin123", // login
		"1",                                    // menú artículos
		"2", "Widget", "Hardware", "10", "2.50", // crear
		"0",                      // volver
		"2",                      // menú movimientos
		"2", "1001", "3", "sale", // OUT 3
		"0", // volver
		"0", // salir
	)

	assert.Contains(t, out, "Artículo creado con ID: 1001")
	assert.Contains(t, out, "Movimiento #5001 registrado")
	assert.Contains(t, out, `Stock actual de "Widget" = 7`)
	assert.Contains(t, out, "Hasta luego.")

	items, err := afero.ReadFile(fs, "data/items.csv")
	require.NoError(t, err)
	assert.Contains(t, string(items), "1001,Widget,Hardware,7,2.5")
	movements, err := afero.ReadFile(fs, "data/transactions.csv")
	require.NoError(t, err)
	assert.Contains(t, string(movements), "5001,1001,OUT,3,")
}

// Tres credenciales malas cierran la sesión sin entrar al menú.
func TestSesion_LoginFallido(t *testing.T) {
	out := runSession(t, afero.NewMemMapFs(),
		"admin", "mala",
		"admin", "mala",
		"admin", "mala",
	)
	assert.Contains(t, out, "Demasiados intentos. Saliendo.")
	assert.NotContains(t, out, "Sistema de inventario")
}

// Un error de operación se muestra y la sesión sigue viva.
func TestSesion_ErrorNoTumbaLaSesion(t *testing.T) {
	out := runSession(t, afero.NewMemMapFs(),
		"admin", "admin123",
		"1",
		"4", "9999", // eliminar un artículo inexistente
		"0",
		"0",
	)
	assert.Contains(t, out, "Error: artículo no encontrado")
	assert.Contains(t, out, "Hasta luego.")
}
