// Package console implementa la superficie interactiva del sistema: una
// sesión de menús sobre los casos de uso, que muestra cada error por
// operación sin tumbar la sesión.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cli/internal/application/auth"
	"github.com/jhoicas/inventario-cli/internal/application/inventory"
	"github.com/jhoicas/inventario-cli/internal/application/report"
	"github.com/jhoicas/inventario-cli/internal/domain/entity"
)

const maxLoginAttempts = 3

// App sesión de consola. Lee de in y escribe en out, así los tests pueden
// manejarla con buffers.
type App struct {
	in      *bufio.Scanner
	out     io.Writer
	users   *auth.UserUseCase
	items   *inventory.ItemUseCase
	ledger  *inventory.StockLedger
	reports *report.ReportUseCase

	currentUser string
}

// New construye la sesión sobre los casos de uso.
func New(in io.Reader, out io.Writer, users *auth.UserUseCase, items *inventory.ItemUseCase, ledger *inventory.StockLedger, reports *report.ReportUseCase) *App {
	return &App{
		in:      bufio.NewScanner(in),
		out:     out,
		users:   users,
		items:   items,
		ledger:  ledger,
		reports: reports,
	}
}

// Run pide login y entra al menú principal hasta que el usuario salga.
func (a *App) Run() error {
	if !a.login() {
		return nil
	}
	for {
		fmt.Fprintf(a.out, "\nSistema de inventario (sesión: %s)\n", a.currentUser)
		fmt.Fprintln(a.out, "1) Artículos (CRUD)")
		fmt.Fprintln(a.out, "2) Movimientos (IN/OUT)")
		fmt.Fprintln(a.out, "3) Reportes")
		fmt.Fprintln(a.out, "4) Usuarios")
		fmt.Fprintln(a.out, "0) Salir")
		switch a.prompt("Opción: ") {
		case "1":
			a.itemsMenu()
		case "2":
			a.movementsMenu()
		case "3":
			a.reportsMenu()
		case "4":
			a.usersMenu()
		case "0":
			fmt.Fprintln(a.out, "Hasta luego.")
			return nil
		default:
			fmt.Fprintln(a.out, "Opción inválida.")
		}
	}
}

func (a *App) login() bool {
	for attempts := 0; attempts < maxLoginAttempts; attempts++ {
		username := a.prompt("Usuario: ")
		password := a.prompt("Contraseña: ")
		ok, err := a.users.Authenticate(username, password)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			continue
		}
		if ok {
			a.currentUser = username
			return true
		}
		fmt.Fprintln(a.out, "Credenciales inválidas. Intente de nuevo.")
	}
	fmt.Fprintln(a.out, "Demasiados intentos. Saliendo.")
	return false
}

// ── Artículos ────────────────────────────────────────────────────────────────

func (a *App) itemsMenu() {
	for {
		fmt.Fprintln(a.out, "\n-- Artículos --")
		fmt.Fprintln(a.out, "1) Listar")
		fmt.Fprintln(a.out, "2) Crear")
		fmt.Fprintln(a.out, "3) Actualizar")
		fmt.Fprintln(a.out, "4) Eliminar")
		fmt.Fprintln(a.out, "0) Volver")
		switch a.prompt("Opción: ") {
		case "1":
			a.listItems()
		case "2":
			a.createItem()
		case "3":
			a.updateItem()
		case "4":
			a.deleteItem()
		case "0":
			return
		default:
			fmt.Fprintln(a.out, "Opción inválida.")
		}
	}
}

func (a *App) listItems() {
	items, err := a.items.List()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "ID | Nombre | Categoría | Cant. | Precio unit.")
	for _, it := range items {
		fmt.Fprintf(a.out, "%d | %s | %s | %d | %s\n", it.ID, it.Name, it.Category, it.Quantity, it.UnitPrice.StringFixed(2))
	}
}

func (a *App) createItem() {
	name := a.prompt("Nombre: ")
	category := a.prompt("Categoría: ")
	qty, err := strconv.Atoi(a.prompt("Cantidad: "))
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	price, err := decimal.NewFromString(a.prompt("Precio unitario: "))
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	item, err := a.items.Create(name, category, qty, price)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Artículo creado con ID: %d\n", item.ID)
}

// updateItem pide campo por campo; dejar en blanco conserva el valor actual.
// El blanco se traduce a puntero nil acá, en la orilla: el caso de uso solo
// ve presente-vs-ausente.
func (a *App) updateItem() {
	id, err := strconv.ParseInt(a.prompt("ID del artículo: "), 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	item, err := a.items.FindByID(id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	if item == nil {
		fmt.Fprintln(a.out, "No encontrado.")
		return
	}
	var upd inventory.ItemUpdate
	if s := a.prompt(fmt.Sprintf("Nuevo nombre (blanco conserva %q): ", item.Name)); s != "" {
		upd.Name = &s
	}
	if s := a.prompt(fmt.Sprintf("Nueva categoría (blanco conserva %q): ", item.Category)); s != "" {
		upd.Category = &s
	}
	if s := a.prompt(fmt.Sprintf("Nueva cantidad (blanco conserva %d): ", item.Quantity)); s != "" {
		qty, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return
		}
		upd.Quantity = &qty
	}
	if s := a.prompt(fmt.Sprintf("Nuevo precio unitario (blanco conserva %s): ", item.UnitPrice)); s != "" {
		price, err := decimal.NewFromString(s)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			return
		}
		upd.UnitPrice = &price
	}
	if err := a.items.Update(id, upd); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Actualizado.")
}

func (a *App) deleteItem() {
	id, err := strconv.ParseInt(a.prompt("ID del artículo: "), 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	if err := a.items.Delete(id); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Eliminado.")
}

// ── Movimientos ──────────────────────────────────────────────────────────────

func (a *App) movementsMenu() {
	for {
		fmt.Fprintln(a.out, "\n-- Movimientos --")
		fmt.Fprintln(a.out, "1) Registrar IN (compra)")
		fmt.Fprintln(a.out, "2) Registrar OUT (venta)")
		fmt.Fprintln(a.out, "3) Listar todos")
		fmt.Fprintln(a.out, "0) Volver")
		switch a.prompt("Opción: ") {
		case "1":
			a.recordMovement(entity.MovementIn)
		case "2":
			a.recordMovement(entity.MovementOut)
		case "3":
			a.listMovements()
		case "0":
			return
		default:
			fmt.Fprintln(a.out, "Opción inválida.")
		}
	}
}

func (a *App) recordMovement(kind string) {
	id, err := strconv.ParseInt(a.prompt("ID del artículo: "), 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	item, err := a.items.FindByID(id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	if item == nil {
		fmt.Fprintln(a.out, "No encontrado.")
		return
	}
	qty, err := strconv.Atoi(a.prompt("Cantidad: "))
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	note := a.prompt("Nota (opcional): ")
	receipt, err := a.ledger.RecordMovement(id, kind, qty, note)
	if err != nil {
		if receipt != nil && receipt.Pending() {
			// El stock ya cambió pero el movimiento no quedó en el log:
			// se informa el hueco, no se reintenta.
			fmt.Fprintf(a.out, "ATENCIÓN: stock actualizado pero el movimiento #%d no quedó registrado: %v\n", receipt.Movement.ID, err)
			return
		}
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	updated, err := a.items.FindByID(id)
	if err != nil || updated == nil {
		fmt.Fprintf(a.out, "Movimiento #%d registrado.\n", receipt.Movement.ID)
		return
	}
	fmt.Fprintf(a.out, "Movimiento #%d registrado. Stock actual de %q = %d\n", receipt.Movement.ID, item.Name, updated.Quantity)
}

func (a *App) listMovements() {
	movements, err := a.ledger.ListMovements()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "ID | Fecha | ItemID | Tipo | Cant. | Nota")
	for _, m := range movements {
		fmt.Fprintf(a.out, "%d | %s | %d | %s | %d | %s\n", m.ID, m.Timestamp.Format("2006-01-02 15:04:05"), m.ItemID, m.Type, m.Quantity, m.Note)
	}
}

// ── Reportes ─────────────────────────────────────────────────────────────────

func (a *App) reportsMenu() {
	for {
		fmt.Fprintln(a.out, "\n-- Reportes --")
		fmt.Fprintln(a.out, "1) Reporte de niveles de stock (HTML)")
		fmt.Fprintln(a.out, "2) Reporte de movimientos por fechas (HTML)")
		fmt.Fprintln(a.out, "0) Volver")
		switch a.prompt("Opción: ") {
		case "1":
			path, err := a.reports.StockReport()
			if err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(a.out, "Guardado: %s\n", path)
		case "2":
			from, err := time.ParseInLocation("2006-01-02", a.prompt("Desde (yyyy-MM-dd): "), time.Local)
			if err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
				continue
			}
			to, err := time.ParseInLocation("2006-01-02", a.prompt("Hasta (yyyy-MM-dd): "), time.Local)
			if err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
				continue
			}
			path, err := a.reports.MovementsReport(from, to)
			if err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(a.out, "Guardado: %s\n", path)
		case "0":
			return
		default:
			fmt.Fprintln(a.out, "Opción inválida.")
		}
	}
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

func (a *App) usersMenu() {
	for {
		fmt.Fprintln(a.out, "\n-- Usuarios --")
		fmt.Fprintln(a.out, "1) Agregar usuario")
		fmt.Fprintln(a.out, "2) Eliminar usuario")
		fmt.Fprintln(a.out, "3) Cambiar mi contraseña")
		fmt.Fprintln(a.out, "0) Volver")
		switch a.prompt("Opción: ") {
		case "1":
			username := a.prompt("Nuevo usuario: ")
			password := a.prompt("Contraseña: ")
			if err := a.users.AddUser(username, password); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(a.out, "Usuario agregado.")
		case "2":
			username := a.prompt("Usuario a eliminar: ")
			if username == a.currentUser {
				fmt.Fprintln(a.out, "No se puede eliminar el usuario de la sesión.")
				continue
			}
			if err := a.users.DeleteUser(username); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(a.out, "Eliminado.")
		case "3":
			password := a.prompt("Nueva contraseña: ")
			if err := a.users.ChangePassword(a.currentUser, password); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(a.out, "Contraseña cambiada.")
		case "0":
			return
		default:
			fmt.Fprintln(a.out, "Opción inválida.")
		}
	}
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "0" // entrada agotada: tratar como "volver/salir" para cerrar la sesión
	}
	return strings.TrimSpace(a.in.Text())
}
