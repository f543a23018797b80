package report

import (
	"fmt"
	"html/template"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/jhoicas/inventario-cli/internal/application/inventory"
	"github.com/jhoicas/inventario-cli/internal/domain/repository"
)

// ReportUseCase genera reportes HTML bajo el directorio de salida configurado.
// El HTML se escapa vía html/template; los archivos llevan un sufijo uuid para
// no pisar reportes anteriores.
type ReportUseCase struct {
	fs     afero.Fs
	items  repository.ItemRepository
	ledger *inventory.StockLedger
	outDir string
	now    func() time.Time
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(fs afero.Fs, items repository.ItemRepository, ledger *inventory.StockLedger, outDir string) *ReportUseCase {
	return &ReportUseCase{fs: fs, items: items, ledger: ledger, outDir: outDir, now: time.Now}
}

var stockTmpl = template.Must(template.New("stock").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Stock Report</title>
<style>body{font-family:Arial;margin:24px} table{border-collapse:collapse;width:100%} th,td{border:1px solid #999;padding:8px;text-align:left} th{background:#eee} .right{text-align:right}</style>
</head><body><h2>Niveles de stock</h2>
<p>Generado: {{.Generated}}</p>
<table><tr><th>ID</th><th>Nombre</th><th>Categoría</th><th class="right">Cant.</th><th class="right">Precio unit.</th><th class="right">Valor</th></tr>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Category}}</td><td class="right">{{.Quantity}}</td><td class="right">{{.UnitPrice}}</td><td class="right">{{.Value}}</td></tr>
{{end}}<tr><th colspan="5" class="right">Valor total del inventario</th><th class="right">{{.Total}}</th></tr>
</table></body></html>
`))

var movementsTmpl = template.Must(template.New("movements").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Movements Report</title>
<style>body{font-family:Arial;margin:24px} table{border-collapse:collapse;width:100%} th,td{border:1px solid #999;padding:8px;text-align:left} th{background:#eee} .right{text-align:right}</style>
</head><body><h2>Movimientos ({{.From}} a {{.To}})</h2>
<p>Generado: {{.Generated}}</p>
<table><tr><th>ID</th><th>Fecha</th><th>Artículo</th><th>Tipo</th><th class="right">Cant.</th><th>Nota</th></tr>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Timestamp}}</td><td>{{.Item}}</td><td>{{.Type}}</td><td class="right">{{.Quantity}}</td><td>{{.Note}}</td></tr>
{{end}}</table></body></html>
`))

type stockRow struct {
	ID        int64
	Name      string
	Category  string
	Quantity  int
	UnitPrice string
	Value     string
}

type movementRow struct {
	ID        int64
	Timestamp string
	Item      string
	Type      string
	Quantity  int
	Note      string
}

// StockReport genera el reporte de niveles de stock (ordenado por cantidad
// ascendente, los artículos más escasos primero) y devuelve la ruta escrita.
func (uc *ReportUseCase) StockReport() (string, error) {
	items, err := uc.items.List()
	if err != nil {
		return "", err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Quantity < items[j].Quantity })

	rows := make([]stockRow, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		value := it.Value()
		total = total.Add(value)
		rows = append(rows, stockRow{
			ID:        it.ID,
			Name:      it.Name,
			Category:  it.Category,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Value:     value.StringFixed(2),
		})
	}
	data := struct {
		Generated string
		Rows      []stockRow
		Total     string
	}{
		Generated: uc.now().Format("2006-01-02 15:04:05"),
		Rows:      rows,
		Total:     total.StringFixed(2),
	}
	return uc.render(stockTmpl, fmt.Sprintf("stock_report_%s.html", uuid.NewString()), data)
}

// MovementsReport genera el reporte de movimientos del rango de fechas
// (ambos extremos inclusive). Si el artículo de un movimiento ya no existe,
// se muestra "#<id>".
func (uc *ReportUseCase) MovementsReport(from, to time.Time) (string, error) {
	movements, err := uc.ledger.ListMovementsBetween(from, to)
	if err != nil {
		return "", err
	}
	items, err := uc.items.List()
	if err != nil {
		return "", err
	}
	names := make(map[int64]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}

	rows := make([]movementRow, 0, len(movements))
	for _, m := range movements {
		name, ok := names[m.ItemID]
		if !ok {
			name = fmt.Sprintf("#%d", m.ItemID)
		}
		rows = append(rows, movementRow{
			ID:        m.ID,
			Timestamp: m.Timestamp.Format("2006-01-02 15:04:05"),
			Item:      name,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Note:      m.Note,
		})
	}
	data := struct {
		Generated string
		From      string
		To        string
		Rows      []movementRow
	}{
		Generated: uc.now().Format("2006-01-02 15:04:05"),
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
		Rows:      rows,
	}
	name := fmt.Sprintf("movements_%s_a_%s_%s.html", data.From, data.To, uuid.NewString())
	return uc.render(movementsTmpl, name, data)
}

func (uc *ReportUseCase) render(tmpl *template.Template, name string, data any) (string, error) {
	if err := uc.fs.MkdirAll(uc.outDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de reportes %q: %w", uc.outDir, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("renderizar reporte %q: %w", name, err)
	}
	path := filepath.Join(uc.outDir, name)
	if err := afero.WriteFile(uc.fs, path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("escribir reporte %q: %w", path, err)
	}
	return path, nil
}
