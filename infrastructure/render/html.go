package render

import (
	"bytes"
	"html/template"

	"github.com/vfg2006/erp-report-api/internal/domain"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Banner.Title}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 11px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 2px 4px; }
th { background: #e6e6e6; }
td.num { text-align: right; }
tr.subtotal td { font-weight: bold; background: #f3f3f3; }
tr.grand-total td { font-weight: bold; border-top: 2px solid #000; }
@media print {
  thead { display: table-header-group; }
  tfoot { display: table-row-group; }
  tr { page-break-inside: avoid; }
}
</style>
</head>
<body>
<h1>{{.Banner.Title}}</h1>
<p class="period">{{.Banner.Period}}</p>
{{- if not .Banner.GeneratedAt.IsZero}}
<p class="generated">Gerado em {{.Banner.GeneratedAt.Format "02/01/2006 15:04"}}</p>
{{- end}}
{{- if .Banner.Notice}}
<p class="notice">{{.Banner.Notice}}</p>
{{- end}}
<table>
<thead>
<tr>{{range .Header}}<th>{{.Label}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Sections}}
{{- range .Rows}}
<tr>{{range .}}<td{{if .Numeric}} class="num"{{end}}>{{.Text}}</td>{{end}}</tr>
{{- end}}
{{- if .Total}}
<tr class="subtotal">{{range .Total}}<td{{if .Numeric}} class="num"{{end}}>{{.Text}}</td>{{end}}</tr>
{{- end}}
{{- end}}
</tbody>
<tfoot>
<tr class="grand-total">{{range .GrandTotal}}<td{{if .Numeric}} class="num"{{end}}>{{.Text}}</td>{{end}}</tr>
</tfoot>
</table>
</body>
</html>
`

var page = template.Must(template.New("report").Parse(htmlTemplate))

type htmlCell struct {
	Text    string
	Numeric bool
}

type htmlSection struct {
	Rows  [][]htmlCell
	Total []htmlCell
}

type htmlPage struct {
	Banner     Banner
	Header     []domain.HeaderCell
	Sections   []htmlSection
	GrandTotal []htmlCell
}

// HTML gera a versão para impressão: cabeçalho repetido a cada página,
// subtotais por grupo e total geral no rodapé da tabela
func HTML(table *domain.Table, banner Banner) ([]byte, error) {
	if table == nil {
		table = &domain.Table{}
	}

	symbol := banner.currency()
	data := htmlPage{
		Banner:     banner,
		Header:     table.Header,
		GrandTotal: totalCells(table.GrandTotalRow, symbol),
	}

	for _, s := range sections(table) {
		current := htmlSection{}
		for _, row := range s.rows {
			current.Rows = append(current.Rows, htmlCells(row.Cells, symbol))
		}
		if s.total != nil {
			current.Total = totalCells(*s.total, symbol)
		}
		data.Sections = append(data.Sections, current)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func htmlCells(cells []domain.Cell, symbol string) []htmlCell {
	out := make([]htmlCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, htmlCell{Text: FormatCell(cell, symbol), Numeric: cell.Kind.IsNumeric()})
	}
	return out
}

// totalCells coloca o rótulo do total na primeira coluna vazia
func totalCells(row domain.TotalRow, symbol string) []htmlCell {
	out := htmlCells(row.Cells, symbol)
	if len(out) > 0 && row.Cells[0].Empty {
		out[0] = htmlCell{Text: row.Label}
	}
	return out
}
