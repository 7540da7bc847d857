package render

import (
	"fmt"

	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName      = "Relatório"
	titleRow       = 1
	periodRow      = 2
	headerRow      = 4
	firstDataRow   = headerRow + 1
	defaultColumnW = 16.0
)

type xlsxStyles struct {
	title    int
	period   int
	header   int
	text     int
	notice   int
	byKind   map[domain.FormatKind]int
	boldKind map[domain.FormatKind]int
	bold     int
}

// numberFormat é o formato de célula de cada tipo; o símbolo da moeda vem do banner
func numberFormat(kind domain.FormatKind, currencySymbol string) string {
	switch kind {
	case domain.FormatInteger:
		return "#,##0"
	case domain.FormatDecimal:
		return "#,##0.00"
	case domain.FormatCurrency:
		return fmt.Sprintf(`"%s" #,##0.00`, currencySymbol)
	case domain.FormatDate:
		return "dd/mm/yyyy"
	}
	return "@"
}

// XLSX gera a planilha com título e período mesclados sobre a largura do cabeçalho,
// formato numérico por tipo de coluna, subtotais por grupo e total geral
func XLSX(table *domain.Table, banner Banner) ([]byte, error) {
	if table == nil {
		table = &domain.Table{}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	styles, err := newXLSXStyles(f, banner.currency())
	if err != nil {
		return nil, err
	}

	columns := len(table.Header)
	if columns == 0 {
		columns = 1
	}
	lastColumn, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return nil, err
	}

	if err := writeBanner(f, styles, banner, lastColumn); err != nil {
		return nil, err
	}

	for i, header := range table.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellStr(SheetName, cell, header.Label); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetName, cellName(1, headerRow), cellName(columns, headerRow), styles.header); err != nil {
		return nil, err
	}

	row := firstDataRow
	for _, s := range sections(table) {
		for _, data := range s.rows {
			if err := writeCells(f, styles, row, data.Cells, "", false); err != nil {
				return nil, err
			}
			row++
		}
		if s.total != nil {
			if err := writeCells(f, styles, row, s.total.Cells, s.total.Label, true); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := writeCells(f, styles, row, table.GrandTotalRow.Cells, table.GrandTotalRow.Label, true); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(SheetName, "A", lastColumn, defaultColumnW); err != nil {
		return nil, err
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: cellName(1, firstDataRow),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeBanner(f *excelize.File, styles *xlsxStyles, banner Banner, lastColumn string) error {
	lines := []struct {
		row   int
		text  string
		style int
	}{
		{titleRow, banner.Title, styles.title},
		{periodRow, banner.Period, styles.period},
	}

	for _, line := range lines {
		first := cellName(1, line.row)
		last := fmt.Sprintf("%s%d", lastColumn, line.row)

		if err := f.SetCellStr(SheetName, first, line.text); err != nil {
			return err
		}
		if first != last {
			if err := f.MergeCell(SheetName, first, last); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(SheetName, first, last, line.style); err != nil {
			return err
		}
	}

	if banner.Notice != "" {
		cell := cellName(1, periodRow+1)
		if err := f.SetCellStr(SheetName, cell, banner.Notice); err != nil {
			return err
		}
		return f.SetCellStyle(SheetName, cell, cell, styles.notice)
	}

	return nil
}

func writeCells(f *excelize.File, styles *xlsxStyles, row int, cells []domain.Cell, label string, bold bool) error {
	for i, cell := range cells {
		name := cellName(i+1, row)

		style := styles.byKind[cell.Kind]
		if bold {
			style = styles.boldKind[cell.Kind]
		}

		var err error
		switch {
		case i == 0 && label != "" && cell.Empty:
			err = f.SetCellStr(SheetName, name, label)
			style = styles.bold
		case cell.Empty:
			if cell.Text != "" {
				err = f.SetCellStr(SheetName, name, cell.Text)
				style = styles.text
			}
		case cell.Kind.IsNumeric():
			err = f.SetCellFloat(SheetName, name, cell.Number, -1, 64)
		case cell.Kind == domain.FormatDate && cell.Date != nil:
			err = f.SetCellValue(SheetName, name, *cell.Date)
		default:
			err = f.SetCellStr(SheetName, name, cell.Text)
		}
		if err != nil {
			return err
		}

		if style != 0 {
			if err := f.SetCellStyle(SheetName, name, name, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellName(column, row int) string {
	name, _ := excelize.CoordinatesToCellName(column, row)
	return name
}

func newXLSXStyles(f *excelize.File, currencySymbol string) (*xlsxStyles, error) {
	styles := &xlsxStyles{
		byKind:   make(map[domain.FormatKind]int),
		boldKind: make(map[domain.FormatKind]int),
	}

	var err error
	if styles.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}

	if styles.period, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}

	if styles.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	}); err != nil {
		return nil, err
	}

	if styles.text, err = f.NewStyle(&excelize.Style{}); err != nil {
		return nil, err
	}

	if styles.notice, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "C00000"}}); err != nil {
		return nil, err
	}

	if styles.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}

	kinds := []domain.FormatKind{domain.FormatInteger, domain.FormatDecimal, domain.FormatCurrency, domain.FormatDate, domain.FormatText}
	for _, kind := range kinds {
		format := numberFormat(kind, currencySymbol)

		if styles.byKind[kind], err = f.NewStyle(&excelize.Style{CustomNumFmt: &format}); err != nil {
			return nil, err
		}
		if styles.boldKind[kind], err = f.NewStyle(&excelize.Style{
			CustomNumFmt: &format,
			Font:         &excelize.Font{Bold: true},
			Border:       []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
		}); err != nil {
			return nil, err
		}
	}

	return styles, nil
}
