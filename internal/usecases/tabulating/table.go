package tabulating

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/internal/usecases/aggregating"
	"github.com/vfg2006/erp-report-api/pkg/utils"
)

const (
	GrandTotalLabel     = "Total geral"
	groupSubtotalPrefix = "Subtotal "
)

// BuildTable monta o modelo tabular. Com grupos, as linhas de dados seguem a ordem dos grupos
// e linhas fora de qualquer grupo aparecem apenas no total geral.
func BuildTable(title string, rows []domain.Record, columns []domain.Column, groups domain.GroupSpec) *domain.Table {
	fields := domain.TotalFields(columns)
	aggregation := aggregating.Aggregate(rows, groups, fields)

	table := &domain.Table{
		Title:    title,
		Header:   headerRow(columns),
		DataRows: make([]domain.DataRow, 0, len(rows)),
		GrandTotalRow: domain.TotalRow{
			Label:    GrandTotalLabel,
			RowCount: aggregation.RowCount,
			Cells:    totalCells(columns, aggregation.GrandTotal),
		},
	}

	if groups.IsZero() {
		for _, row := range rows {
			table.DataRows = append(table.DataRows, dataRow(row, columns, ""))
		}
		return table
	}

	for _, group := range aggregation.Groups {
		for _, row := range group.Rows {
			table.DataRows = append(table.DataRows, dataRow(row, columns, group.Label))
		}

		table.GroupTotalRows = append(table.GroupTotalRows, domain.TotalRow{
			Label:    groupSubtotalPrefix + group.Label,
			Group:    group.Label,
			RowCount: len(group.Rows),
			Cells:    totalCells(columns, group.Totals),
		})
	}

	return table
}

func headerRow(columns []domain.Column) []domain.HeaderCell {
	header := make([]domain.HeaderCell, 0, len(columns))
	for _, column := range columns {
		header = append(header, domain.HeaderCell{
			Key:    column.Key,
			Label:  column.Header,
			Format: column.Format,
		})
	}
	return header
}

func dataRow(row domain.Record, columns []domain.Column, group string) domain.DataRow {
	cells := make([]domain.Cell, 0, len(columns))
	for _, column := range columns {
		cells = append(cells, NewCell(column.Format, column.Value(row)))
	}
	return domain.DataRow{Group: group, Cells: cells}
}

func totalCells(columns []domain.Column, totals domain.Totals) []domain.Cell {
	cells := make([]domain.Cell, 0, len(columns))
	for _, column := range columns {
		if !column.Total || !column.Format.IsNumeric() {
			cells = append(cells, domain.Cell{Kind: column.Format, Empty: true})
			continue
		}
		cells = append(cells, domain.Cell{Kind: column.Format, Number: totals[column.Key]})
	}
	return cells
}

// NewCell converte um valor bruto na célula do formato pedido. Valores ausentes viram célula vazia;
// datas inválidas mantêm o texto original para exibição.
func NewCell(kind domain.FormatKind, value any) domain.Cell {
	if utils.IsBlank(value) {
		return domain.Cell{Kind: kind, Empty: true}
	}

	switch {
	case kind.IsNumeric():
		return domain.Cell{Kind: kind, Number: utils.ParseAmount(value)}
	case kind == domain.FormatDate:
		date, ok := utils.NormalizeDate(value)
		if !ok {
			return domain.Cell{Kind: kind, Text: toText(value), Empty: true}
		}
		return domain.Cell{Kind: kind, Date: &date}
	}

	text := toText(value)
	if text == "" {
		return domain.Cell{Kind: domain.FormatText, Empty: true}
	}

	return domain.Cell{Kind: domain.FormatText, Text: text}
}

func toText(value any) string {
	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
