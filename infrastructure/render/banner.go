package render

import (
	"fmt"
	"time"

	"github.com/vfg2006/erp-report-api/internal/domain"
)

const (
	DefaultCurrencySymbol = "R$"
	displayDateLayout     = "02/01/2006"
)

// Banner são as linhas de título e período impressas acima da tabela
type Banner struct {
	Title          string
	Period         string
	GeneratedAt    time.Time
	Notice         string
	CurrencySymbol string
}

func (b Banner) currency() string {
	if b.CurrencySymbol == "" {
		return DefaultCurrencySymbol
	}
	return b.CurrencySymbol
}

// NewBanner monta o banner a partir do título e dos limites de data do filtro
func NewBanner(title string, filter domain.FilterSpec, generatedAt time.Time) Banner {
	return Banner{
		Title:       title,
		Period:      PeriodLabel(filter),
		GeneratedAt: generatedAt,
	}
}

// PeriodLabel descreve o intervalo de datas do filtro
func PeriodLabel(filter domain.FilterSpec) string {
	switch {
	case filter.Start != nil && filter.End != nil:
		return fmt.Sprintf("Período: %s a %s", filter.Start.Format(displayDateLayout), filter.End.Format(displayDateLayout))
	case filter.Start != nil:
		return fmt.Sprintf("Período: a partir de %s", filter.Start.Format(displayDateLayout))
	case filter.End != nil:
		return fmt.Sprintf("Período: até %s", filter.End.Format(displayDateLayout))
	}
	return "Período: todos os registros"
}

// section é um bloco de linhas de um grupo seguido do seu subtotal
type section struct {
	rows  []domain.DataRow
	total *domain.TotalRow
}

// sections intercala as linhas de dados com os subtotais dos grupos, na ordem da tabela
func sections(table *domain.Table) []section {
	if table == nil {
		return nil
	}

	totals := make(map[string]*domain.TotalRow, len(table.GroupTotalRows))
	for i := range table.GroupTotalRows {
		totals[table.GroupTotalRows[i].Group] = &table.GroupTotalRows[i]
	}

	out := make([]section, 0)
	for _, row := range table.DataRows {
		if len(out) == 0 || out[len(out)-1].rows[0].Group != row.Group {
			out = append(out, section{total: totals[row.Group]})
		}
		out[len(out)-1].rows = append(out[len(out)-1].rows, row)
	}

	return out
}
