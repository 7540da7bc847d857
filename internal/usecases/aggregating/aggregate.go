package aggregating

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/pkg/utils"
)

const DefaultEmptyKeyLabel = "Sem informação"

// Aggregation é o resultado do agrupamento de um conjunto de linhas já filtradas
type Aggregation struct {
	Groups     []domain.Group
	GrandTotal domain.Totals
	RowCount   int
}

// Aggregate particiona as linhas e calcula os totais de cada grupo e o total geral.
// O total geral considera todas as linhas, inclusive as que não entraram em nenhum grupo.
func Aggregate(rows []domain.Record, spec domain.GroupSpec, fields []string) Aggregation {
	groups := Partition(rows, spec)
	for i := range groups {
		groups[i].Totals = Totals(groups[i].Rows, fields)
	}

	return Aggregation{
		Groups:     groups,
		GrandTotal: Totals(rows, fields),
		RowCount:   len(rows),
	}
}

// Partition distribui as linhas entre os grupos, mantendo a ordem das linhas dentro de cada grupo.
// Grupos vazios são omitidos. Sem definição de grupos retorna nil.
func Partition(rows []domain.Record, spec domain.GroupSpec) []domain.Group {
	if spec.KeyField != "" {
		return partitionByKey(rows, spec.KeyField, spec.EmptyKeyLabel)
	}

	if len(spec.Defs) == 0 {
		return nil
	}

	buckets := make([][]domain.Record, len(spec.Defs))
	for _, row := range rows {
		for i, def := range spec.Defs {
			if def.Match != nil && def.Match(row) {
				buckets[i] = append(buckets[i], row)
				break
			}
		}
	}

	groups := make([]domain.Group, 0, len(spec.Defs))
	for i, def := range spec.Defs {
		if len(buckets[i]) == 0 {
			continue
		}
		groups = append(groups, domain.Group{Label: def.Label, Rows: buckets[i]})
	}

	return groups
}

func partitionByKey(rows []domain.Record, field, emptyLabel string) []domain.Group {
	if emptyLabel == "" {
		emptyLabel = DefaultEmptyKeyLabel
	}

	index := make(map[string]int)
	groups := make([]domain.Group, 0)

	for _, row := range rows {
		label := strings.TrimSpace(row.String(field))
		if label == "" {
			label = emptyLabel
		}

		position, ok := index[label]
		if !ok {
			position = len(groups)
			index[label] = position
			groups = append(groups, domain.Group{Label: label})
		}

		groups[position].Rows = append(groups[position].Rows, row)
	}

	return groups
}

// Totals soma cada campo nas linhas. Valores mal formados contribuem com zero.
func Totals(rows []domain.Record, fields []string) domain.Totals {
	sums := make(map[string]decimal.Decimal, len(fields))
	for _, field := range fields {
		sums[field] = decimal.Zero
	}

	for _, row := range rows {
		for _, field := range fields {
			amount := utils.ParseAmount(row.Get(field))
			sums[field] = sums[field].Add(decimal.NewFromFloat(amount))
		}
	}

	totals := make(domain.Totals, len(fields))
	for field, sum := range sums {
		totals[field] = sum.InexactFloat64()
	}

	return totals
}
