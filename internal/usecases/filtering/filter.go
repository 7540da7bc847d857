package filtering

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/pkg/utils"
)

// Filter retorna as linhas que atendem a todas as restrições, na ordem original.
// Quando DateField está definido, linhas com data inválida são excluídas mesmo sem limites.
func Filter(rows []domain.Record, spec domain.FilterSpec) []domain.Record {
	kept := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		if Matches(row, spec) {
			kept = append(kept, row)
		}
	}
	return kept
}

// Matches aplica o FilterSpec a uma única linha
func Matches(row domain.Record, spec domain.FilterSpec) bool {
	if spec.DateField != "" && !matchesDate(row, spec) {
		return false
	}

	for field, needle := range spec.TextFilters {
		if !matchesText(row.Get(field), needle) {
			return false
		}
	}

	for field, expected := range spec.ExactFilters {
		if !matchesExact(row.Get(field), expected) {
			return false
		}
	}

	return true
}

func matchesDate(row domain.Record, spec domain.FilterSpec) bool {
	date, ok := utils.NormalizeDate(row.Get(spec.DateField))
	if !ok {
		return false
	}

	if spec.Start != nil {
		if start, ok := utils.NormalizeDate(*spec.Start); ok && date.Before(start) {
			return false
		}
	}

	if spec.End != nil {
		if end, ok := utils.NormalizeDate(*spec.End); ok && date.After(end) {
			return false
		}
	}

	return true
}

func matchesText(value any, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}

	return strings.Contains(strings.ToLower(stringify(value)), strings.ToLower(needle))
}

func matchesExact(value any, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return true
	}

	return strings.EqualFold(strings.TrimSpace(stringify(value)), expected)
}

func stringify(value any) string {
	if value == nil {
		return ""
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}

	return s
}
