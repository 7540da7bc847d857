package enriching

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/pkg/utils"
)

type Strategy string

const (
	// StrategyUniqueJoin junta os valores distintos dos itens, na ordem em que aparecem, com ", "
	StrategyUniqueJoin Strategy = "unique_join"
	// StrategyFirstNonEmpty usa o primeiro valor preenchido dos itens (campos constantes entre itens)
	StrategyFirstNonEmpty Strategy = "first_non_empty"
	// StrategySumOfProducts usa o valor explícito do detalhe ou soma preço x quantidade dos itens
	StrategySumOfProducts Strategy = "sum_of_products"
	// StrategySum usa o valor explícito do detalhe ou soma um campo dos itens
	StrategySum Strategy = "sum"
)

const joinSeparator = ", "

// DerivedField é uma regra de fallback priorizada para um campo calculado a partir do detalhe
type DerivedField struct {
	Target   string
	Strategy Strategy
	// Items é o campo do detalhe com a lista aninhada; vazio usa o próprio detalhe como único item
	Items string
	// Sources são os campos do item em ordem de prioridade
	Sources []string
	// Explicit são campos do detalhe que, quando presentes, já trazem o valor (ex: subtotal)
	Explicit []string
	// PriceFields e QuantityFields alimentam StrategySumOfProducts; a quantidade segue a ordem
	// unidade principal, unidade secundária, peso
	PriceFields    []string
	QuantityFields []string
}

// MergeRules define como o detalhe é mesclado ao cabeçalho.
// O cabeçalho sempre prevalece, exceto nos campos de Overridable quando o detalhe traz valor não nulo.
type MergeRules struct {
	Overridable []string
	Derived     []DerivedField
}

func (m MergeRules) overridable() map[string]bool {
	set := make(map[string]bool, len(m.Overridable))
	for _, field := range m.Overridable {
		set[field] = true
	}
	return set
}

// Merge produz uma nova linha a partir do cabeçalho e do detalhe. O cabeçalho não é alterado.
func Merge(header, detail domain.Record, rules MergeRules) domain.Record {
	row := header.Clone()
	if row == nil {
		row = domain.Record{}
	}

	if detail == nil {
		return row
	}

	overridable := rules.overridable()
	deepMerge(row, detail, overridable, "")

	for _, derived := range rules.Derived {
		value, absent := derived.resolve(detail)

		current := row.Get(derived.Target)
		if utils.IsBlank(current) || (overridable[derived.Target] && !absent) {
			row[derived.Target] = value
		}
	}

	return row
}

func deepMerge(dst domain.Record, src domain.Record, overridable map[string]bool, prefix string) {
	for key, value := range src {
		path := prefix + key
		current, exists := dst[key]

		if !exists || utils.IsBlank(current) {
			dst[key] = domain.Record{key: value}.Clone()[key]
			continue
		}

		currentMap, currentIsMap := asRecord(current)
		valueMap, valueIsMap := asRecord(value)
		if currentIsMap && valueIsMap {
			merged := currentMap.Clone()
			deepMerge(merged, valueMap, overridable, path+".")
			dst[key] = merged
			continue
		}

		if overridable[path] && value != nil {
			dst[key] = domain.Record{key: value}.Clone()[key]
		}
	}
}

func asRecord(v any) (domain.Record, bool) {
	switch value := v.(type) {
	case domain.Record:
		return value, true
	case map[string]any:
		return domain.Record(value), true
	}
	return nil, false
}

// resolve calcula o valor derivado; absent indica que o detalhe não trouxe informação
func (d DerivedField) resolve(detail domain.Record) (any, bool) {
	items := d.items(detail)

	switch d.Strategy {
	case StrategyUniqueJoin:
		joined := UniqueJoin(items, d.Sources...)
		return joined, joined == ""
	case StrategyFirstNonEmpty:
		value := FirstNonEmpty(items, d.Sources...)
		return value, value == nil
	case StrategySumOfProducts:
		if value, ok := explicitValue(detail, d.Explicit); ok {
			return value, false
		}
		return SumOfProducts(items, d.PriceFields, d.QuantityFields), d.missingItems(detail)
	case StrategySum:
		if value, ok := explicitValue(detail, d.Explicit); ok {
			return value, false
		}
		return SumField(items, d.Sources...), d.missingItems(detail)
	}

	return nil, true
}

// missingItems indica que o detalhe não trouxe a lista de itens; lista vazia conta como presente
func (d DerivedField) missingItems(detail domain.Record) bool {
	return d.Items != "" && detail.Get(d.Items) == nil
}

func (d DerivedField) items(detail domain.Record) []domain.Record {
	if d.Items == "" {
		return []domain.Record{detail}
	}
	return detail.Items(d.Items)
}

func explicitValue(detail domain.Record, fields []string) (float64, bool) {
	for _, field := range fields {
		value := detail.Get(field)
		if !utils.IsBlank(value) {
			return utils.ParseAmount(value), true
		}
	}
	return 0, false
}

// firstPresent retorna o primeiro campo preenchido do item, seguindo a ordem de prioridade
func firstPresent(item domain.Record, fields []string) any {
	for _, field := range fields {
		value := item.Get(field)
		if !utils.IsBlank(value) {
			return value
		}
	}
	return nil
}

// UniqueJoin coleta o campo em todos os itens, remove vazios e duplicados mantendo a
// primeira ocorrência e junta com ", ". Sem valores, retorna "".
func UniqueJoin(items []domain.Record, fields ...string) string {
	seen := make(map[string]bool)
	values := make([]string, 0, len(items))

	for _, item := range items {
		raw := firstPresent(item, fields)
		if raw == nil {
			continue
		}

		value := strings.TrimSpace(cast.ToString(raw))
		if value == "" || seen[value] {
			continue
		}

		seen[value] = true
		values = append(values, value)
	}

	return strings.Join(values, joinSeparator)
}

// FirstNonEmpty retorna o primeiro valor preenchido entre os itens, ou nil
func FirstNonEmpty(items []domain.Record, fields ...string) any {
	for _, item := range items {
		if value := firstPresent(item, fields); value != nil {
			return value
		}
	}
	return nil
}

// SumOfProducts soma preço unitário x quantidade dos itens. Zero é um resultado válido.
func SumOfProducts(items []domain.Record, priceFields, quantityFields []string) float64 {
	total := decimal.Zero

	for _, item := range items {
		price := utils.ParseAmount(firstPresent(item, priceFields))
		quantity := utils.ParseAmount(firstPresent(item, quantityFields))

		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(quantity)))
	}

	return total.InexactFloat64()
}

// SumField soma o primeiro campo preenchido de cada item
func SumField(items []domain.Record, fields ...string) float64 {
	total := decimal.Zero

	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(utils.ParseAmount(firstPresent(item, fields))))
	}

	return total.InexactFloat64()
}
