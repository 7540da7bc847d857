package domain

import (
	"strings"

	"github.com/spf13/cast"
)

// Record é uma linha de relatório: nome do campo para valor (string, número, data,
// mapas e listas aninhadas vindos do detalhe). Cabeçalhos e detalhes usam o mesmo tipo.
type Record map[string]any

// Get busca um campo, aceitando caminhos com ponto para mapas aninhados (ex: "customer.name")
func (r Record) Get(field string) any {
	if r == nil {
		return nil
	}

	if value, ok := r[field]; ok {
		return value
	}

	if !strings.Contains(field, ".") {
		return nil
	}

	var current any = map[string]any(r)
	for _, part := range strings.Split(field, ".") {
		switch node := current.(type) {
		case Record:
			current = node[part]
		case map[string]any:
			current = node[part]
		default:
			return nil
		}
	}

	return current
}

// String retorna o campo como texto; valores ausentes viram ""
func (r Record) String(field string) string {
	value := r.Get(field)
	if value == nil {
		return ""
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}

	return s
}

// Has indica se o campo existe com valor não nulo
func (r Record) Has(field string) bool {
	return r.Get(field) != nil
}

// Items retorna a lista aninhada de um campo como registros, ignorando entradas que não são mapas
func (r Record) Items(field string) []Record {
	raw := r.Get(field)

	switch list := raw.(type) {
	case []Record:
		return list
	case []map[string]any:
		items := make([]Record, 0, len(list))
		for _, item := range list {
			items = append(items, Record(item))
		}
		return items
	case []any:
		items := make([]Record, 0, len(list))
		for _, entry := range list {
			switch item := entry.(type) {
			case Record:
				items = append(items, item)
			case map[string]any:
				items = append(items, Record(item))
			}
		}
		return items
	}

	return nil
}

// Clone faz uma cópia profunda de mapas e listas
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	clone := make(Record, len(r))
	for key, value := range r {
		clone[key] = cloneValue(value)
	}

	return clone
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case Record:
		return value.Clone()
	case map[string]any:
		return map[string]any(Record(value).Clone())
	case []any:
		list := make([]any, len(value))
		for i, item := range value {
			list[i] = cloneValue(item)
		}
		return list
	case []Record:
		list := make([]Record, len(value))
		for i, item := range value {
			list[i] = item.Clone()
		}
		return list
	case []map[string]any:
		list := make([]map[string]any, len(value))
		for i, item := range value {
			list[i] = map[string]any(Record(item).Clone())
		}
		return list
	}

	return v
}
