package domain

import "strings"

// Totals mapeia campo numérico para a soma no conjunto de linhas
type Totals map[string]float64

type Predicate func(Record) bool

// GroupDef é um grupo nomeado; a linha pertence ao primeiro grupo cujo predicado aceitar
type GroupDef struct {
	Label string
	Match Predicate
}

// GroupSpec descreve o particionamento de um relatório: lista ordenada de definições
// ou, quando KeyField é informado, um grupo por valor distinto do campo (na ordem em que aparecem).
type GroupSpec struct {
	Defs          []GroupDef
	KeyField      string
	EmptyKeyLabel string
}

func (g GroupSpec) IsZero() bool {
	return len(g.Defs) == 0 && g.KeyField == ""
}

// Group é uma partição já calculada, com seus totais
type Group struct {
	Label  string   `json:"label"`
	Rows   []Record `json:"-"`
	Totals Totals   `json:"totals"`
}

// FieldEquals compara o campo como texto, sem diferenciar maiúsculas e ignorando espaços
func FieldEquals(field, value string) Predicate {
	return func(r Record) bool {
		return strings.EqualFold(strings.TrimSpace(r.String(field)), strings.TrimSpace(value))
	}
}

func Not(p Predicate) Predicate {
	return func(r Record) bool {
		return !p(r)
	}
}

func Always() Predicate {
	return func(Record) bool {
		return true
	}
}
