package domain

import "time"

// FilterSpec define as restrições aplicadas às linhas já enriquecidas.
// Limites ausentes significam intervalo aberto naquele lado; todas as restrições são combinadas com AND.
type FilterSpec struct {
	DateField    string            `json:"date_field,omitempty"`
	Start        *time.Time        `json:"start,omitempty"`
	End          *time.Time        `json:"end,omitempty"`
	TextFilters  map[string]string `json:"text_filters,omitempty"`
	ExactFilters map[string]string `json:"exact_filters,omitempty"`
}

func (f FilterSpec) HasDateBounds() bool {
	return f.Start != nil || f.End != nil
}
