package filtering

import "fmt"

// FilterError indica um filtro mal formado. É retornado antes de qualquer busca na origem.
type FilterError struct {
	Field  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter %s: %s", e.Field, e.Reason)
}
