package enriching

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDetail = errors.New("detail payload is empty")
)

// DetailFetchError registra a falha de enriquecimento de uma linha. Nunca é propagado:
// a linha mantém apenas os valores do cabeçalho.
type DetailFetchError struct {
	RowIndex int    // Posição da linha na listagem
	ID       string // ID usado na busca do detalhe
	Err      error  // Erro base
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("detail fetch failed for row %d (id %q): %v", e.RowIndex, e.ID, e.Err)
}

func (e *DetailFetchError) Unwrap() error {
	return e.Err
}
