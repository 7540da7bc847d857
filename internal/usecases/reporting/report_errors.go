package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para a montagem de relatórios
var (
	ErrUnknownReportKind = errors.New("unknown report kind")
	ErrSourceUnavailable = errors.New("report source is not configured")
	ErrGenerateBuildID   = errors.New("error generating build id")
)

// ConnectionError indica que a listagem dos cabeçalhos falhou. É fatal para o relatório.
type ConnectionError struct {
	Kind string // Tipo de relatório
	Err  error  // Erro base
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error listing %s headers: %v", e.Kind, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// EmptyResultNotice não é um erro: nenhuma linha sobrou após os filtros
type EmptyResultNotice struct {
	Message string `json:"message"`
	Listed  int    `json:"listed"`
}

func newEmptyResultNotice(listed int) *EmptyResultNotice {
	message := "Nenhum registro encontrado para os filtros informados"
	if listed == 0 {
		message = "A origem não retornou registros"
	}

	return &EmptyResultNotice{Message: message, Listed: listed}
}
