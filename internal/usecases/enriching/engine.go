package enriching

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxConcurrency = 5
	DefaultIDField        = "id"
)

// FetchFunc busca o detalhe completo de uma linha pelo id
type FetchFunc func(ctx context.Context, id string) (domain.Record, error)

// DetailResult é o resultado da busca de uma linha: o detalhe ou a falha
type DetailResult struct {
	Detail domain.Record
	Err    error
}

func (r DetailResult) Failed() bool {
	return r.Err != nil
}

// Plan descreve como enriquecer as linhas de um tipo de relatório
type Plan struct {
	IDField string
	Rules   MergeRules
}

func (p Plan) idField() string {
	if p.IDField == "" {
		return DefaultIDField
	}
	return p.IDField
}

type Stats struct {
	Total    int `json:"total"`
	Enriched int `json:"enriched"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

type Result struct {
	Rows   []domain.Record
	Stats  Stats
	Errors []*DetailFetchError
}

type Engine struct {
	maxConcurrency int
}

// NewEngine cria o motor de enriquecimento. Valores de concorrência menores que 1 usam o padrão.
func NewEngine(maxConcurrency int) *Engine {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultMaxConcurrency
	}

	return &Engine{maxConcurrency: maxConcurrency}
}

func (e *Engine) MaxConcurrency() int {
	return e.maxConcurrency
}

// Enrich busca o detalhe de cada cabeçalho com no máximo maxConcurrency buscas simultâneas e
// mescla o resultado na linha correspondente. A saída mantém a ordem da entrada.
// Falhas de uma linha não interrompem as demais; apenas o cancelamento do contexto retorna erro.
func (e *Engine) Enrich(ctx context.Context, headers []domain.Record, fetch FetchFunc, plan Plan) (*Result, error) {
	result := &Result{
		Rows:  make([]domain.Record, len(headers)),
		Stats: Stats{Total: len(headers)},
	}
	copy(result.Rows, headers)

	if fetch == nil || len(headers) == 0 {
		return result, nil
	}

	idField := plan.idField()
	ids := make([]string, len(headers))
	queue := make(chan int, len(headers))

	for i, header := range headers {
		ids[i] = header.String(idField)
		if ids[i] == "" {
			result.Stats.Skipped++
			logrus.WithFields(logrus.Fields{
				"row": i,
			}).Debug("Linha sem id, mantendo apenas o cabeçalho")
			continue
		}
		queue <- i
	}
	close(queue)

	results := make([]DetailResult, len(headers))

	workers := e.maxConcurrency
	if pending := len(headers) - result.Stats.Skipped; pending < workers {
		workers = pending
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for index := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[index] = e.fetchOne(gctx, fetch, ids[index])
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, res := range results {
		if ids[i] == "" {
			continue
		}

		if res.Failed() {
			fetchErr := &DetailFetchError{RowIndex: i, ID: ids[i], Err: res.Err}
			result.Errors = append(result.Errors, fetchErr)
			result.Stats.Failed++

			logrus.WithFields(logrus.Fields{
				"row":   i,
				"id":    ids[i],
				"error": res.Err,
			}).Warn("Falha ao buscar detalhe, mantendo apenas o cabeçalho")
			continue
		}

		result.Rows[i] = Merge(headers[i], res.Detail, plan.Rules)
		result.Stats.Enriched++
	}

	return result, nil
}

func (e *Engine) fetchOne(ctx context.Context, fetch FetchFunc, id string) DetailResult {
	detail, err := fetch(ctx, id)
	if err == nil && len(detail) == 0 {
		err = ErrEmptyDetail
	}

	if err != nil {
		return DetailResult{Err: err}
	}

	return DetailResult{Detail: detail}
}
