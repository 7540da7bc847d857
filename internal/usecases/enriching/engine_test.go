package enriching

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/erp-report-api/internal/domain"
)

func headersWithIDs(ids ...string) []domain.Record {
	headers := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		headers = append(headers, domain.Record{"id": id, "number": "NF-" + id})
	}
	return headers
}

func TestEngine_Enrich(t *testing.T) {
	tests := []struct {
		name     string
		headers  []domain.Record
		fetch    FetchFunc
		validate func(t *testing.T, result *Result)
	}{
		{
			name:    "Mantém a ordem da entrada mesmo com uma busca lenta",
			headers: headersWithIDs("1", "2", "3", "4"),
			fetch: func(ctx context.Context, id string) (domain.Record, error) {
				if id == "1" {
					time.Sleep(30 * time.Millisecond)
				}
				return domain.Record{"detail_of": id}, nil
			},
			validate: func(t *testing.T, result *Result) {
				require.Len(t, result.Rows, 4)
				for i, id := range []string{"1", "2", "3", "4"} {
					assert.Equal(t, id, result.Rows[i]["id"])
					assert.Equal(t, id, result.Rows[i]["detail_of"])
				}
				assert.Equal(t, 4, result.Stats.Enriched)
				assert.Empty(t, result.Errors)
			},
		},
		{
			name:    "Falha em uma linha mantém apenas o cabeçalho e não afeta as demais",
			headers: headersWithIDs("1", "2", "3"),
			fetch: func(ctx context.Context, id string) (domain.Record, error) {
				if id == "2" {
					return nil, errors.New("timeout")
				}
				return domain.Record{"customer_name": "Cliente " + id}, nil
			},
			validate: func(t *testing.T, result *Result) {
				require.Len(t, result.Rows, 3)
				assert.Equal(t, "Cliente 1", result.Rows[0]["customer_name"])
				assert.Equal(t, domain.Record{"id": "2", "number": "NF-2"}, result.Rows[1])
				assert.Equal(t, "Cliente 3", result.Rows[2]["customer_name"])

				assert.Equal(t, Stats{Total: 3, Enriched: 2, Failed: 1}, result.Stats)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, 1, result.Errors[0].RowIndex)
				assert.Equal(t, "2", result.Errors[0].ID)
				assert.EqualError(t, result.Errors[0].Unwrap(), "timeout")
			},
		},
		{
			name:    "Detalhe vazio é tratado como falha",
			headers: headersWithIDs("1"),
			fetch: func(ctx context.Context, id string) (domain.Record, error) {
				return domain.Record{}, nil
			},
			validate: func(t *testing.T, result *Result) {
				require.Len(t, result.Errors, 1)
				assert.ErrorIs(t, result.Errors[0], ErrEmptyDetail)
				assert.Equal(t, 1, result.Stats.Failed)
			},
		},
		{
			name:    "Linha sem id é ignorada sem buscar detalhe",
			headers: []domain.Record{{"number": "NF-sem-id"}, {"id": "7"}},
			fetch: func(ctx context.Context, id string) (domain.Record, error) {
				if id == "" {
					t.Fatal("busca não deveria acontecer para linha sem id")
				}
				return domain.Record{"extra": true}, nil
			},
			validate: func(t *testing.T, result *Result) {
				assert.Equal(t, domain.Record{"number": "NF-sem-id"}, result.Rows[0])
				assert.Equal(t, true, result.Rows[1]["extra"])
				assert.Equal(t, Stats{Total: 2, Enriched: 1, Skipped: 1}, result.Stats)
			},
		},
		{
			name:    "Sem buscador de detalhe retorna os cabeçalhos inalterados",
			headers: headersWithIDs("1", "2"),
			fetch:   nil,
			validate: func(t *testing.T, result *Result) {
				assert.Equal(t, headersWithIDs("1", "2"), result.Rows)
				assert.Equal(t, Stats{Total: 2}, result.Stats)
			},
		},
		{
			name:    "Lista vazia retorna resultado vazio",
			headers: nil,
			fetch: func(ctx context.Context, id string) (domain.Record, error) {
				return domain.Record{"x": 1}, nil
			},
			validate: func(t *testing.T, result *Result) {
				assert.Empty(t, result.Rows)
				assert.Empty(t, result.Errors)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(DefaultMaxConcurrency)

			result, err := engine.Enrich(context.Background(), tt.headers, tt.fetch, Plan{})

			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestEngine_Enrich_LimitaConcorrencia(t *testing.T) {
	ids := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		ids = append(ids, string(rune('a'+i)))
	}

	var started, inFlight, maxInFlight int32
	release := make(chan struct{})
	fetch := func(ctx context.Context, id string) (domain.Record, error) {
		atomic.AddInt32(&started, 1)
		current := atomic.AddInt32(&inFlight, 1)
		for {
			observed := atomic.LoadInt32(&maxInFlight)
			if current <= observed || atomic.CompareAndSwapInt32(&maxInFlight, observed, current) {
				break
			}
		}
		<-release
		atomic.AddInt32(&inFlight, -1)
		return domain.Record{"ok": true}, nil
	}

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := NewEngine(5).Enrich(context.Background(), headersWithIDs(ids...), fetch, Plan{})
		done <- outcome{result: result, err: err}
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&inFlight) == 5
	}, time.Second, time.Millisecond, "cinco buscas devem ficar em andamento")

	// com as cinco vagas ocupadas nenhuma sexta busca pode começar
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(5), atomic.LoadInt32(&started))

	close(release)

	var got outcome
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enriquecimento não terminou após liberar as buscas")
	}

	require.NoError(t, got.err)
	assert.Equal(t, 20, got.result.Stats.Enriched)
	assert.Equal(t, int32(20), atomic.LoadInt32(&started))
	assert.Equal(t, int32(5), atomic.LoadInt32(&maxInFlight))
}

func TestEngine_Enrich_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetch := func(ctx context.Context, id string) (domain.Record, error) {
		return domain.Record{"ok": true}, nil
	}

	result, err := NewEngine(5).Enrich(ctx, headersWithIDs("1", "2", "3"), fetch, Plan{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestEngine_Enrich_CancelamentoAbandonaBuscasEmAndamento(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	var started sync.WaitGroup
	started.Add(1)
	var once sync.Once

	fetch := func(ctx context.Context, id string) (domain.Record, error) {
		once.Do(started.Done)
		<-release
		return domain.Record{"ok": true}, nil
	}

	go func() {
		started.Wait()
		cancel()
	}()

	result, err := NewEngine(2).Enrich(ctx, headersWithIDs("1", "2"), fetch, Plan{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestNewEngine_ConcorrenciaPadrao(t *testing.T) {
	assert.Equal(t, DefaultMaxConcurrency, NewEngine(0).MaxConcurrency())
	assert.Equal(t, 3, NewEngine(3).MaxConcurrency())
}

func TestEngine_Enrich_AplicaRegrasDeMescla(t *testing.T) {
	headers := []domain.Record{{"id": "10", "customer_name": "Cabeçalho", "status": "1"}}
	fetch := func(ctx context.Context, id string) (domain.Record, error) {
		return domain.Record{
			"customer_name": "Detalhe",
			"items": []any{
				map[string]any{"color_code": "AZ", "unit_price": 2.0, "quantity": 3},
				map[string]any{"color_code": "VM", "unit_price": 1.0, "quantity": 4},
			},
		}, nil
	}

	plan := Plan{Rules: MergeRules{Derived: []DerivedField{
		{Target: "color_codes", Strategy: StrategyUniqueJoin, Items: "items", Sources: []string{"color_code"}},
		{Target: "subtotal", Strategy: StrategySumOfProducts, Items: "items", Explicit: []string{"subtotal"},
			PriceFields: []string{"unit_price"}, QuantityFields: []string{"quantity"}},
	}}}

	result, err := NewEngine(5).Enrich(context.Background(), headers, fetch, plan)

	require.NoError(t, err)
	row := result.Rows[0]
	assert.Equal(t, "Cabeçalho", row["customer_name"])
	assert.Equal(t, "AZ, VM", row["color_codes"])
	assert.Equal(t, 10.0, row["subtotal"])
	assert.NotContains(t, headers[0], "color_codes")
}
