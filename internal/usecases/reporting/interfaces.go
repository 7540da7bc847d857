package reporting

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/vfg2006/erp-report-api/internal/domain"
)

// Source lista os cabeçalhos de um tipo de relatório. O token é repassado sem interpretação.
type Source interface {
	ListHeaders(ctx context.Context, token string) ([]domain.Record, error)
}

// DetailFetcher busca o detalhe completo de um cabeçalho pelo id
type DetailFetcher interface {
	FetchDetail(ctx context.Context, token string, id string) (domain.Record, error)
}

// Builder é a interface exposta para a API, o agendador e a linha de comando
type Builder interface {
	Build(ctx context.Context, req BuildRequest) (*Report, error)
	Kinds() []KindInfo
}

// Recorder recebe as métricas da montagem
type Recorder interface {
	ObserveBuild(kind string, duration time.Duration, err error)
	ObserveDetailFetch(kind string, duration time.Duration, err error)
	AddRows(kind string, stage string, count int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveBuild(string, time.Duration, error)       {}
func (noopRecorder) ObserveDetailFetch(string, time.Duration, error) {}
func (noopRecorder) AddRows(string, string, int)                     {}
