package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/internal/usecases/enriching"
	"github.com/vfg2006/erp-report-api/internal/usecases/filtering"
	"github.com/vfg2006/erp-report-api/internal/usecases/tabulating"
	"github.com/vfg2006/erp-report-api/pkg/utils"
)

type registeredKind struct {
	kind   Kind
	source Source
	detail DetailFetcher
}

// Service monta relatórios: lista, enriquece, filtra, agrupa e tabula
type Service struct {
	kinds    map[string]registeredKind
	order    []string
	engine   *enriching.Engine
	recorder Recorder
	location *time.Location
	now      func() time.Time
}

// NewService cria o serviço de relatórios. Os tipos são adicionados com Register.
func NewService(engine *enriching.Engine, location *time.Location) *Service {
	if engine == nil {
		engine = enriching.NewEngine(enriching.DefaultMaxConcurrency)
	}

	if location == nil {
		location = time.UTC
	}

	return &Service{
		kinds:    make(map[string]registeredKind),
		engine:   engine,
		recorder: noopRecorder{},
		location: location,
		now:      time.Now,
	}
}

// WithRecorder habilita a coleta de métricas
func (s *Service) WithRecorder(recorder Recorder) *Service {
	if recorder != nil {
		s.recorder = recorder
	}
	return s
}

// Register associa um tipo de relatório à sua origem. detail pode ser nil quando o tipo não tem etapa de detalhe.
func (s *Service) Register(kind Kind, source Source, detail DetailFetcher) *Service {
	if _, exists := s.kinds[kind.Name]; !exists {
		s.order = append(s.order, kind.Name)
	}

	s.kinds[kind.Name] = registeredKind{kind: kind, source: source, detail: detail}
	return s
}

// Kinds lista os tipos registrados, na ordem de registro
func (s *Service) Kinds() []KindInfo {
	infos := make([]KindInfo, 0, len(s.order))
	for _, name := range s.order {
		registered := s.kinds[name]
		infos = append(infos, KindInfo{
			Name:      registered.kind.Name,
			Title:     registered.kind.Title,
			DateField: registered.kind.DateField,
			HasDetail: registered.detail != nil,
			Columns:   registered.kind.Columns,
		})
	}
	return infos
}

// Build executa a montagem completa de um relatório.
// Filtros inválidos falham antes de qualquer acesso à origem; falhas de detalhe degradam a linha
// para os valores do cabeçalho; resultado vazio vem com Notice e sem erro.
func (s *Service) Build(ctx context.Context, req BuildRequest) (report *Report, err error) {
	registered, ok := s.kinds[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReportKind, req.Kind)
	}

	kind := registered.kind
	if registered.source == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, kind.Name)
	}

	input := req.Filter
	if input.DateField == "" {
		input.DateField = kind.DateField
	}

	spec, err := filtering.ParseFilterSpec(input)
	if err != nil {
		return nil, err
	}

	buildID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateBuildID, err)
	}

	start := time.Now()
	defer func() {
		s.recorder.ObserveBuild(kind.Name, time.Since(start), err)
	}()

	logger := logrus.WithFields(logrus.Fields{
		"build_id":    buildID,
		"report_kind": kind.Name,
	})
	logger.Info("Iniciando montagem do relatório")

	headers, err := registered.source.ListHeaders(ctx, req.Token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.WithError(ctxErr).Warn("Montagem do relatório interrompida durante a listagem")
			return nil, ctxErr
		}
		logger.WithError(err).Error("Erro ao listar cabeçalhos do relatório")
		return nil, &ConnectionError{Kind: kind.Name, Err: err}
	}
	s.recorder.AddRows(kind.Name, "listed", len(headers))

	enrichment, err := s.engine.Enrich(ctx, headers, s.fetchFunc(kind.Name, registered.detail, req.Token), kind.Plan)
	if err != nil {
		logger.WithError(err).Warn("Montagem do relatório interrompida")
		return nil, err
	}

	kept := filtering.Filter(enrichment.Rows, spec)
	s.recorder.AddRows(kind.Name, "kept", len(kept))

	report = &Report{
		ID:          buildID,
		Kind:        kind.Name,
		Title:       kind.Title,
		GeneratedAt: s.now().In(s.location),
		Filter:      spec,
		Stats: Stats{
			Listed:   len(headers),
			Enriched: enrichment.Stats.Enriched,
			Failed:   enrichment.Stats.Failed,
			Skipped:  enrichment.Stats.Skipped,
			Kept:     len(kept),
		},
		DetailErrors: enrichment.Errors,
		FailedRows:   failedRows(enrichment.Errors),
		Table:        tabulating.BuildTable(kind.Title, kept, kind.Columns, kind.Groups),
	}

	if len(kept) == 0 {
		report.Notice = newEmptyResultNotice(len(headers))
	}

	logger.WithFields(logrus.Fields{
		"listed":   report.Stats.Listed,
		"enriched": report.Stats.Enriched,
		"failed":   report.Stats.Failed,
		"kept":     report.Stats.Kept,
		"duration": time.Since(start).String(),
	}).Info("Relatório montado")

	return report, nil
}

func (s *Service) fetchFunc(kind string, detail DetailFetcher, token string) enriching.FetchFunc {
	if detail == nil {
		return nil
	}

	return func(ctx context.Context, id string) (domain.Record, error) {
		started := time.Now()
		record, err := detail.FetchDetail(ctx, token, id)
		s.recorder.ObserveDetailFetch(kind, time.Since(started), err)
		return record, err
	}
}

func failedRows(errs []*enriching.DetailFetchError) []FailedRow {
	if len(errs) == 0 {
		return nil
	}

	rows := make([]FailedRow, 0, len(errs))
	for _, err := range errs {
		rows = append(rows, FailedRow{RowIndex: err.RowIndex, ID: err.ID, Error: err.Err.Error()})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].RowIndex < rows[j].RowIndex
	})

	return rows
}
