package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/erp-report-api/internal/config"
	"github.com/vfg2006/erp-report-api/internal/usecases/filtering"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
)

// ReportSnapshotConfig representa a configuração do agendador de snapshots
type ReportSnapshotConfig struct {
	CronSchedule string
	Kinds        []string
	LookbackDays int
	Token        string
	SyncEnabled  bool
}

// KindStatus é o resultado da última montagem de um tipo de relatório
type KindStatus struct {
	BuildID    string    `json:"build_id,omitempty"`
	BuiltAt    time.Time `json:"built_at"`
	Rows       int       `json:"rows"`
	FailedRows int       `json:"failed_rows"`
	Error      string    `json:"error,omitempty"`
}

// ReportSnapshotService pré-monta os relatórios configurados e guarda o último de cada tipo em memória
type ReportSnapshotService struct {
	scheduler           *gocron.Scheduler
	config              ReportSnapshotConfig
	builder             reporting.Builder
	location            *time.Location
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	snapshots           map[string]*reporting.Report
	kindStatus          map[string]KindStatus
}

// NewReportSnapshotService cria o serviço a partir da configuração global
func NewReportSnapshotService(builder reporting.Builder, appConfig *config.Config) *ReportSnapshotService {
	snapshotConfig := ReportSnapshotConfig{
		CronSchedule: appConfig.ReportSnapshot.CronSchedule,
		Kinds:        appConfig.ReportSnapshot.Kinds,
		LookbackDays: appConfig.ReportSnapshot.LookbackDays,
		Token:        appConfig.ReportSnapshot.Token,
		SyncEnabled:  appConfig.ReportSnapshot.Enabled,
	}

	location := appConfig.Location()

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
		"kinds":         snapshotConfig.Kinds,
		"lookback_days": snapshotConfig.LookbackDays,
		"sync_enabled":  snapshotConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots de relatórios carregada")

	return &ReportSnapshotService{
		scheduler:  gocron.NewScheduler(location),
		config:     snapshotConfig,
		builder:    builder,
		location:   location,
		now:        time.Now,
		snapshots:  make(map[string]*reporting.Report),
		kindStatus: make(map[string]KindStatus),
	}
}

// Start agenda a montagem periódica. Com a sincronização desabilitada não faz nada.
func (s *ReportSnapshotService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Snapshots de relatórios desabilitados por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Sync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshots de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma montagem em segundo plano.
// Retorna false quando já existe uma em andamento.
func (s *ReportSnapshotService) TriggerManualSync() bool {
	if !s.tryStart() {
		logrus.Info("Snapshots de relatórios já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando montagem manual de snapshots de relatórios")
	go s.run(context.Background())
	return true
}

// Sync monta os snapshots de forma síncrona. Retorna false se outra montagem já estiver em andamento.
func (s *ReportSnapshotService) Sync(ctx context.Context) bool {
	if !s.tryStart() {
		logrus.Info("Snapshots de relatórios já em andamento, ignorando")
		return false
	}

	s.run(ctx)
	return true
}

func (s *ReportSnapshotService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

func (s *ReportSnapshotService) run(ctx context.Context) {
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()
	for _, info := range s.builder.Kinds() {
		if !slices.Contains(s.config.Kinds, info.Name) {
			continue
		}
		if ctx.Err() != nil {
			logrus.WithError(ctx.Err()).Warn("Montagem de snapshots interrompida")
			return
		}
		s.buildKind(ctx, info)
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Snapshots de relatórios concluídos")
}

func (s *ReportSnapshotService) buildKind(ctx context.Context, info reporting.KindInfo) {
	report, err := s.builder.Build(ctx, reporting.BuildRequest{
		Kind:   info.Name,
		Filter: s.lookbackFilter(info.DateField),
		Token:  s.config.Token,
	})

	status := KindStatus{BuiltAt: s.now()}

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		logrus.WithError(err).WithField("report_kind", info.Name).Error("Erro ao montar snapshot do relatório")
		status.Error = err.Error()
		s.kindStatus[info.Name] = status
		return
	}

	status.BuildID = report.ID
	status.Rows = report.Stats.Kept
	status.FailedRows = report.Stats.Failed
	s.kindStatus[info.Name] = status
	s.snapshots[info.Name] = report
}

// lookbackFilter cobre os últimos LookbackDays dias até hoje. Sem campo de data ou com 0 dias, não filtra.
func (s *ReportSnapshotService) lookbackFilter(dateField string) filtering.Input {
	if dateField == "" || s.config.LookbackDays <= 0 {
		return filtering.Input{}
	}

	today := s.now().In(s.location)
	return filtering.Input{
		DateField: dateField,
		Start:     today.AddDate(0, 0, -s.config.LookbackDays).Format(time.DateOnly),
		End:       today.Format(time.DateOnly),
	}
}

// Latest retorna o último snapshot montado com sucesso para o tipo
func (s *ReportSnapshotService) Latest(kind string) (*reporting.Report, bool) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	report, ok := s.snapshots[kind]
	return report, ok
}

// GetStatus retorna o status atual do agendador
func (s *ReportSnapshotService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	kinds := make(map[string]KindStatus, len(s.kindStatus))
	for name, status := range s.kindStatus {
		kinds[name] = status
	}

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"kinds":                  kinds,
	}
}
