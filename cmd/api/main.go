package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/erp-report-api/internal/api"
	"github.com/vfg2006/erp-report-api/internal/bootstrap"
	"github.com/vfg2006/erp-report-api/internal/config"
	"github.com/vfg2006/erp-report-api/internal/scheduler"
	"github.com/vfg2006/erp-report-api/pkg/log"
	"github.com/vfg2006/erp-report-api/pkg/metrics"
)

func main() {
	changeToSourceDir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appMetrics := metrics.New()

	reportService, closeSources, err := bootstrap.ReportService(ctx, cfg, appMetrics)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar as origens dos relatórios")
	}
	defer closeSources()

	snapshotService := scheduler.NewReportSnapshotService(reportService, cfg)
	if err := snapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de relatórios")
	} else {
		logrus.Info("Agendador de snapshots de relatórios iniciado com sucesso")
	}

	server, err := api.New(cfg, reportService, snapshotService, appMetrics)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// changeToSourceDir posiciona o processo no diretório do main para achar o .env em desenvolvimento
func changeToSourceDir() {
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))
}
