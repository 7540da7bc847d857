package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/erp-report-api/internal/bootstrap"
	"github.com/vfg2006/erp-report-api/internal/config"
	"github.com/vfg2006/erp-report-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	// Logs vão para stderr; stdout fica livre para o relatório
	logrus.SetOutput(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service, closeSources, err := bootstrap.ReportService(ctx, cfg, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar as origens dos relatórios")
	}
	defer closeSources()

	if err := newRootCmd(service).ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		closeSources()
		os.Exit(1)
	}
}
