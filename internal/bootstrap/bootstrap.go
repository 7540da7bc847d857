// Package bootstrap monta as dependências compartilhadas pela API e pela linha de comando
package bootstrap

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/erp-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/erp-report-api/infrastructure/integrator/erp"
	"github.com/vfg2006/erp-report-api/infrastructure/integrator/erp/erpclient"
	erpdomain "github.com/vfg2006/erp-report-api/infrastructure/integrator/erp/erpdomain"
	"github.com/vfg2006/erp-report-api/infrastructure/migration"
	"github.com/vfg2006/erp-report-api/infrastructure/repository"
	"github.com/vfg2006/erp-report-api/internal/config"
	"github.com/vfg2006/erp-report-api/internal/usecases/enriching"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
)

// ReportService registra os três tipos de relatório com suas origens.
// Sem banco habilitado o estoque fica sem origem e responde ErrSourceUnavailable.
// A função devolvida fecha a conexão com o banco, quando aberta.
func ReportService(ctx context.Context, cfg *config.Config, recorder reporting.Recorder) (*reporting.Service, func(), error) {
	closeFn := func() {}

	var inventory reporting.Source
	if cfg.Database.Enabled {
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

		if cfg.Database.Migrate {
			if err := migration.Apply(ctx, conn); err != nil {
				_ = conn.Close()
				return nil, nil, err
			}
		}

		inventory = repository.NewInventoryRepository(conn)
		closeFn = func() { _ = conn.Close() }
	} else {
		logrus.Warn("Banco de dados desabilitado: relatório de estoque indisponível")
	}

	erpService := erp.New(erpclient.NewClient(cfg))
	deliveryNotes := erpService.Resource(erpdomain.ResourceDeliveryNotes)
	payments := erpService.Resource(erpdomain.ResourcePayments)

	service := reporting.NewService(enriching.NewEngine(cfg.Enrichment.MaxConcurrency), cfg.Location()).
		WithRecorder(recorder).
		Register(reporting.DeliveryNotesKind(), deliveryNotes, deliveryNotes).
		Register(reporting.InventoryKind(), inventory, nil).
		Register(reporting.PaymentsKind(), payments, payments)

	return service, closeFn, nil
}
