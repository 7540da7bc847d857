// Package migration cria as tabelas lidas pelas origens em banco
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/erp-report-api/infrastructure/database/postgres"
)

type step struct {
	name string
	sql  string
}

var steps = []step{
	{
		name: "inventory_stock",
		sql: `CREATE TABLE IF NOT EXISTS inventory_stock (
	sku         VARCHAR(40) PRIMARY KEY,
	description TEXT,
	warehouse   VARCHAR(80),
	counted_at  DATE,
	quantity    NUMERIC(14, 3),
	kg          NUMERIC(14, 3),
	unit_cost   NUMERIC(14, 2),
	active      BOOLEAN NOT NULL DEFAULT TRUE
)`,
	},
	{
		name: "inventory_stock_warehouse_idx",
		sql:  `CREATE INDEX IF NOT EXISTS inventory_stock_warehouse_idx ON inventory_stock (warehouse, sku) WHERE active`,
	},
}

// Apply executa os passos em ordem. Todos são idempotentes.
func Apply(ctx context.Context, conn postgres.Queryer) error {
	logrus.Infof("Iniciando migração de %d passos...", len(steps))
	startTime := time.Now()

	for i, s := range steps {
		if _, err := conn.ExecContext(ctx, s.sql); err != nil {
			return fmt.Errorf("erro no passo %d/%d (%s) da migração: %w", i+1, len(steps), s.name, err)
		}
		logrus.WithField("step", s.name).Debug("Passo de migração aplicado")
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
	return nil
}
