// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/erp-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/erp-report-api/internal/domain"
)

const (
	inventoryStockTable = "inventory_stock s"
)

// InventoryRepository lê a posição de estoque; serve como origem do relatório de estoque
type InventoryRepository interface {
	ListHeaders(ctx context.Context, token string) ([]domain.Record, error)
}

type inventoryRepository struct {
	conn postgres.Queryer
}

func NewInventoryRepository(conn postgres.Queryer) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

// ListHeaders retorna os itens de estoque ativos. O token não se aplica ao banco.
func (r *inventoryRepository) ListHeaders(ctx context.Context, _ string) ([]domain.Record, error) {
	query, args, err := squirrel.
		Select(
			"s.sku",
			"s.description",
			"s.warehouse",
			"s.counted_at",
			"s.quantity",
			"s.kg",
			"s.unit_cost",
			"COALESCE(s.quantity * s.unit_cost, 0) AS stock_value",
		).
		From(inventoryStockTable).
		Where(squirrel.Eq{"s.active": true}).
		OrderBy("s.warehouse ASC", "s.sku ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		record, err := scanInventoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item de estoque: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func scanInventoryRow(rows *sql.Rows) (domain.Record, error) {
	var (
		sku, description, warehouse sql.NullString
		countedAt                   sql.NullTime
		quantity, kg, unitCost      sql.NullFloat64
		stockValue                  float64
	)

	if err := rows.Scan(&sku, &description, &warehouse, &countedAt, &quantity, &kg, &unitCost, &stockValue); err != nil {
		return nil, err
	}

	return domain.Record{
		"sku":         nullString(sku),
		"description": nullString(description),
		"warehouse":   nullString(warehouse),
		"counted_at":  nullTime(countedAt),
		"quantity":    nullFloat(quantity),
		"kg":          nullFloat(kg),
		"unit_cost":   nullFloat(unitCost),
		"stock_value": stockValue,
	}, nil
}

func nullString(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullTime(v sql.NullTime) any {
	if !v.Valid {
		return nil
	}
	return v.Time
}

func nullFloat(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}
