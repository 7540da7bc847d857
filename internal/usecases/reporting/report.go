package reporting

import (
	"time"

	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/internal/usecases/enriching"
	"github.com/vfg2006/erp-report-api/internal/usecases/filtering"
)

type BuildRequest struct {
	Kind   string
	Filter filtering.Input
	Token  string
}

type Stats struct {
	Listed   int `json:"listed"`
	Enriched int `json:"enriched"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
	Kept     int `json:"kept"`
}

type FailedRow struct {
	RowIndex int    `json:"row_index"`
	ID       string `json:"id"`
	Error    string `json:"error"`
}

// Report é o resultado de uma montagem. Nada é compartilhado entre montagens.
type Report struct {
	ID           string                        `json:"id"`
	Kind         string                        `json:"kind"`
	Title        string                        `json:"title"`
	GeneratedAt  time.Time                     `json:"generated_at"`
	Filter       domain.FilterSpec             `json:"filter"`
	Stats        Stats                         `json:"stats"`
	FailedRows   []FailedRow                   `json:"failed_rows,omitempty"`
	DetailErrors []*enriching.DetailFetchError `json:"-"`
	Table        *domain.Table                 `json:"table"`
	Notice       *EmptyResultNotice            `json:"notice,omitempty"`
}

func (r *Report) IsEmpty() bool {
	return r.Notice != nil
}
