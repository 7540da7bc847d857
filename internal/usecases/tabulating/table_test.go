package tabulating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/erp-report-api/internal/domain"
)

func noteColumns() []domain.Column {
	return []domain.Column{
		{Key: "number", Header: "Nota", Format: domain.FormatText},
		{Key: "date", Header: "Data", Format: domain.FormatDate},
		{Key: "quantity", Header: "Metros", Format: domain.FormatDecimal, Total: true},
		{Key: "subtotal", Header: "Subtotal", Format: domain.FormatCurrency, Total: true},
		{
			Key:    "customer",
			Header: "Cliente",
			Format: domain.FormatText,
			Extract: func(r domain.Record) any {
				return r.String("customer_name") + " (" + r.String("city") + ")"
			},
		},
	}
}

func noteRows() []domain.Record {
	return []domain.Record{
		{"number": "NF-1", "date": "2024-03-01", "quantity": "10.5", "subtotal": 105, "status": "1", "customer_name": "A", "city": "SP"},
		{"number": "NF-2", "date": "invalida", "quantity": nil, "subtotal": "abc", "status": "2", "customer_name": "B", "city": "RJ"},
		{"number": "NF-3", "date": "02/03/2024", "quantity": 4, "subtotal": 40.25, "status": "1", "customer_name": "C", "city": "BH"},
	}
}

func TestBuildTable_SemGrupos(t *testing.T) {
	table := BuildTable("Notas", noteRows(), noteColumns(), domain.GroupSpec{})

	assert.Equal(t, "Notas", table.Title)
	require.Len(t, table.Header, 5)
	assert.Equal(t, domain.HeaderCell{Key: "subtotal", Label: "Subtotal", Format: domain.FormatCurrency}, table.Header[3])

	require.Len(t, table.DataRows, 3)
	first := table.DataRows[0].Cells
	assert.Equal(t, domain.Cell{Kind: domain.FormatText, Text: "NF-1"}, first[0])
	require.NotNil(t, first[1].Date)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *first[1].Date)
	assert.Equal(t, domain.Cell{Kind: domain.FormatDecimal, Number: 10.5}, first[2])
	assert.Equal(t, domain.Cell{Kind: domain.FormatCurrency, Number: 105}, first[3])
	assert.Equal(t, "A (SP)", first[4].Text)

	second := table.DataRows[1].Cells
	assert.Equal(t, domain.Cell{Kind: domain.FormatDate, Text: "invalida", Empty: true}, second[1])
	assert.Equal(t, domain.Cell{Kind: domain.FormatDecimal, Empty: true}, second[2])
	assert.Equal(t, domain.Cell{Kind: domain.FormatCurrency, Number: 0}, second[3])

	assert.Empty(t, table.GroupTotalRows)
	assert.Equal(t, GrandTotalLabel, table.GrandTotalRow.Label)
	assert.Equal(t, 3, table.GrandTotalRow.RowCount)
	assert.True(t, table.GrandTotalRow.Cells[0].Empty)
	assert.InDelta(t, 14.5, table.GrandTotalRow.Cells[2].Number, 1e-9)
	assert.InDelta(t, 145.25, table.GrandTotalRow.Cells[3].Number, 1e-9)
}

func TestBuildTable_ComGrupos(t *testing.T) {
	invoiced := domain.FieldEquals("status", "1")
	groups := domain.GroupSpec{Defs: []domain.GroupDef{
		{Label: "Faturado", Match: invoiced},
		{Label: "Pendente", Match: domain.Not(invoiced)},
	}}

	table := BuildTable("Notas", noteRows(), noteColumns(), groups)

	require.Len(t, table.DataRows, 3)
	assert.Equal(t, "Faturado", table.DataRows[0].Group)
	assert.Equal(t, "NF-1", table.DataRows[0].Cells[0].Text)
	assert.Equal(t, "NF-3", table.DataRows[1].Cells[0].Text)
	assert.Equal(t, "Pendente", table.DataRows[2].Group)
	assert.Len(t, table.RowsOfGroup("Faturado"), 2)

	require.Len(t, table.GroupTotalRows, 2)
	assert.Equal(t, "Subtotal Faturado", table.GroupTotalRows[0].Label)
	assert.Equal(t, 2, table.GroupTotalRows[0].RowCount)
	assert.InDelta(t, 145.25, table.GroupTotalRows[0].Cells[3].Number, 1e-9)
	assert.Equal(t, "Pendente", table.GroupTotalRows[1].Group)
	assert.InDelta(t, 0, table.GroupTotalRows[1].Cells[3].Number, 1e-9)

	sum := 0.0
	for _, row := range table.GroupTotalRows {
		sum += row.Cells[3].Number
	}
	assert.InDelta(t, table.GrandTotalRow.Cells[3].Number, sum, 1e-6)
}

func TestBuildTable_Vazia(t *testing.T) {
	table := BuildTable("Vazio", nil, noteColumns(), domain.GroupSpec{KeyField: "customer_name"})

	assert.True(t, table.IsEmpty())
	assert.Empty(t, table.GroupTotalRows)
	assert.Equal(t, 0, table.GrandTotalRow.RowCount)
	assert.Equal(t, 0.0, table.GrandTotalRow.Cells[2].Number)
}

func TestNewCell(t *testing.T) {
	assert.Equal(t, domain.Cell{Kind: domain.FormatInteger, Number: 12}, NewCell(domain.FormatInteger, "12"))
	assert.Equal(t, domain.Cell{Kind: domain.FormatText, Empty: true}, NewCell(domain.FormatText, "  "))
	assert.Equal(t, domain.Cell{Kind: domain.FormatText, Text: "42"}, NewCell(domain.FormatText, 42))
}
