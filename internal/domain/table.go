package domain

import "time"

// Cell carrega o valor bruto e o tipo de formatação; separadores, símbolo de moeda
// e formato de data ficam por conta de quem renderiza.
type Cell struct {
	Kind   FormatKind `json:"kind"`
	Number float64    `json:"number"`
	Date   *time.Time `json:"date,omitempty"`
	Text   string     `json:"text,omitempty"`
	Empty  bool       `json:"empty,omitempty"`
}

type HeaderCell struct {
	Key    string     `json:"key"`
	Label  string     `json:"label"`
	Format FormatKind `json:"format"`
}

type DataRow struct {
	Group string `json:"group,omitempty"`
	Cells []Cell `json:"cells"`
}

// TotalRow é uma linha de totais; Cells segue a ordem das colunas e fica vazia nas colunas sem total
type TotalRow struct {
	Label    string `json:"label"`
	Group    string `json:"group,omitempty"`
	RowCount int    `json:"row_count"`
	Cells    []Cell `json:"cells"`
}

// Table é o modelo entregue aos renderizadores (planilha e impressão)
type Table struct {
	Title          string       `json:"title"`
	Header         []HeaderCell `json:"header"`
	DataRows       []DataRow    `json:"data_rows"`
	GroupTotalRows []TotalRow   `json:"group_total_rows,omitempty"`
	GrandTotalRow  TotalRow     `json:"grand_total_row"`
}

func (t *Table) IsEmpty() bool {
	return t == nil || len(t.DataRows) == 0
}

// RowsOfGroup retorna as linhas de dados do grupo, na ordem da tabela
func (t *Table) RowsOfGroup(label string) []DataRow {
	rows := make([]DataRow, 0)
	for _, row := range t.DataRows {
		if row.Group == label {
			rows = append(rows, row)
		}
	}
	return rows
}
