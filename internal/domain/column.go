package domain

type FormatKind string

const (
	FormatInteger  FormatKind = "integer"
	FormatDecimal  FormatKind = "decimal"
	FormatCurrency FormatKind = "currency"
	FormatDate     FormatKind = "date"
	FormatText     FormatKind = "text"
)

func (k FormatKind) IsNumeric() bool {
	return k == FormatInteger || k == FormatDecimal || k == FormatCurrency
}

// Extractor calcula o valor de uma coluna a partir da linha
type Extractor func(Record) any

// Column é declarada uma vez por tipo de relatório e usada tanto no cabeçalho quanto nas células.
// Colunas com Total somam o valor bruto do campo Key nos totais de grupo e no total geral.
type Column struct {
	Key     string     `json:"key"`
	Header  string     `json:"header"`
	Format  FormatKind `json:"format"`
	Total   bool       `json:"total,omitempty"`
	Extract Extractor  `json:"-"`
}

// Value retorna o valor da coluna para a linha
func (c Column) Value(r Record) any {
	if c.Extract != nil {
		return c.Extract(r)
	}
	return r.Get(c.Key)
}

// TotalFields lista, em ordem, os campos somados pelas colunas
func TotalFields(columns []Column) []string {
	fields := make([]string, 0)
	for _, column := range columns {
		if column.Total && column.Format.IsNumeric() {
			fields = append(fields, column.Key)
		}
	}
	return fields
}
