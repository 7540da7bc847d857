package enriching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/erp-report-api/internal/domain"
)

func deliveryNoteRules() MergeRules {
	return MergeRules{
		Overridable: []string{"unit_price", "subtotal", "color_code"},
		Derived: []DerivedField{
			{Target: "color_codes", Strategy: StrategyUniqueJoin, Items: "items", Sources: []string{"color_code"}},
			{Target: "unit_price", Strategy: StrategyFirstNonEmpty, Items: "items", Sources: []string{"unit_price"}},
			{
				Target:         "subtotal",
				Strategy:       StrategySumOfProducts,
				Items:          "items",
				Explicit:       []string{"subtotal"},
				PriceFields:    []string{"unit_price"},
				QuantityFields: []string{"quantity", "secondary_quantity", "kg"},
			},
		},
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		header   domain.Record
		detail   domain.Record
		rules    MergeRules
		validate func(t *testing.T, merged domain.Record)
	}{
		{
			name:   "Cabeçalho prevalece em campos não sobrescrevíveis",
			header: domain.Record{"id": "1", "customer_name": "Loja A"},
			detail: domain.Record{"customer_name": "Loja A LTDA", "phone": "1199"},
			rules:  MergeRules{},
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "Loja A", merged["customer_name"])
				assert.Equal(t, "1199", merged["phone"])
			},
		},
		{
			name:   "Campo sobrescrevível usa o valor do detalhe quando não nulo",
			header: domain.Record{"color_code": "AZ", "unit_price": 10.0},
			detail: domain.Record{"color_code": "VM", "unit_price": nil},
			rules:  MergeRules{Overridable: []string{"color_code", "unit_price"}},
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "VM", merged["color_code"])
				assert.Equal(t, 10.0, merged["unit_price"])
			},
		},
		{
			name:   "Cabeçalho vazio é preenchido pelo detalhe",
			header: domain.Record{"notes": ""},
			detail: domain.Record{"notes": "entregar pela manhã"},
			rules:  MergeRules{},
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "entregar pela manhã", merged["notes"])
			},
		},
		{
			name:   "Mapas aninhados são mesclados recursivamente",
			header: domain.Record{"customer": map[string]any{"name": "Loja A"}},
			detail: domain.Record{"customer": map[string]any{"name": "Outro", "city": "Campinas"}},
			rules:  MergeRules{},
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "Loja A", merged.Get("customer.name"))
				assert.Equal(t, "Campinas", merged.Get("customer.city"))
			},
		},
		{
			name:   "Campo aninhado sobrescrevível por caminho com ponto",
			header: domain.Record{"customer": map[string]any{"name": "Loja A"}},
			detail: domain.Record{"customer": map[string]any{"name": "Loja A LTDA"}},
			rules:  MergeRules{Overridable: []string{"customer.name"}},
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "Loja A LTDA", merged.Get("customer.name"))
			},
		},
		{
			name:   "Campos derivados dos itens",
			header: domain.Record{"id": "1", "unit_price": ""},
			detail: domain.Record{"items": []any{
				map[string]any{"color_code": "AZ", "unit_price": 10, "quantity": 2},
				map[string]any{"color_code": "VM", "unit_price": "5.5", "secondary_quantity": 3},
				map[string]any{"color_code": "AZ", "unit_price": 4, "quantity": "", "kg": 2.5},
				map[string]any{"color_code": ""},
			}},
			rules: deliveryNoteRules(),
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "AZ, VM", merged["color_codes"])
				assert.Equal(t, 10, merged["unit_price"])
				assert.Equal(t, 46.5, merged["subtotal"])
			},
		},
		{
			name:   "Subtotal explícito zero é aceito e não é recalculado",
			header: domain.Record{"id": "1"},
			detail: domain.Record{
				"subtotal": 0,
				"items":    []any{map[string]any{"unit_price": 10, "quantity": 2}},
			},
			rules: deliveryNoteRules(),
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, 0.0, merged["subtotal"])
			},
		},
		{
			name:   "Sem itens o agrupamento de códigos vira texto vazio",
			header: domain.Record{"id": "1"},
			detail: domain.Record{"number": "NF-1"},
			rules:  deliveryNoteRules(),
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "", merged["color_codes"])
				assert.Nil(t, merged["unit_price"])
				assert.Equal(t, 0.0, merged["subtotal"])
			},
		},
		{
			name:   "Detalhe sem itens não apaga o subtotal do cabeçalho",
			header: domain.Record{"id": "1", "subtotal": 150.0},
			detail: domain.Record{"id": "1", "customer_name": "X"},
			rules:  deliveryNoteRules(),
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, 150.0, merged["subtotal"])
			},
		},
		{
			name:   "Lista de itens vazia zera o subtotal sobrescrevível",
			header: domain.Record{"id": "1", "subtotal": 150.0},
			detail: domain.Record{"items": []any{}},
			rules:  deliveryNoteRules(),
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, 0.0, merged["subtotal"])
			},
		},
		{
			name:   "Soma simples sem lista de itens mantém o cabeçalho",
			header: domain.Record{"id": "p1", "allocated_amount": 80.0},
			detail: domain.Record{"id": "p1"},
			rules: MergeRules{
				Overridable: []string{"allocated_amount"},
				Derived: []DerivedField{
					{Target: "allocated_amount", Strategy: StrategySum, Items: "allocations", Sources: []string{"amount"}},
				},
			},
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, 80.0, merged["allocated_amount"])
			},
		},
		{
			name:   "Derivado vazio não apaga o valor do cabeçalho",
			header: domain.Record{"id": "1", "color_codes": "PR"},
			detail: domain.Record{"items": []any{}},
			rules:  deliveryNoteRules(),
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, "PR", merged["color_codes"])
			},
		},
		{
			name:   "Soma simples dos itens com valor explícito ausente",
			header: domain.Record{"id": "p1", "amount": 300},
			detail: domain.Record{"allocations": []any{
				map[string]any{"invoice_number": "NF-1", "amount": 100},
				map[string]any{"invoice_number": "NF-2", "amount": "150.25"},
			}},
			rules: MergeRules{Derived: []DerivedField{
				{Target: "allocated_amount", Strategy: StrategySum, Items: "allocations", Sources: []string{"amount"}},
			}},
			validate: func(t *testing.T, merged domain.Record) {
				assert.Equal(t, 250.25, merged["allocated_amount"])
				assert.Equal(t, 300, merged["amount"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headerCopy := tt.header.Clone()

			merged := Merge(tt.header, tt.detail, tt.rules)

			tt.validate(t, merged)
			assert.Equal(t, headerCopy, tt.header)
		})
	}
}

func TestUniqueJoin(t *testing.T) {
	items := []domain.Record{
		{"fabric_code": " TC-01 "},
		{"fabric_code": "TC-02"},
		{"fabric_code": "TC-01"},
		{"fabric_code": nil},
		{"other": "x"},
	}

	assert.Equal(t, "TC-01, TC-02", UniqueJoin(items, "fabric_code"))
	assert.Equal(t, "", UniqueJoin(nil, "fabric_code"))
	assert.Equal(t, "", UniqueJoin([]domain.Record{{"fabric_code": "  "}}, "fabric_code"))
}

func TestSumOfProducts_ValoresMalFormados(t *testing.T) {
	items := []domain.Record{
		{"unit_price": "abc", "quantity": 3},
		{"unit_price": 2, "quantity": "2"},
		{"unit_price": nil, "quantity": nil},
	}

	assert.Equal(t, 4.0, SumOfProducts(items, []string{"unit_price"}, []string{"quantity"}))
}
