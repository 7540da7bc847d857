package reporting

import (
	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/internal/usecases/enriching"
)

const (
	KindDeliveryNotes = "delivery-notes"
	KindInventory     = "inventory"
	KindPayments      = "payments"
)

// Kind declara uma vez tudo que define um tipo de relatório
type Kind struct {
	Name      string
	Title     string
	DateField string
	Columns   []domain.Column
	Groups    domain.GroupSpec
	Plan      enriching.Plan
}

// KindInfo é a descrição pública de um tipo de relatório registrado
type KindInfo struct {
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	DateField string          `json:"date_field"`
	HasDetail bool            `json:"has_detail"`
	Columns   []domain.Column `json:"columns"`
}

// Catalog retorna os tipos de relatório conhecidos, na ordem de exibição
func Catalog() []Kind {
	return []Kind{
		DeliveryNotesKind(),
		InventoryKind(),
		PaymentsKind(),
	}
}

// DeliveryNotesKind são os romaneios de entrega, separados entre faturados (status 1) e pendentes
func DeliveryNotesKind() Kind {
	invoiced := domain.FieldEquals("status", "1")

	return Kind{
		Name:      KindDeliveryNotes,
		Title:     "Romaneios de entrega",
		DateField: "date",
		Columns: []domain.Column{
			{Key: "number", Header: "Romaneio", Format: domain.FormatText},
			{Key: "date", Header: "Data", Format: domain.FormatDate},
			{Key: "customer_name", Header: "Cliente", Format: domain.FormatText},
			{Key: "fabric_codes", Header: "Artigos", Format: domain.FormatText},
			{Key: "color_codes", Header: "Cores", Format: domain.FormatText},
			{Key: "unit_price", Header: "Preço unit.", Format: domain.FormatCurrency},
			{Key: "quantity", Header: "Metros", Format: domain.FormatDecimal, Total: true},
			{Key: "kg", Header: "Kg", Format: domain.FormatDecimal, Total: true},
			{Key: "subtotal", Header: "Subtotal", Format: domain.FormatCurrency, Total: true},
		},
		Groups: domain.GroupSpec{Defs: []domain.GroupDef{
			{Label: "Faturado", Match: invoiced},
			{Label: "Pendente", Match: domain.Not(invoiced)},
		}},
		Plan: enriching.Plan{
			IDField: "id",
			Rules: enriching.MergeRules{
				Overridable: []string{"color_code", "fabric_code", "unit_price", "subtotal"},
				Derived: []enriching.DerivedField{
					{Target: "color_codes", Strategy: enriching.StrategyUniqueJoin, Items: "items", Sources: []string{"color_code"}},
					{Target: "fabric_codes", Strategy: enriching.StrategyUniqueJoin, Items: "items", Sources: []string{"fabric_code"}},
					{Target: "unit_price", Strategy: enriching.StrategyFirstNonEmpty, Items: "items", Sources: []string{"unit_price"}},
					{
						Target:         "subtotal",
						Strategy:       enriching.StrategySumOfProducts,
						Items:          "items",
						Explicit:       []string{"subtotal"},
						PriceFields:    []string{"unit_price"},
						QuantityFields: []string{"quantity", "secondary_quantity", "kg"},
					},
					{Target: "quantity", Strategy: enriching.StrategySum, Items: "items", Explicit: []string{"quantity"}, Sources: []string{"quantity"}},
					{Target: "kg", Strategy: enriching.StrategySum, Items: "items", Explicit: []string{"kg"}, Sources: []string{"kg"}},
				},
			},
		},
	}
}

// InventoryKind é a posição de estoque por depósito; não tem etapa de detalhe
func InventoryKind() Kind {
	return Kind{
		Name:      KindInventory,
		Title:     "Posição de estoque",
		DateField: "counted_at",
		Columns: []domain.Column{
			{Key: "sku", Header: "Código", Format: domain.FormatText},
			{Key: "description", Header: "Descrição", Format: domain.FormatText},
			{Key: "warehouse", Header: "Depósito", Format: domain.FormatText},
			{Key: "counted_at", Header: "Contagem", Format: domain.FormatDate},
			{Key: "quantity", Header: "Quantidade", Format: domain.FormatDecimal, Total: true},
			{Key: "kg", Header: "Kg", Format: domain.FormatDecimal, Total: true},
			{Key: "unit_cost", Header: "Custo unit.", Format: domain.FormatCurrency},
			{Key: "stock_value", Header: "Valor em estoque", Format: domain.FormatCurrency, Total: true},
		},
		Groups: domain.GroupSpec{KeyField: "warehouse", EmptyKeyLabel: "Sem depósito"},
	}
}

// PaymentsKind são os recebimentos com as notas que cada um quitou, agrupados por cliente
func PaymentsKind() Kind {
	return Kind{
		Name:      KindPayments,
		Title:     "Recebimentos",
		DateField: "payment_date",
		Columns: []domain.Column{
			{Key: "payment_date", Header: "Data", Format: domain.FormatDate},
			{Key: "document", Header: "Documento", Format: domain.FormatText},
			{Key: "customer_name", Header: "Cliente", Format: domain.FormatText},
			{Key: "method", Header: "Forma", Format: domain.FormatText},
			{Key: "invoice_numbers", Header: "Notas", Format: domain.FormatText},
			{Key: "installments", Header: "Parcelas", Format: domain.FormatInteger},
			{Key: "amount", Header: "Valor", Format: domain.FormatCurrency, Total: true},
			{Key: "allocated_amount", Header: "Alocado", Format: domain.FormatCurrency, Total: true},
		},
		Groups: domain.GroupSpec{KeyField: "customer_name", EmptyKeyLabel: "Sem cliente"},
		Plan: enriching.Plan{
			IDField: "id",
			Rules: enriching.MergeRules{
				Overridable: []string{"amount"},
				Derived: []enriching.DerivedField{
					{Target: "invoice_numbers", Strategy: enriching.StrategyUniqueJoin, Items: "allocations", Sources: []string{"invoice_number"}},
					{Target: "allocated_amount", Strategy: enriching.StrategySum, Items: "allocations", Explicit: []string{"allocated_amount"}, Sources: []string{"amount"}},
				},
			},
		},
	}
}
