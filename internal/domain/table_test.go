package domain

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_JSON(t *testing.T) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	tests := []struct {
		name     string
		cell     Cell
		expected string
	}{
		{
			name:     "Total zero aparece no JSON",
			cell:     Cell{Kind: FormatCurrency, Number: 0},
			expected: `{"kind":"currency","number":0}`,
		},
		{
			name:     "Valor numérico preenchido",
			cell:     Cell{Kind: FormatCurrency, Number: 12.5},
			expected: `{"kind":"currency","number":12.5}`,
		},
		{
			name:     "Célula de texto vazia",
			cell:     Cell{Kind: FormatText, Empty: true},
			expected: `{"kind":"text","number":0,"empty":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.cell)

			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(body))
		})
	}
}
