package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	text := "R$ 12,5"
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{name: "Nulo vira zero", input: nil, want: 0},
		{name: "Texto vazio vira zero", input: "", want: 0},
		{name: "Número puro", input: 46.5, want: 46.5},
		{name: "Inteiro", input: 7, want: 7},
		{name: "Texto com ponto decimal", input: "1234.56", want: 1234.56},
		{name: "Símbolo de moeda descartado", input: "R$ 99.90", want: 99.9},
		{name: "Negativo", input: "-15.5", want: -15.5},
		{name: "Vírgula é descartada", input: "1.000,00", want: 1},
		{name: "Ponteiro para texto", input: &text, want: 125},
		{name: "Texto sem dígitos", input: "abc", want: 0},
		{name: "Sinal no meio é inválido", input: "1-2", want: 0},
		{name: "json.Number", input: json.Number("3.25"), want: 3.25},
		{name: "Booleano vira zero", input: true, want: 0},
		{name: "Infinito vira zero", input: math.Inf(1), want: 0},
		{name: "NaN vira zero", input: math.NaN(), want: 0},
		{name: "Tipo não numérico vira zero", input: []int{1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	empty := "  "
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(&empty))
	assert.False(t, IsBlank(0))
	assert.False(t, IsBlank("x"))
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 10.13, RoundWithTwoDecimalPlace(10.125))
	assert.Equal(t, 46.5, RoundWithTwoDecimalPlace(46.499999))
}
