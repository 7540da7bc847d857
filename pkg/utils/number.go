package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseAmount converte qualquer valor em número e nunca falha.
// Strings têm removido tudo que não for dígito, '.' ou '-' antes da conversão.
// Resultados vazios, inválidos ou não finitos viram 0.
func ParseAmount(v any) float64 {
	var f float64

	switch value := v.(type) {
	case nil:
		return 0
	case string:
		f = parseAmountString(value)
	case *string:
		if value == nil {
			return 0
		}
		f = parseAmountString(*value)
	case json.Number:
		f = parseAmountString(value.String())
	case bool:
		return 0
	default:
		parsed, err := cast.ToFloat64E(value)
		if err != nil {
			return 0
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

func parseAmountString(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	if cleaned == "" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	return f
}

// IsBlank indica se o valor deve ser tratado como ausente (nil ou string vazia)
func IsBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case *string:
		return value == nil || strings.TrimSpace(*value) == ""
	}
	return false
}
