package utils

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Formatos aceitos na entrada, ISO primeiro e depois os formatos locais (dia antes do mês)
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"2006/01/02",
	"02/01/2006",
	"02.01.2006",
	"02-01-2006",
	"02/01/2006 15:04",
	"02.01.2006 15:04",
	"02/01/2006 15:04:05",
	"02.01.2006 15:04:05",
}

// NormalizeDate converte o valor em um dia (meia-noite UTC).
// Entradas ausentes ou inválidas retornam ok=false, nunca uma data zero.
// Números são interpretados como epoch em milissegundos.
func NormalizeDate(v any) (time.Time, bool) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if value.IsZero() {
			return time.Time{}, false
		}
		return truncateToDay(value), true
	case *time.Time:
		if value == nil || value.IsZero() {
			return time.Time{}, false
		}
		return truncateToDay(*value), true
	case string:
		return parseDateString(value)
	case *string:
		if value == nil {
			return time.Time{}, false
		}
		return parseDateString(*value)
	case json.Number:
		millis, err := value.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return truncateToDay(time.UnixMilli(millis).UTC()), true
	case bool:
		return time.Time{}, false
	}

	millis, err := cast.ToInt64E(v)
	if err != nil {
		return time.Time{}, false
	}

	return truncateToDay(time.UnixMilli(millis).UTC()), true
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return truncateToDay(parsed), true
		}
	}

	return time.Time{}, false
}

// truncateToDay mantém o dia do calendário como escrito, descartando hora e fuso
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
