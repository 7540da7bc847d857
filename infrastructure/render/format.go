package render

import (
	"strings"

	"github.com/vfg2006/erp-report-api/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formata números com os separadores do português do Brasil
var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatCell produz o texto exibido de uma célula
func FormatCell(cell domain.Cell, currencySymbol string) string {
	if cell.Empty {
		return cell.Text
	}

	switch cell.Kind {
	case domain.FormatInteger:
		return printer.Sprintf("%d", int64(roundHalfAway(cell.Number)))
	case domain.FormatDecimal:
		return printer.Sprintf("%.2f", cell.Number)
	case domain.FormatCurrency:
		return strings.TrimSpace(currencySymbol + " " + printer.Sprintf("%.2f", cell.Number))
	case domain.FormatDate:
		if cell.Date == nil {
			return ""
		}
		return cell.Date.Format(displayDateLayout)
	}

	return cell.Text
}

func roundHalfAway(f float64) float64 {
	if f < 0 {
		return -roundHalfAway(-f)
	}
	return float64(int64(f + 0.5))
}
