package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/erp-report-api/internal/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// ParseFormat aceita json, xlsx e html; vazio vale json
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", value)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/json"
	}
}

// FileName monta o nome do anexo, por exemplo delivery-notes-20240301-1530.xlsx
func (f Format) FileName(kind string, generatedAt time.Time) string {
	return fmt.Sprintf("%s-%s.%s", kind, generatedAt.Format("20060102-1504"), f)
}

// Export gera o documento nos formatos de arquivo. JSON fica a cargo de quem chama.
func Export(format Format, table *domain.Table, banner Banner) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return XLSX(table, banner)
	case FormatHTML:
		return HTML(table, banner)
	default:
		return nil, fmt.Errorf("format %q is not a document format", format)
	}
}
