package erpdomain

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Recursos do ERP usados pelos relatórios
const (
	ResourceDeliveryNotes = "delivery-notes"
	ResourcePayments      = "payments"
)

// ListPage é uma página da listagem. O ERP pode responder com o envelope paginado
// ou com a lista pura, que é tratada como página única.
type ListPage struct {
	Data     []map[string]any `json:"data"`
	Page     int              `json:"page"`
	NextPage *int             `json:"next_page"`
	Total    int              `json:"total"`
}

func (p ListPage) HasNext() bool {
	return p.NextPage != nil && *p.NextPage > p.Page && len(p.Data) > 0
}

// DetailEnvelope aceita o detalhe dentro de "data" ou na raiz do corpo
type DetailEnvelope struct {
	Data map[string]any `json:"data"`
}

// ErrorResponse representa a estrutura de erro da API do ERP
type ErrorResponse struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ErrorResponse) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("erp respondeu %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("erp respondeu %d: %s", e.Status, e.Message)
}

// IsUnauthorized indica token ausente, inválido ou expirado
func (e *ErrorResponse) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

func (e *ErrorResponse) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// ParseErrorResponse monta o erro a partir do corpo; corpos fora do formato usam o texto do status
func ParseErrorResponse(status int, body []byte) *ErrorResponse {
	errResp := &ErrorResponse{}
	if err := jsoniter.Unmarshal(body, errResp); err != nil || errResp.Message == "" {
		errResp.Message = http.StatusText(status)
	}
	errResp.Status = status
	return errResp
}
