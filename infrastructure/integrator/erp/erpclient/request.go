package erpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	erpdomain "github.com/vfg2006/erp-report-api/infrastructure/integrator/erp/erpdomain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// defaultMaxPages limita a paginação caso o ERP devolva next_page inconsistente
const defaultMaxPages = 1000

// List percorre todas as páginas da listagem do recurso
func (c *ERPClient) List(ctx context.Context, resource string, token string) ([]map[string]any, error) {
	records := make([]map[string]any, 0)
	page := 1

	for i := 0; i < c.maxPages; i++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))

		body, err := c.do(ctx, token, query, resource)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao listar %s (página %d)", resource, page)
		}

		current, err := decodeListPage(body)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao decodificar a listagem de %s", resource)
		}

		records = append(records, current.Data...)
		if !current.HasNext() {
			return records, nil
		}

		page = *current.NextPage
	}

	return nil, errors.Errorf("listagem de %s excedeu %d páginas", resource, c.maxPages)
}

// Get busca o detalhe de um registro pelo id
func (c *ERPClient) Get(ctx context.Context, resource string, id string, token string) (map[string]any, error) {
	body, err := c.do(ctx, token, nil, resource, id)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar %s %s", resource, id)
	}

	var envelope erpdomain.DetailEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data, nil
	}

	var detail map[string]any
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar %s %s", resource, id)
	}

	return detail, nil
}

func decodeListPage(body []byte) (erpdomain.ListPage, error) {
	var current erpdomain.ListPage

	if first := firstNonSpace(body); first == '[' {
		if err := json.Unmarshal(body, &current.Data); err != nil {
			return current, err
		}
		return current, nil
	}

	if err := json.Unmarshal(body, &current); err != nil {
		return current, err
	}

	return current, nil
}

func firstNonSpace(body []byte) byte {
	for _, b := range body {
		switch b {
		case ' ', '\n', '\r', '\t':
			continue
		}
		return b
	}
	return 0
}

func (c *ERPClient) do(ctx context.Context, token string, query url.Values, segments ...string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "limite de requisições")
	}

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}

	endpoint = endpoint.JoinPath(segments...)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	// O token do usuário é repassado sem interpretação
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, erpdomain.ParseErrorResponse(resp.StatusCode, body)
	}

	return body, nil
}
