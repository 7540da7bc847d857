package erp

import (
	"context"

	"github.com/vfg2006/erp-report-api/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/erp-report-api/internal/domain"
)

// ERPService expõe os recursos do ERP como origens de relatório
type ERPService struct {
	Client erpclient.Client
}

func New(client erpclient.Client) *ERPService {
	return &ERPService{
		Client: client,
	}
}

// Resource retorna a origem de um recurso; serve tanto para a listagem quanto para o detalhe
func (s *ERPService) Resource(resource string) *ResourceConnector {
	return &ResourceConnector{client: s.Client, resource: resource}
}

type ResourceConnector struct {
	client   erpclient.Client
	resource string
}

func (r *ResourceConnector) ListHeaders(ctx context.Context, token string) ([]domain.Record, error) {
	items, err := r.client.List(ctx, r.resource, token)
	if err != nil {
		return nil, err
	}

	headers := make([]domain.Record, 0, len(items))
	for _, item := range items {
		headers = append(headers, domain.Record(item))
	}

	return headers, nil
}

func (r *ResourceConnector) FetchDetail(ctx context.Context, token string, id string) (domain.Record, error) {
	detail, err := r.client.Get(ctx, r.resource, id, token)
	if err != nil {
		return nil, err
	}

	return domain.Record(detail), nil
}
