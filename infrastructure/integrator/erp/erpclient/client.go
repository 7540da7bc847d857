package erpclient

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/erp-report-api/internal/config"
	"golang.org/x/time/rate"
)

type Client interface {
	List(ctx context.Context, resource string, token string) ([]map[string]any, error)
	Get(ctx context.Context, resource string, id string, token string) (map[string]any, error)
}

type ERPClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxPages   int
}

// NewClient cria o cliente HTTP do ERP com limite de requisições por segundo
func NewClient(cfg *config.Config) Client {
	timeout := cfg.ERP.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ERPClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  cfg.ERP.URL,
		limiter:  newLimiter(cfg.ERP.RequestsPerSecond, cfg.ERP.Burst),
		maxPages: defaultMaxPages,
	}
}

func newLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}

	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}

	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
