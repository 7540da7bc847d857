package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/erp-report-api/internal/config"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/erp-report-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

type noSnapshots struct{}

func (noSnapshots) TriggerManualSync() bool { return false }

func (noSnapshots) GetStatus() map[string]any { return map[string]any{} }

func (noSnapshots) Latest(string) (*reporting.Report, bool) { return nil, false }

func newTestServer(t *testing.T, builder reporting.Builder) (*Server, *metrics.Metrics) {
	t.Helper()

	cfg := &config.Config{Server: config.Server{Host: "localhost", Port: "0", AllowedOrigins: []string{"http://localhost:3000"}}}
	appMetrics := metrics.New()

	srv, err := New(cfg, builder, noSnapshots{}, appMetrics)
	require.NoError(t, err)
	return srv, appMetrics
}

func TestServer_Rotas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	builder := mocks.NewMockBuilder(ctrl)
	builder.EXPECT().Kinds().Return(nil)

	srv, _ := newTestServer(t, builder)

	tests := []struct {
		name       string
		method     string
		target     string
		origin     string
		wantStatus int
		check      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "Healthcheck",
			method:     http.MethodGet,
			target:     "/healthcheck",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Lista de relatórios com correlation id",
			method:     http.MethodGet,
			target:     "/v1/reports",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
			},
		},
		{
			name:       "Preflight de origem liberada",
			method:     http.MethodOptions,
			target:     "/v1/reports/inventory",
			origin:     "http://localhost:3000",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:       "Origem não liberada",
			method:     http.MethodOptions,
			target:     "/v1/reports/inventory",
			origin:     "http://evil.example",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:       "Rota inexistente",
			method:     http.MethodGet,
			target:     "/v1/nada",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestServer_MetricasPorRota(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	builder := mocks.NewMockBuilder(ctrl)
	builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil, reporting.ErrUnknownReportKind)

	srv, _ := newTestServer(t, builder)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `route="/v1/reports/:kind"`), "rota registrada pelo padrão, não pelo caminho")
	assert.Contains(t, body, `status_code="404"`)
}
