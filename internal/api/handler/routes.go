package handler

import (
	"net/http"

	"github.com/vfg2006/erp-report-api/internal/api/handler/router"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
	"github.com/vfg2006/erp-report-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Metrics expõe o handler do prometheus
func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Reports(service reporting.Builder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: ListReportKinds(service),
		},
		{
			Path:        "/v1/reports/:kind",
			Method:      http.MethodGet,
			Handler:     BuildReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.TokenMiddleware()},
		},
	}
}

func Snapshots(snapshots SnapshotProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/:kind/snapshot",
			Method:  http.MethodGet,
			Handler: GetSnapshot(snapshots),
		},
		{
			Path:    "/v1/snapshots/run",
			Method:  http.MethodPost,
			Handler: RunSnapshots(snapshots),
		},
		{
			Path:    "/v1/snapshots/status",
			Method:  http.MethodGet,
			Handler: GetSnapshotStatus(snapshots),
		},
	}
}
