package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/erp-report-api/internal/api/handler/router"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
	"github.com/vfg2006/erp-report-api/pkg/apiErrors"
)

type fakeSnapshots struct {
	running   bool
	triggered int
	reports   map[string]*reporting.Report
}

func (f *fakeSnapshots) TriggerManualSync() bool {
	if f.running {
		return false
	}
	f.triggered++
	return true
}

func (f *fakeSnapshots) GetStatus() map[string]any {
	return map[string]any{"sync_running": f.running}
}

func (f *fakeSnapshots) Latest(kind string) (*reporting.Report, bool) {
	report, ok := f.reports[kind]
	return report, ok
}

func TestSnapshots(t *testing.T) {
	tests := []struct {
		name       string
		snapshots  *fakeSnapshots
		method     string
		target     string
		wantStatus int
		wantCode   string
		wantBody   string
	}{
		{
			name:       "Último snapshot em JSON",
			snapshots:  &fakeSnapshots{reports: map[string]*reporting.Report{reporting.KindInventory: sampleReport()}},
			method:     http.MethodGet,
			target:     "/v1/reports/inventory/snapshot",
			wantStatus: http.StatusOK,
			wantBody:   `"build-1"`,
		},
		{
			name:       "Snapshot ainda não gerado",
			snapshots:  &fakeSnapshots{},
			method:     http.MethodGet,
			target:     "/v1/reports/payments/snapshot",
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrSnapshotNotFound,
		},
		{
			name:       "Disparo manual",
			snapshots:  &fakeSnapshots{},
			method:     http.MethodPost,
			target:     "/v1/snapshots/run",
			wantStatus: http.StatusAccepted,
			wantBody:   "iniciada",
		},
		{
			name:       "Disparo manual com execução em andamento",
			snapshots:  &fakeSnapshots{running: true},
			method:     http.MethodPost,
			target:     "/v1/snapshots/run",
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrSyncRunning,
		},
		{
			name:       "Status do agendador",
			snapshots:  &fakeSnapshots{running: true},
			method:     http.MethodGet,
			target:     "/v1/snapshots/status",
			wantStatus: http.StatusOK,
			wantBody:   `"sync_running":true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(router.WithRoutes(Snapshots(tt.snapshots)...))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
