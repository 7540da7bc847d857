package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/erp-report-api/infrastructure/render"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
	"github.com/vfg2006/erp-report-api/pkg/apiErrors"
	"github.com/vfg2006/erp-report-api/pkg/log"
)

// SnapshotProvider é a parte do agendador usada pela API
type SnapshotProvider interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
	Latest(kind string) (*reporting.Report, bool)
}

// GetSnapshot devolve o último relatório montado pelo agendador, no formato pedido
func GetSnapshot(snapshots SnapshotProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind := httprouter.ParamsFromContext(r.Context()).ByName("kind")

		format, err := render.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato inválido. Valores aceitos: json, xlsx, html", nil)
			return
		}

		report, ok := snapshots.Latest(kind)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrSnapshotNotFound, "Nenhum snapshot disponível para o relatório", map[string]string{"kind": kind})
			return
		}

		writeReport(w, report, format)
	})
}

// RunSnapshots dispara manualmente a montagem dos snapshots
func RunSnapshots(snapshots SnapshotProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !snapshots.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrSyncRunning, "Montagem de snapshots já em andamento", nil)
			return
		}

		log.ForContext(r.Context()).Info("snapshots: montagem manual iniciada")
		writeJSON(w, http.StatusAccepted, map[string]any{"message": "Montagem de snapshots iniciada com sucesso"})
	})
}

// GetSnapshotStatus retorna o status do agendador de snapshots
func GetSnapshotStatus(snapshots SnapshotProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, snapshots.GetStatus())
	})
}
