package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	erpdomain "github.com/vfg2006/erp-report-api/infrastructure/integrator/erp/erpdomain"
	"github.com/vfg2006/erp-report-api/infrastructure/render"
	"github.com/vfg2006/erp-report-api/internal/usecases/filtering"
	"github.com/vfg2006/erp-report-api/internal/usecases/reporting"
	"github.com/vfg2006/erp-report-api/pkg/apiErrors"
	"github.com/vfg2006/erp-report-api/pkg/log"
	"github.com/vfg2006/erp-report-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	textFilterPrefix  = "q."
	exactFilterPrefix = "eq."
)

// ListReportKinds lista os tipos de relatório disponíveis e suas colunas
func ListReportKinds(service reporting.Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"kinds": service.Kinds()})
	})
}

// BuildReport monta o relatório do tipo informado na rota.
// Parâmetros: start_date, end_date, date_field, q.<campo>, eq.<campo> e format (json, xlsx, html).
func BuildReport(service reporting.Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		kind := httprouter.ParamsFromContext(r.Context()).ByName("kind")
		query := r.URL.Query()

		format, err := render.ParseFormat(query.Get("format"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato inválido. Valores aceitos: json, xlsx, html", nil)
			return
		}

		report, err := service.Build(r.Context(), reporting.BuildRequest{
			Kind:   kind,
			Filter: filterInput(query),
			Token:  middleware.TokenFromContext(r.Context()),
		})
		if err != nil {
			logger.WithFields(log.Fields{
				"report_kind": kind,
				"error":       err.Error(),
			}).Warn("reports: falha ao montar relatório")

			writeBuildError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"build_id":    report.ID,
			"report_kind": report.Kind,
			"format":      string(format),
		}).Info("reports: relatório montado")

		writeReport(w, report, format)
	})
}

// filterInput converte a query string no filtro textual dos relatórios
func filterInput(query url.Values) filtering.Input {
	in := filtering.Input{
		DateField: query.Get("date_field"),
		Start:     query.Get("start_date"),
		End:       query.Get("end_date"),
	}

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		if field, ok := strings.CutPrefix(key, textFilterPrefix); ok && field != "" {
			if in.Text == nil {
				in.Text = map[string]string{}
			}
			in.Text[field] = values[0]
		}
		if field, ok := strings.CutPrefix(key, exactFilterPrefix); ok && field != "" {
			if in.Exact == nil {
				in.Exact = map[string]string{}
			}
			in.Exact[field] = values[0]
		}
	}

	return in
}

func writeReport(w http.ResponseWriter, report *reporting.Report, format render.Format) {
	if format == render.FormatJSON {
		writeJSON(w, http.StatusOK, report)
		return
	}

	banner := render.NewBanner(report.Title, report.Filter, report.GeneratedAt)
	if report.Notice != nil {
		banner.Notice = report.Notice.Message
	}

	body, err := render.Export(format, report.Table, banner)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o documento do relatório", nil)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == render.FormatXLSX {
		w.Header().Set("Content-Disposition", `attachment; filename="`+format.FileName(report.Kind, report.GeneratedAt)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// writeBuildError traduz os erros da montagem para os códigos da API
func writeBuildError(w http.ResponseWriter, err error) {
	var filterErr *filtering.FilterError
	var connErr *reporting.ConnectionError
	var erpErr *erpdomain.ErrorResponse

	switch {
	case errors.As(err, &filterErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, filterErr.Error(), map[string]string{"field": filterErr.Field})
	case errors.Is(err, reporting.ErrUnknownReportKind):
		apiErrors.WriteError(w, apiErrors.ErrUnknownReport, "Tipo de relatório desconhecido", nil)
	case errors.Is(err, reporting.ErrSourceUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrUnavailable, "Origem do relatório não configurada", nil)
	case errors.As(err, &erpErr) && erpErr.IsUnauthorized():
		apiErrors.WriteError(w, apiErrors.ErrERPRejected, "O ERP recusou o token informado", nil)
	case errors.As(err, &connErr):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar o ERP", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao montar o relatório", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao codificar resposta JSON")
	}
}
