package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "erp_report"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics agrupa os coletores da montagem de relatórios em um registro próprio
type Metrics struct {
	registry       *prometheus.Registry
	builds         *prometheus.CounterVec
	buildDuration  *prometheus.HistogramVec
	detailFetches  *prometheus.CounterVec
	detailDuration *prometheus.HistogramVec
	rows           *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Montagens de relatório por tipo e resultado.",
		}, []string{"kind", "status"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duração da montagem de relatório.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"kind"}),
		detailFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_fetches_total",
			Help:      "Buscas de detalhe por tipo e resultado.",
		}, []string{"kind", "status"}),
		detailDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "detail_fetch_duration_seconds",
			Help:      "Duração de cada busca de detalhe.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Linhas processadas por tipo e etapa (listed, kept).",
		}, []string{"kind", "stage"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por método, rota e status.",
		}, []string{"method", "route", "status_code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.builds,
		m.buildDuration,
		m.detailFetches,
		m.detailDuration,
		m.rows,
		m.httpRequests,
	)

	return m
}

// Handler expõe o registro no formato de texto do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveBuild(kind string, duration time.Duration, err error) {
	m.builds.WithLabelValues(kind, status(err)).Inc()
	m.buildDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDetailFetch(kind string, duration time.Duration, err error) {
	m.detailFetches.WithLabelValues(kind, status(err)).Inc()
	m.detailDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *Metrics) AddRows(kind string, stage string, count int) {
	m.rows.WithLabelValues(kind, stage).Add(float64(count))
}

func (m *Metrics) ObserveHTTPRequest(method, route string, statusCode int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}
