// Package metrics agrupa os contadores Prometheus da aplicação
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Requisições HTTP por rota e status
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Execuções do pipeline de ranking
	RankingRunsTotal  *prometheus.CounterVec
	RankingResultSize *prometheus.HistogramVec

	// Contribuições recebidas dos usuários
	ContributionsTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelrank_http_requests_total",
				Help: "Total de requisições HTTP por método, rota e status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fuelrank_http_request_duration_seconds",
				Help:    "Duração das requisições HTTP em segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RankingRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelrank_ranking_runs_total",
				Help: "Total de execuções do pipeline de ranking por filtro de combustível",
			},
			[]string{"fuel_filter"},
		),
		RankingResultSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fuelrank_ranking_result_size",
				Help:    "Quantidade de postos retornados por execução do pipeline",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
			[]string{"fuel_filter"},
		),
		ContributionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelrank_contributions_total",
				Help: "Total de contribuições recebidas por tipo",
			},
			[]string{"type"},
		),
	}
}

// RecordRankingRun registra uma execução do pipeline e o tamanho do resultado
func (m *Metrics) RecordRankingRun(fuelFilter string, resultSize int) {
	if fuelFilter == "" {
		fuelFilter = "todos"
	}
	m.RankingRunsTotal.WithLabelValues(fuelFilter).Inc()
	m.RankingResultSize.WithLabelValues(fuelFilter).Observe(float64(resultSize))
}

// RecordHTTPRequest registra uma requisição HTTP atendida
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordContribution registra uma contribuição de usuário (avaliação,
// denúncia, preço, abastecimento)
func (m *Metrics) RecordContribution(contributionType string) {
	m.ContributionsTotal.WithLabelValues(contributionType).Inc()
}
