package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler expõe as métricas no formato do Prometheus
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
