package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests served"},
		[]string{"route"},
	)
	ProviderFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "provider_fetches_total", Help: "Market-data provider calls"},
		[]string{"kind"},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cache_hits_total", Help: "Provider cache hits"},
	)
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cache_misses_total", Help: "Provider cache misses"},
	)
	AlertScansTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "alert_scans_total", Help: "Scheduled watchlist alert scans"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, ProviderFetchesTotal,
		CacheHitsTotal, CacheMissesTotal, AlertScansTotal)
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
