package server

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the portfolio analysis handlers
	PortfolioRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recupera_portfolio_request_latency_seconds",
		Help:    "Latency of portfolio analysis handlers",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of portfolio analysis requests served
	PortfolioRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recupera_portfolio_requests_total",
		Help: "Total number of portfolio analysis requests",
	})

	// Total number of dataset uploads accepted
	DatasetUploads = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recupera_dataset_uploads_total",
		Help: "Total number of dataset uploads accepted",
	})
)

func initMetrics() {
	prometheus.MustRegister(
		PortfolioRequestLatency,
		PortfolioRequests,
		DatasetUploads,
	)
}
