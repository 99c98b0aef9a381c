package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics.
type MetricsManager struct {
	Registry               *prometheus.Registry
	RegistrationsTotal     prometheus.Counter
	LoginsTotal            prometheus.Counter
	PasswordResetsTotal    prometheus.Counter
	ListingsPublishedTotal prometheus.Counter
	APIErrorsTotal         *prometheus.CounterVec
	APIRequestLatency      *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	registrationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "registrations_total",
		Help:      "Total number of profiles registered.",
	})
	loginsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	})
	passwordResetsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "password_resets_total",
		Help:      "Total number of completed password resets.",
	})
	listingsPublishedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_published_total",
		Help:      "Total number of room and item listings published.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by method.",
	}, []string{"method", "error_type"})

	apiRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	registry.MustRegister(
		registrationsTotal,
		loginsTotal,
		passwordResetsTotal,
		listingsPublishedTotal,
		apiErrorsTotal,
		apiRequestLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:               registry,
		RegistrationsTotal:     registrationsTotal,
		LoginsTotal:            loginsTotal,
		PasswordResetsTotal:    passwordResetsTotal,
		ListingsPublishedTotal: listingsPublishedTotal,
		APIErrorsTotal:         apiErrorsTotal,
		APIRequestLatency:      apiRequestLatency,
	}
}

// StartMetricsServer starts an HTTP server to expose Prometheus metrics.
func StartMetricsServer(port string, logger *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		logger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
