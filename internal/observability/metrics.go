package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the risk service.
type Metrics struct {
	Predictions        *prometheus.CounterVec // labels: risk_level={High,Low}
	InvalidInputs      prometheus.Counter
	ClassifierErrors   prometheus.Counter
	PredictionDuration prometheus.Histogram
	DegradedMode       prometheus.Gauge
	ModelLoaded        prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: method={zip,reverse}, outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec   // labels: method={zip,reverse}, result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: method={zip,reverse}
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parksafe",
			Name:      "predictions_total",
			Help:      "Risk predictions served, by risk level.",
		}, []string{"risk_level"}),
		InvalidInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parksafe",
			Name:      "invalid_inputs_total",
			Help:      "Queries rejected by the feature encoder.",
		}),
		ClassifierErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parksafe",
			Name:      "classifier_errors_total",
			Help:      "Classifier predict failures.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "parksafe",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of encode, align, predict, and enrichment for one query.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		DegradedMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parksafe",
			Name:      "degraded_mode",
			Help:      "1 when the classifier artifact has no feature schema, 0 otherwise.",
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parksafe",
			Name:      "model_loaded",
			Help:      "1 once the classifier artifact is loaded.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parksafe",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parksafe",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "parksafe",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parksafe",
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Predictions,
		m.InvalidInputs,
		m.ClassifierErrors,
		m.PredictionDuration,
		m.DegradedMode,
		m.ModelLoaded,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Predictions:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "parksafe", Name: "predictions_total"}, []string{"risk_level"}),
		InvalidInputs:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "parksafe", Name: "invalid_inputs_total"}),
		ClassifierErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "parksafe", Name: "classifier_errors_total"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "parksafe", Name: "prediction_duration_seconds"}),
		DegradedMode:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "parksafe", Name: "degraded_mode"}),
		ModelLoaded:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "parksafe", Name: "model_loaded"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "parksafe", Name: "geocode_requests_total"}, []string{"method", "outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "parksafe", Name: "geocode_cache_total"}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "parksafe", Name: "geocode_api_duration_seconds"}, []string{"method"}),
		GeocodeEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "parksafe", Name: "geocode_enabled"}),
	}
}
