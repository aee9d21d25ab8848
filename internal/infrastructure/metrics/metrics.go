package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Simulation metrics
	SimulationsTotal   prometheus.Counter
	SimulationDuration prometheus.Histogram
	DaysSimulated      prometheus.Counter
	SimulationWarnings prometheus.Counter
	SimulationErrors   *prometheus.CounterVec

	// Analysis metrics
	AnalysesTotal            prometheus.Counter
	AnomaliesDetected        *prometheus.CounterVec
	RecommendationsGenerated prometheus.Counter
	ModificationChainLength  prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SimulationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincast_simulations_total",
			Help: "Total number of trajectory simulations run",
		}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincast_simulation_duration_seconds",
			Help:    "Duration of trajectory simulations",
			Buckets: prometheus.DefBuckets,
		}),
		DaysSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincast_days_simulated_total",
			Help: "Total number of day records produced",
		}),
		SimulationWarnings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincast_simulation_warnings_total",
			Help: "Total number of tolerated irregularities observed during simulations",
		}),
		SimulationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_simulation_errors_total",
				Help: "Total number of rejected simulation configurations by reason",
			},
			[]string{"reason"},
		),

		AnalysesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincast_analyses_total",
			Help: "Total number of anomaly analyses run",
		}),
		AnomaliesDetected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_anomalies_detected_total",
				Help: "Total number of anomalies detected by kind",
			},
			[]string{"kind"},
		),
		RecommendationsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincast_recommendations_generated_total",
			Help: "Total number of recommendations generated",
		}),
		ModificationChainLength: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincast_modification_chain_length",
			Help:    "Length of synthesized budget modification chains",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}
}
