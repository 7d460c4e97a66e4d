package metrics

import (
	"net/http"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exposes allocation counters on its own registry
type Recorder struct {
	registry    *prometheus.Registry
	allocations prometheus.Counter
	seated      prometheus.Counter
	unseated    prometheus.Counter
	forced      prometheus.Counter
	duration    prometheus.Histogram
}

// NewRecorder creates a Recorder and registers its collectors
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seatplan_allocations_total",
			Help: "Number of seat allocation runs.",
		}),
		seated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seatplan_students_seated_total",
			Help: "Students placed in a seat.",
		}),
		unseated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seatplan_students_unseated_total",
			Help: "Students left without a seat.",
		}),
		forced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seatplan_forced_placements_total",
			Help: "Seats placed next to a student of the same program.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seatplan_allocation_seconds",
			Help:    "Time spent allocating seats.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	r.registry.MustRegister(r.allocations, r.seated, r.unseated, r.forced, r.duration)
	return r
}

// Observe records one allocation run
func (r *Recorder) Observe(result models.AllocationResult, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.allocations.Inc()
	r.seated.Add(float64(result.SeatedStudents))
	r.unseated.Add(float64(len(result.Unseated)))
	r.forced.Add(float64(len(result.Conflicts)))
	r.duration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
