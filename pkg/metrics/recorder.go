package metrics

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wanderplan/internal/models/response_models"
)

const (
	OutcomeStarted = "started"
	OutcomeSuccess = "success"
	OutcomeTimeout = "timeout"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
	OutcomeRetry   = "retry"
)

type routeStat struct {
	count      uint64
	durationMs int64
}

// Recorder owns the process-wide counters. Counters only ever grow; the prometheus
// collectors mirror them when a registerer is supplied.
type Recorder struct {
	totalGenerations atomic.Uint64
	success          atomic.Uint64
	timeout          atomic.Uint64
	invalid          atomic.Uint64
	failed           atomic.Uint64
	retries          atomic.Uint64

	totalRequests atomic.Uint64
	totalErrors   atomic.Uint64

	mu     sync.Mutex
	routes map[string]*routeStat

	generations  *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder builds a recorder. A nil registerer keeps everything in process.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{routes: map[string]*routeStat{}}
	if reg == nil {
		return r
	}

	factory := promauto.With(reg)
	r.generations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_generations_total",
			Help: "Itinerary generation events by outcome",
		},
		[]string{"outcome"},
	)
	r.httpRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
	r.httpDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	return r
}

func (r *Recorder) observe(outcome string) {
	if r.generations != nil {
		r.generations.WithLabelValues(outcome).Inc()
	}
}

func (r *Recorder) IncTotal() {
	r.totalGenerations.Add(1)
	r.observe(OutcomeStarted)
}

func (r *Recorder) IncSuccess() {
	r.success.Add(1)
	r.observe(OutcomeSuccess)
}

func (r *Recorder) IncTimeout() {
	r.timeout.Add(1)
	r.observe(OutcomeTimeout)
}

func (r *Recorder) IncInvalid() {
	r.invalid.Add(1)
	r.observe(OutcomeInvalid)
}

func (r *Recorder) IncFailed() {
	r.failed.Add(1)
	r.observe(OutcomeFailed)
}

func (r *Recorder) IncRetries() {
	r.retries.Add(1)
	r.observe(OutcomeRetry)
}

func (r *Recorder) PlannerSnapshot() response_models.PlannerMetrics {
	return response_models.PlannerMetrics{
		TotalGenerations: r.totalGenerations.Load(),
		Success:          r.success.Load(),
		Timeout:          r.timeout.Load(),
		Invalid:          r.invalid.Load(),
		Failed:           r.failed.Load(),
		Retries:          r.retries.Load(),
	}
}

// RecordRequest rolls one finished HTTP request into the route table. Status >= 500 counts
// as an error.
func (r *Recorder) RecordRequest(method, route string, status int, elapsed time.Duration) {
	r.totalRequests.Add(1)
	if status >= 500 {
		r.totalErrors.Add(1)
	}

	key := method + " " + route
	r.mu.Lock()
	stat, ok := r.routes[key]
	if !ok {
		stat = &routeStat{}
		r.routes[key] = stat
	}
	stat.count++
	stat.durationMs += elapsed.Milliseconds()
	r.mu.Unlock()

	if r.httpRequests != nil {
		r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	}
}

func (r *Recorder) Snapshot() response_models.MetricsResponse {
	out := response_models.MetricsResponse{
		TotalRequests: r.totalRequests.Load(),
		TotalErrors:   r.totalErrors.Load(),
		Routes:        map[string]response_models.RouteMetrics{},
		Planner:       r.PlannerSnapshot(),
	}

	var count uint64
	var total int64
	r.mu.Lock()
	for k, s := range r.routes {
		out.Routes[k] = response_models.RouteMetrics{Count: s.count, TotalDurationMs: s.durationMs}
		count += s.count
		total += s.durationMs
	}
	r.mu.Unlock()

	if count > 0 {
		out.AvgTotalDurationMs = int64(math.Round(float64(total) / float64(count)))
	}
	return out
}
