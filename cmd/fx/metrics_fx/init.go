package metrics_fx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"wanderplan/internal/services"
	"wanderplan/pkg/metrics"
)

var Module = fx.Provide(
	provideRegistry,
	func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
	provideRecorder,
	func(rec *metrics.Recorder) services.GenerationMetrics { return rec })

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideRecorder(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.NewRecorder(reg)
}
