package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wanderplan/pkg/metrics"
)

type MetricsController struct {
	recorder *metrics.Recorder
	gatherer prometheus.Gatherer
}

func NewMetricsController(recorder *metrics.Recorder, gatherer prometheus.Gatherer) *MetricsController {
	return &MetricsController{recorder: recorder, gatherer: gatherer}
}

// GetMetrics godoc
// @Summary Process metrics
// @Description Request totals, per-route latency rollups and planner counters
// @Tags Metrics
// @Produce json
// @Success 200 {object} response_models.MetricsResponse
// @Router /metrics [get]
func (m *MetricsController) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, m.recorder.Snapshot())
}

// Prometheus serves the registry in the text exposition format.
func (m *MetricsController) Prometheus() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
