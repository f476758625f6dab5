// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Collector counts the observable side effects of the service: view
// invalidations, record mutations and gateway calls.
type Collector struct {
	viewInvalidations *prometheus.CounterVec
	mutations         *prometheus.CounterVec
	gatewayRequests   *prometheus.CounterVec
}

// NewCollector registers the service metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		viewInvalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thakirni_view_invalidations_total",
			Help: "View invalidations per route template",
		}, []string{"route"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thakirni_record_mutations_total",
			Help: "Record mutations per table and outcome",
		}, []string{"table", "outcome"}),
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thakirni_gateway_requests_total",
			Help: "Outbound payment gateway requests per gateway and outcome",
		}, []string{"gateway", "outcome"}),
	}

	reg.MustRegister(c.viewInvalidations, c.mutations, c.gatewayRequests)
	return c
}

func (c *Collector) RecordInvalidation(route string) {
	c.viewInvalidations.WithLabelValues(route).Inc()
}

func (c *Collector) RecordMutation(table, outcome string) {
	c.mutations.WithLabelValues(table, outcome).Inc()
}

func (c *Collector) RecordGatewayRequest(gateway, outcome string) {
	c.gatewayRequests.WithLabelValues(gateway, outcome).Inc()
}

// Handler serves the registry in Prometheus text format.
func Handler(reg *prometheus.Registry) gin.HandlerFunc {
	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
