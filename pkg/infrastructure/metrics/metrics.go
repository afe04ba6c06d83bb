// Package metrics exposes Prometheus instrumentation for simulation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	StockoutPeriods    prometheus.Counter
	OrdersPlaced       prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SimulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invsim_simulations_total",
			Help: "Simulation runs by outcome.",
		}, []string{"status"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "invsim_simulation_duration_seconds",
			Help:    "Wall-clock duration of simulation runs.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		StockoutPeriods: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invsim_stockout_periods_total",
			Help: "Simulated periods that ended in a stockout.",
		}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invsim_orders_placed_total",
			Help: "Nonzero replenishment orders placed across all runs.",
		}),
	}

	reg.MustRegister(m.SimulationsTotal, m.SimulationDuration, m.StockoutPeriods, m.OrdersPlaced)
	return m
}

// ObserveRun records the outcome of one simulation run.
func (m *Metrics) ObserveRun(duration time.Duration, stockouts, ordersPlaced int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.SimulationsTotal.WithLabelValues(status).Inc()
	if err != nil {
		return
	}
	m.SimulationDuration.Observe(duration.Seconds())
	m.StockoutPeriods.Add(float64(stockouts))
	m.OrdersPlaced.Add(float64(ordersPlaced))
}
