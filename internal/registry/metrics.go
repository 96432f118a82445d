package registry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type registryMetrics struct {
	created prometheus.Counter
	closed  *prometheus.CounterVec
	open    prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metricsInst *registryMetrics
)

func globalMetrics() *registryMetrics {
	metricsOnce.Do(func() {
		metricsInst = &registryMetrics{
			created: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "gmdesk",
				Subsystem: "registry",
				Name:      "tickets_created_total",
				Help:      "Tickets filed, including overwrites of an open ticket",
			}),
			closed: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "gmdesk",
				Subsystem: "registry",
				Name:      "tickets_closed_total",
				Help:      "Tickets closed by an operator, labeled by survey request",
			}, []string{"survey"}),
			open: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "gmdesk",
				Subsystem: "registry",
				Name:      "tickets_open",
				Help:      "Currently open tickets",
			}),
		}
	})
	return metricsInst
}

func ticketsCreated() prometheus.Counter {
	return globalMetrics().created
}

func ticketsClosed(survey bool) prometheus.Counter {
	label := "no"
	if survey {
		label = "yes"
	}
	return globalMetrics().closed.WithLabelValues(label)
}

func openTickets() prometheus.Gauge {
	return globalMetrics().open
}
