package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkpal",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	reservationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkpal",
			Name:      "reservation_events_total",
			Help:      "Reservation lifecycle events by type.",
		},
		[]string{"type"},
	)

	incomeBilled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parkpal",
			Name:      "income_billed_total",
			Help:      "Total amount billed on reservation exits.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationEvents, incomeBilled)
	})
}

func IncHTTP(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}

func IncReservationEvent(eventType string) {
	reservationEvents.WithLabelValues(eventType).Inc()
}

func AddIncomeBilled(amount int64) {
	if amount > 0 {
		incomeBilled.Add(float64(amount))
	}
}
