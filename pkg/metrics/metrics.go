package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Booking metrics
	BookingsCreated      prometheus.Counter
	BookingStatusChanges *prometheus.CounterVec
	NotificationLinks    *prometheus.CounterVec

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Object storage metrics
	BlobOperations *prometheus.CounterVec

	// Broker metrics
	BrokerPublishes *prometheus.CounterVec
	WorkerEvents    *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace, subsystem string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_created_total",
			Help:      "Total number of bookings accepted",
		}),
		BookingStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_status_changes_total",
			Help:      "Total number of booking status updates by target status",
		}, []string{"status"}),
		NotificationLinks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notification_links_total",
			Help:      "Total number of outbound notification links produced",
		}, []string{"kind"}),

		DatabaseOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		BlobOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "blob_operations_total",
			Help:      "Total number of object storage operations",
		}, []string{"operation", "status"}),

		BrokerPublishes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "broker_publishes_total",
			Help:      "Total number of broker publish attempts",
		}, []string{"channel", "status"}),
		WorkerEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "worker_events_total",
			Help:      "Total number of booking events handled by the worker",
		}, []string{"type", "status"}),
	}
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveDatabase records one database operation. Safe on a nil receiver.
func (m *Metrics) ObserveDatabase(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.DatabaseOperations.WithLabelValues(operation, statusLabel(err)).Inc()
	m.DatabaseLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveBlob(operation string, err error) {
	if m == nil {
		return
	}
	m.BlobOperations.WithLabelValues(operation, statusLabel(err)).Inc()
}

func (m *Metrics) ObservePublish(channel string, err error) {
	if m == nil {
		return
	}
	m.BrokerPublishes.WithLabelValues(channel, statusLabel(err)).Inc()
}

func (m *Metrics) ObserveWorkerEvent(eventType string, err error) {
	if m == nil {
		return
	}
	m.WorkerEvents.WithLabelValues(eventType, statusLabel(err)).Inc()
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.BookingStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) LinksProduced(kind string, n int) {
	if m == nil {
		return
	}
	m.NotificationLinks.WithLabelValues(kind).Add(float64(n))
}
