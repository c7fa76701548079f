package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллекция prometheus метрик сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	StatusTransitions *prometheus.CounterVec
	PaymentsTotal     *prometheus.CounterVec
	PaymentsAmount    *prometheus.CounterVec
	RefundDecisions   *prometheus.CounterVec
	Notifications     *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Applied booking status transitions",
		}, []string{"service", "from", "to"}),

		PaymentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_payments_total",
			Help: "Recorded payments by resolved payment status",
		}, []string{"service", "payment_status"}),

		PaymentsAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_payments_amount_total",
			Help: "Sum of recorded payment amounts",
		}, []string{"service"}),

		RefundDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_refund_decisions_total",
			Help: "Refund requests approved or rejected",
		}, []string{"service", "decision"}),

		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_notifications_total",
			Help: "Notification deliveries by kind and result",
		}, []string{"service", "kind", "result"}),
	}
}

// ServiceName возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// IncStatusTransition учитывает применённый переход статуса
func (m *Metrics) IncStatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(m.serviceName, from, to).Inc()
}

// ObservePayment учитывает принятый платёж
func (m *Metrics) ObservePayment(paymentStatus string, amount float64) {
	if m == nil {
		return
	}
	m.PaymentsTotal.WithLabelValues(m.serviceName, paymentStatus).Inc()
	m.PaymentsAmount.WithLabelValues(m.serviceName).Add(amount)
}

// IncRefundDecision учитывает решение по возврату
func (m *Metrics) IncRefundDecision(decision string) {
	if m == nil {
		return
	}
	m.RefundDecisions.WithLabelValues(m.serviceName, decision).Inc()
}

// IncNotification учитывает результат отправки уведомления
func (m *Metrics) IncNotification(kind, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(m.serviceName, kind, result).Inc()
}
