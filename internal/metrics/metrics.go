package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	PurchasesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "Total settled note purchases",
		},
	)
	PurchasesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_failed_total",
			Help: "Total failed note purchases",
		},
	)

	WithdrawalsSettled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "withdrawals_settled_total",
			Help: "Total completed withdrawals",
		},
	)
	WithdrawalsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "withdrawals_failed_total",
			Help: "Total failed withdrawal completions",
		},
	)

	NotificationsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Outbox events dispatched, by outcome",
		},
		[]string{"outcome"}, // ok|failed
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(PurchasesTotal)
	prometheus.MustRegister(PurchasesFailed)
	prometheus.MustRegister(WithdrawalsSettled)
	prometheus.MustRegister(WithdrawalsFailed)
	prometheus.MustRegister(NotificationsDispatched)
	prometheus.MustRegister(WorkerQueueDepth)
}
