package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	cartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart mutations by operation and outcome.",
		},
		[]string{"operation", "result"},
	)
	cartReconciliations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_reconciliations_total",
			Help: "Cart writes that failed and were replaced by a fresh read.",
		},
	)
	ordersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Checkout attempts by outcome.",
		},
		[]string{"result"},
	)
	orderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_value_dollars",
			Help:    "Order totals at checkout.",
			Buckets: []float64{10, 20, 30, 50, 75, 100, 150, 250},
		},
	)
	orderStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_status_changes_total",
			Help: "Dashboard status transitions by target status.",
		},
		[]string{"status"},
	)
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func RecordCartOperation(operation string, err error) {
	cartOperations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func RecordCartReconciliation() {
	cartReconciliations.Inc()
}

func RecordCheckout(total decimal.Decimal, err error) {
	ordersPlaced.WithLabelValues(resultLabel(err)).Inc()
	if err == nil {
		orderValue.Observe(total.InexactFloat64())
	}
}

func RecordStatusChange(status string) {
	orderStatusChanges.WithLabelValues(status).Inc()
}
