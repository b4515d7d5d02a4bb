package metrics

import "github.com/prometheus/client_golang/prometheus"

// Shop-level metrics, recorded by the checkout workflow.
var (
	// OrdersPlaced counts order lines created by checkout.
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "shop",
		Name:      "orders_placed_total",
		Help:      "Total order lines created by checkout.",
	})

	// OrderRevenue sums checkout totals in the smallest currency unit.
	OrderRevenue = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "shop",
		Name:      "order_revenue_total",
		Help:      "Cumulative checkout revenue in the smallest currency unit.",
	})

	// NotificationFailures counts purchase confirmations that failed to send.
	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "shop",
		Name:      "notification_failures_total",
		Help:      "Purchase confirmations that failed to deliver.",
	})
)

func init() {
	DefaultRegistry.MustRegister(OrdersPlaced, OrderRevenue, NotificationFailures)
}
