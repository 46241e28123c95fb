package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order submission outcomes.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  prometheus.Counter
	rejected prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_submit_duration_seconds",
		Help:    "Duration of order submissions to the collector.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_submit_success_total",
		Help: "Orders accepted by the collector endpoint.",
	})
	failure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_submit_failure_total",
		Help: "Order submissions that failed at the transport level.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Checkout attempts blocked before any network effect.",
	})
	reg.MustRegister(duration, success, failure, rejected)
	return &CheckoutMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		rejected: rejected,
	}
}

// ObserveSubmit records the outcome and duration of a submission attempt.
func (c *CheckoutMetrics) ObserveSubmit(ok bool, elapsed time.Duration) {
	if c == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	if c.duration != nil {
		c.duration.WithLabelValues(result).Observe(elapsed.Seconds())
	}
	if ok {
		if c.success != nil {
			c.success.Inc()
		}
		return
	}
	if c.failure != nil {
		c.failure.Inc()
	}
}

// IncRejected counts a checkout that never reached the collector, e.g. a
// validation failure or an empty cart.
func (c *CheckoutMetrics) IncRejected() {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.Inc()
}
