package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refetchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marge_approvals_refetch_total",
		Help: "A counter of approval state refetches by backend and result.",
	}, []string{"backend", "result"})
	shortCircuitCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marge_approvals_short_circuit_total",
		Help: "A counter of emulated resolutions that ended with no owner policy in effect.",
	}, []string{"reason"})
	reapprovalCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marge_reapprovals_total",
		Help: "A counter of impersonated approve actions by result.",
	}, []string{"result"})
)

// Refetch records one approval state refetch.
func Refetch(backend, result string) {
	refetchCounter.WithLabelValues(backend, result).Inc()
}

// ShortCircuit records an emulated resolution that short-circuited to
// zero required approvals.
func ShortCircuit(reason string) {
	shortCircuitCounter.WithLabelValues(reason).Inc()
}

// Reapproval records one impersonated approve action.
func Reapproval(result string) {
	reapprovalCounter.WithLabelValues(result).Inc()
}
