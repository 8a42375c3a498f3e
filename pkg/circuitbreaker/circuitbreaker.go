// Package circuitbreaker wraps the sony/gobreaker factory with the default
// policy used for calls towards the external asset ledger.
package circuitbreaker

import "github.com/sony/gobreaker"

var (
	// MaxNumOfFailingRequests is the minimum number of observed requests
	// before the breaker is allowed to trip.
	MaxNumOfFailingRequests = 10
	// FailingRatio is the failing/total ratio at which the breaker trips.
	FailingRatio = 0.6
)

// NewCircuitBreaker returns a *gobreaker.CircuitBreaker that opens once the
// number of requests has exceeded MaxNumOfFailingRequests and the observed
// failing ratio has reached FailingRatio.
func NewCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "ledger",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
	})
}
