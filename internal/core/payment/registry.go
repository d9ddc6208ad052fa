// Package payment holds the payment strategies and the registry that
// selects one by method identifier.
package payment

import (
	"maps"
	"slices"

	"github.com/paydesk/payment-service/internal/core/ports"
)

// Registry is an immutable method → strategy mapping. It is safe for
// concurrent use once constructed.
type Registry struct {
	strategies map[string]ports.PaymentStrategy
}

var _ ports.StrategyRegistry = (*Registry)(nil)

// NewRegistry copies strategies into a new Registry. Nil strategies are skipped.
func NewRegistry(strategies map[string]ports.PaymentStrategy) *Registry {
	r := &Registry{strategies: make(map[string]ports.PaymentStrategy, len(strategies))}
	for method, s := range strategies {
		if s == nil {
			continue
		}
		r.strategies[method] = s
	}
	return r
}

// Lookup matches method exactly; there is no fallback strategy.
func (r *Registry) Lookup(method string) (ports.PaymentStrategy, bool) {
	s, ok := r.strategies[method]
	return s, ok
}

// Methods returns the registered method identifiers, sorted.
func (r *Registry) Methods() []string {
	return slices.Sorted(maps.Keys(r.strategies))
}
