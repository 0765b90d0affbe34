package scoring

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nao1215/trustguard/internal/model"
)

// Weights maps a finding key to the risk points it adds when true.
type Weights map[string]int

// DefaultWeights returns the stock weight table.
func DefaultWeights() Weights {
	return Weights{
		model.KeyDomainMismatch:     25,
		model.KeyMessagingApps:      25,
		model.KeyHiddenFees:         40,
		model.KeyLowHoursHighPay:    20,
		model.KeyVagueDescription:   10,
		model.KeyMissingManagerName: 5,
		model.KeyPhishingAttempt:    100,
	}
}

// WithOverrides returns a copy of w with the given entries replaced.
// It fails when an override names an unknown key or is negative.
func (w Weights) WithOverrides(overrides map[string]int) (Weights, error) {
	out := maps.Clone(w)
	if out == nil {
		out = DefaultWeights()
	}
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := out[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownWeight, key)
		}
		out[key] = overrides[key]
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks that every weight is non-negative.
func (w Weights) Validate() error {
	for _, key := range slices.Sorted(maps.Keys(w)) {
		if w[key] < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeWeight, key, w[key])
		}
	}
	return nil
}
