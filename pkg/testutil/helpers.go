// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/financing-sim/pkg/financing"
)

// FindComparison finds a comparison by unit name in the results slice.
// Returns a pointer to the comparison if found, nil otherwise.
func FindComparison(results []financing.Comparison, unit string) *financing.Comparison {
	for i := range results {
		if results[i].Unit == unit {
			return &results[i]
		}
	}
	return nil
}
