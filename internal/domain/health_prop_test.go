package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func tier(h HealthLabel) int {
	switch h {
	case HealthWeak:
		return 0
	case HealthFair:
		return 1
	case HealthGood:
		return 2
	case HealthExcellent:
		return 3
	}
	return -1
}

func TestPropertyComputeHealthMonotonic(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	props := gopter.NewProperties(params)

	props.Property("health is monotonic non-decreasing in download speed", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return tier(ComputeHealth(&a)) <= tier(ComputeHealth(&b))
		},
		gen.Float64Range(0, 1000),
		gen.Float64Range(0, 1000),
	))

	props.Property("every measured speed maps to a real tier", prop.ForAll(
		func(v float64) bool {
			return tier(ComputeHealth(&v)) >= 0
		},
		gen.Float64Range(0, 10000),
	))

	props.TestingRun(t)
}
