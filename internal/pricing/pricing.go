// Package pricing computes the resale price of a used book from its
// original retail price and physical condition.
package pricing

import (
	"fmt"
	"math"

	"booknook-backend/internal/models"
)

// Resale multipliers per condition.
const (
	multiplierLikeNew    = 0.35
	multiplierGood       = 0.28
	multiplierFair       = 0.23
	multiplierAcceptable = 0.15
)

// Multiplier returns the resale multiplier for a condition.
func Multiplier(cond models.Condition) (float64, error) {
	switch cond {
	case models.ConditionLikeNew:
		return multiplierLikeNew, nil
	case models.ConditionGood:
		return multiplierGood, nil
	case models.ConditionFair:
		return multiplierFair, nil
	case models.ConditionAcceptable:
		return multiplierAcceptable, nil
	default:
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidCondition, string(cond))
	}
}

// ComputePrice derives the resale price from the original price and the
// condition, rounded half-up to the nearest whole unit. Deterministic and
// side-effect free.
func ComputePrice(originalPrice float64, cond models.Condition) (int64, error) {
	mult, err := Multiplier(cond)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(originalPrice) || math.IsInf(originalPrice, 0) || originalPrice <= 0 {
		return 0, fmt.Errorf("%w: original price must be a positive number", models.ErrInvalidPrice)
	}

	return RoundPrice(originalPrice * mult), nil
}

// RoundPrice rounds a positive amount half-up to the nearest whole unit.
func RoundPrice(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
