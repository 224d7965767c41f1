package invoice

import (
	"time"

	"github.com/Jimmysmirlies/cheerbase/internal/models"
)

// Tier identifies which price tier applied to a line.
type Tier string

const (
	TierEarlyBird Tier = "earlyBird"
	TierRegular   Tier = "regular"
)

// ResolvePricing picks the tier in effect for a division at ref. Early bird
// applies only when a discounted tier is configured and ref is strictly
// before its deadline. A zero ref counts as "not before the deadline" so
// totals stay computable on partial input.
func ResolvePricing(p models.DivisionPricing, ref time.Time) (Tier, float64) {
	if p.EarlyBirdPrice != nil && p.EarlyBirdDeadline != nil &&
		!ref.IsZero() && ref.Before(*p.EarlyBirdDeadline) {
		return TierEarlyBird, *p.EarlyBirdPrice
	}
	return TierRegular, p.RegularPrice
}
