// AngelaMos | 2026
// engine.go

package customer

import (
	"math"
	"time"
)

const (
	amountPerPoint = 10

	highBonusThreshold = 5000
	lowBonusThreshold  = 1000

	goldPoints   = 750
	silverPoints = 500

	// maxBasePoints bounds a single purchase so base points always fit an
	// int32 and the float to int conversion is exact.
	maxBasePoints = math.MaxInt32
)

// PurchaseResult is the outcome of ApplyPurchase. StatusChanged reports an
// actual change of the status value, which is narrower than the
// LastStatusChange stamp.
type PurchaseResult struct {
	Customer      *Customer
	PointsEarned  int
	BonusApplied  int
	StatusChanged bool
	StoreLocation string
}

// BasePoints returns floor(amount / 10).
func BasePoints(amount float64) int {
	return int(math.Floor(amount / amountPerPoint))
}

// BonusPoints returns the bonus earned on base for a purchase of amount.
// Thresholds are exclusive: 5000 earns the 10% bonus and 1000 earns none.
func BonusPoints(amount float64, base int) int {
	switch {
	case amount > highBonusThreshold:
		return base / 5
	case amount > lowBonusThreshold:
		return base / 10
	default:
		return 0
	}
}

// TierFor returns the tier earned by points, or false when points fall
// below every threshold and the current status must be kept.
func TierFor(points int) (Status, bool) {
	switch {
	case points >= goldPoints:
		return StatusGold, true
	case points >= silverPoints:
		return StatusSilver, true
	default:
		return "", false
	}
}

// validAmount rejects non-positive and NaN amounts, and amounts whose base
// points would exceed maxBasePoints (which covers +Inf).
func validAmount(amount float64) bool {
	return amount > 0 && amount/amountPerPoint <= maxBasePoints
}

// ApplyPurchase credits c with the points earned by a purchase of amount and
// recomputes its tier. c is untouched when the amount is rejected.
//
// LastStatusChange is stamped whenever a tier threshold is met, even if the
// status value stays the same.
func ApplyPurchase(
	c *Customer,
	amount float64,
	storeLocation string,
	now time.Time,
) (PurchaseResult, error) {
	if !validAmount(amount) {
		return PurchaseResult{}, ErrInvalidPurchaseAmount
	}

	base := BasePoints(amount)
	bonus := BonusPoints(amount, base)
	earned := base + bonus
	if c.Points > math.MaxInt-earned {
		return PurchaseResult{}, ErrInvalidPurchaseAmount
	}

	stamp := now.UTC().Truncate(time.Millisecond)

	c.Points += earned
	c.LastPurchaseDate = &stamp

	previous := c.Status
	if tier, ok := TierFor(c.Points); ok {
		changedAt := stamp
		c.Status = tier
		c.LastStatusChange = &changedAt
	}

	return PurchaseResult{
		Customer:      c,
		PointsEarned:  earned,
		BonusApplied:  bonus,
		StatusChanged: previous != c.Status,
		StoreLocation: storeLocation,
	}, nil
}
