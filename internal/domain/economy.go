package domain

import "time"

// Economy holds the tunable rules of the points economy.
type Economy struct {
	MinOffer          int
	MaxOffer          int
	OfferStep         int
	DefaultOffer      int
	DailyRequestQuota int
	InitialBalance    int
	CheckInReward     int
	CheckInCooldown   time.Duration
	RequestValidity   time.Duration
	ResponseValidity  time.Duration
	DecisionRetention time.Duration
}

// DefaultEconomy returns the production rules.
func DefaultEconomy() Economy {
	return Economy{
		MinOffer:          10,
		MaxOffer:          50,
		OfferStep:         5,
		DefaultOffer:      10,
		DailyRequestQuota: 5,
		InitialBalance:    100,
		CheckInReward:     10,
		CheckInCooldown:   24 * time.Hour,
		RequestValidity:   5 * 24 * time.Hour,
		ResponseValidity:  7 * 24 * time.Hour,
		DecisionRetention: 24 * time.Hour,
	}
}

// IsValidOffer reports whether points is within bounds and on the step grid.
func (e Economy) IsValidOffer(points int) bool {
	if points < e.MinOffer || points > e.MaxOffer {
		return false
	}
	if e.OfferStep <= 0 {
		return true
	}
	return (points-e.MinOffer)%e.OfferStep == 0
}

// OfferChoices lists every valid offer from MinOffer to MaxOffer.
func (e Economy) OfferChoices() []int {
	step := e.OfferStep
	if step <= 0 {
		step = 1
	}
	var out []int
	for p := e.MinOffer; p <= e.MaxOffer; p += step {
		out = append(out, p)
	}
	return out
}
