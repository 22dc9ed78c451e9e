package calculator

import (
	"time"

	"CardDesk/internal/model"
)

// ConfidenceScore rates how well the comp sales support the computed
// average, 0-100. Sales volume carries most of the weight, price
// dispersion and staleness subtract from it.
//
// Volume component (up to 70): 20+ comps max it out. Dispersion penalty
// (up to 30): a relative spread of 0.5 or worse forfeits it all.
// Staleness penalty: 2 points per week since the most recent sale,
// capped at 20.
func ConfidenceScore(sales []model.Sale, now time.Time) float64 {
	if len(sales) == 0 {
		return 0
	}

	volume := float64(len(sales)) / 20 * 70
	if volume > 70 {
		volume = 70
	}

	dispersion := 30.0
	if spread, err := PriceSpread(sales); err == nil {
		dispersion = 30 * (1 - spread/0.5)
		if dispersion < 0 {
			dispersion = 0
		}
		if dispersion > 30 {
			dispersion = 30
		}
	} else if len(sales) < 2 {
		// A single comp says nothing about dispersion.
		dispersion = 0
	}

	newest := sales[0].SoldAt
	for _, s := range sales[1:] {
		if s.SoldAt.After(newest) {
			newest = s.SoldAt
		}
	}
	staleness := now.Sub(newest).Hours() / 24 / 7 * 2
	if staleness < 0 {
		staleness = 0
	}
	if staleness > 20 {
		staleness = 20
	}

	score := volume + dispersion - staleness
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
