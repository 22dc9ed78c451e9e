package calculator

import (
	"errors"
	"math"
	"sort"

	"CardDesk/internal/model"
)

// AverageSalePrice computes the representative market value from comp
// sales. With ten or more comps the top and bottom 10% are trimmed first
// so a single shill bid or fire sale cannot skew the average.
func AverageSalePrice(sales []model.Sale) (float64, error) {
	if len(sales) == 0 {
		return 0, errors.New("no sales provided")
	}
	prices := extractPrices(sales)
	sort.Float64s(prices)

	start, end := 0, len(prices)
	if len(prices) >= 10 {
		trim := len(prices) / 10
		start = trim
		end = len(prices) - trim
	}

	sum := 0.0
	for i := start; i < end; i++ {
		sum += prices[i]
	}
	return sum / float64(end-start), nil
}

// PriceSpread returns the relative spread of sale prices around the mean,
// 0 meaning all comps sold at the same price. Used as a dispersion input
// to the confidence score.
func PriceSpread(sales []model.Sale) (float64, error) {
	if len(sales) < 2 {
		return 0, errors.New("need at least two sales for spread")
	}
	prices := extractPrices(sales)

	mean := 0.0
	for _, p := range prices {
		mean += p
	}
	mean /= float64(len(prices))
	if mean == 0 {
		return 0, errors.New("zero mean price")
	}

	variance := 0.0
	for _, p := range prices {
		d := p - mean
		variance += d * d
	}
	variance /= float64(len(prices))

	return math.Sqrt(variance) / mean, nil
}

func extractPrices(sales []model.Sale) []float64 {
	prices := make([]float64, len(sales))
	for i, s := range sales {
		prices[i] = s.Price
	}
	return prices
}
