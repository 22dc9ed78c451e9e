package pricefeed

import (
	"fmt"
	"log"
	"time"

	"CardDesk/internal/calculator"
	"CardDesk/internal/model"
)

// compWindowMonths is how far back comp sales are pulled.
const compWindowMonths = 3

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Sales []model.Sale
	Price float64 // used to generate sales when Sales is nil
	Count int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRecentSales(_ string, months int) ([]model.Sale, error) {
	if m.Sales != nil {
		return m.Sales, nil
	}
	return generateMockSales(m.Price, m.Count, months), nil
}

func generateMockSales(basePrice float64, count, months int) []model.Sale {
	sales := make([]model.Sale, count)
	spanDays := months * 30
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.005)
		daysAgo := spanDays
		if count > 1 {
			daysAgo = spanDays * (count - 1 - i) / (count - 1)
		}
		sales[i] = model.Sale{
			Price:  p,
			SoldAt: time.Now().AddDate(0, 0, -daysAgo),
		}
	}
	return sales
}

// Collector fetches comp sales and derives the market snapshot the
// evaluator consumes.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect builds a MarketSnapshot for the cert. Derivation failures
// degrade to conservative values (zero average, zero confidence, cold
// liquidity) rather than erroring: the evaluator's gates turn missing
// data into a deny or review, which is the safe direction.
func (c *Collector) Collect(certNumber string) (*model.MarketSnapshot, error) {
	sales, err := c.Fetcher.FetchRecentSales(certNumber, compWindowMonths)
	if err != nil {
		return nil, fmt.Errorf("fetch recent sales: %w", err)
	}

	now := time.Now()
	snap := &model.MarketSnapshot{
		SalesCount: len(sales),
		FetchedAt:  now,
	}

	if avg, err := calculator.AverageSalePrice(sales); err != nil {
		log.Printf("[WARN] average price for cert %s: %v, using 0", certNumber, err)
	} else if avg < 0 {
		log.Printf("[WARN] negative average price %.2f for cert %s, using 0", avg, certNumber)
	} else {
		snap.AveragePrice = avg
	}

	snap.Confidence = calculator.ConfidenceScore(sales, now)

	salesPerMonth := float64(len(sales)) / compWindowMonths
	snap.Liquidity = calculator.LiquidityLabel(salesPerMonth)

	return snap, nil
}
