package pricefeed

import "CardDesk/internal/model"

// Fetcher defines the interface for fetching comp sales for a cert.
type Fetcher interface {
	FetchRecentSales(certNumber string, months int) ([]model.Sale, error)
	Name() string
}
