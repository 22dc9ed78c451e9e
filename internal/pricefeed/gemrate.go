package pricefeed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"CardDesk/internal/model"
)

// GemRateFetcher implements Fetcher using the GemRate comps REST API.
type GemRateFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewGemRateFetcher creates a new fetcher with optional proxy support.
func NewGemRateFetcher(baseURL, apiKey, proxyURL string) *GemRateFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GemRateFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *GemRateFetcher) Name() string { return "gemrate" }

// gemSale is the expected JSON shape from the comps endpoint.
type gemSale struct {
	Price  float64 `json:"price"`
	SoldAt int64   `json:"sold_at"` // unix seconds
}

// FetchRecentSales returns comp sales for the cert, newest last.
func (f *GemRateFetcher) FetchRecentSales(certNumber string, months int) ([]model.Sale, error) {
	endpoint := fmt.Sprintf("%s/api/v1/comps?cert=%s&months=%d", f.BaseURL, url.QueryEscape(certNumber), months)
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch comps: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch comps: status %d, body: %s", resp.StatusCode, string(body))
	}

	var gemSales []gemSale
	if err := json.NewDecoder(resp.Body).Decode(&gemSales); err != nil {
		return nil, fmt.Errorf("decode comps: %w", err)
	}

	sales := make([]model.Sale, len(gemSales))
	for i, gs := range gemSales {
		sales[i] = model.Sale{
			Price:  gs.Price,
			SoldAt: time.Unix(gs.SoldAt, 0),
		}
	}
	// Ensure chronological order
	sort.Slice(sales, func(i, j int) bool { return sales[i].SoldAt.Before(sales[j].SoldAt) })
	return sales, nil
}
