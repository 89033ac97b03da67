package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"signalboard/internal/domain"
)

// MarketPriceService fetches single-symbol ticker prices from Binance, from
// either the spot or the USD-M futures API depending on the market context.
// Outbound requests go through a token bucket so a burst of cache misses
// never exceeds the upstream rate limit.
type MarketPriceService struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	spotBaseURL    string
	futuresBaseURL string
}

// NewMarketPriceService creates a new MarketPriceService. Empty base URLs
// fall back to the public Binance endpoints.
func NewMarketPriceService(spotBaseURL, futuresBaseURL string, perSec float64, burst int) *MarketPriceService {
	if spotBaseURL == "" {
		spotBaseURL = "https://api.binance.com"
	}
	if futuresBaseURL == "" {
		futuresBaseURL = "https://fapi.binance.com"
	}
	if perSec <= 0 {
		perSec = 8
	}
	if burst < 1 {
		burst = 1
	}
	return &MarketPriceService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter:        rate.NewLimiter(rate.Limit(perSec), burst),
		spotBaseURL:    spotBaseURL,
		futuresBaseURL: futuresBaseURL,
	}
}

// tickerResponse matches both the spot and futures ticker/price payloads.
// Binance encodes the price as a JSON string, but a bare number is accepted too.
type tickerResponse struct {
	Symbol string      `json:"symbol"`
	Price  json.Number `json:"price"`
}

// FetchPrice retrieves the current price for one normalized symbol. A failed
// request, non-success status, or unparseable price yields ok == false; the
// caller treats that as "no update available" for this cycle.
func (s *MarketPriceService) FetchPrice(ctx context.Context, symbol string, market domain.Market) (float64, bool) {
	url, ok := s.tickerURL(symbol, market)
	if !ok {
		return 0, false
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("WARNING: price fetch failed for %s: %v", symbol, err)
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("WARNING: price fetch for %s returned status %d", symbol, resp.StatusCode)
		return 0, false
	}

	var ticker tickerResponse
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		log.Printf("WARNING: price decode failed for %s: %v", symbol, err)
		return 0, false
	}

	price, err := ticker.Price.Float64()
	if err != nil || math.IsNaN(price) || price <= 0 {
		return 0, false
	}
	return price, true
}

func (s *MarketPriceService) tickerURL(symbol string, market domain.Market) (string, bool) {
	switch market {
	case domain.MarketSpot:
		return fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", s.spotBaseURL, symbol), true
	case domain.MarketFutures:
		return fmt.Sprintf("%s/fapi/v1/ticker/price?symbol=%s", s.futuresBaseURL, symbol), true
	}
	return "", false
}
