package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"signalboard/internal/domain"
)

func newTestPriceService(spotURL, futuresURL string) *MarketPriceService {
	// generous bucket so tests never sit in limiter.Wait
	return NewMarketPriceService(spotURL, futuresURL, 1000, 1000)
}

func TestFetchPriceSpot(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"42000.50"}`))
	}))
	defer srv.Close()

	svc := newTestPriceService(srv.URL, "http://unused.invalid")
	price, ok := svc.FetchPrice(context.Background(), "BTCUSDT", domain.MarketSpot)
	if !ok {
		t.Fatal("FetchPrice returned absent for a valid response")
	}
	if price != 42000.50 {
		t.Errorf("price = %v, want 42000.50", price)
	}
	if gotPath != "/api/v3/ticker/price" {
		t.Errorf("path = %q, want /api/v3/ticker/price", gotPath)
	}
	if gotQuery != "symbol=BTCUSDT" {
		t.Errorf("query = %q, want symbol=BTCUSDT", gotQuery)
	}
}

func TestFetchPriceFutures(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		// futures quotes may come back as bare numbers
		w.Write([]byte(`{"symbol":"BTCUSDT","price":42100.25}`))
	}))
	defer srv.Close()

	svc := newTestPriceService("http://unused.invalid", srv.URL)
	price, ok := svc.FetchPrice(context.Background(), "BTCUSDT", domain.MarketFutures)
	if !ok {
		t.Fatal("FetchPrice returned absent for a valid response")
	}
	if price != 42100.25 {
		t.Errorf("price = %v, want 42100.25", price)
	}
	if gotPath != "/fapi/v1/ticker/price" {
		t.Errorf("path = %q, want /fapi/v1/ticker/price", gotPath)
	}
}

func TestFetchPriceAbsent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"upstream error status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>rate limited</html>"))
		}},
		{"unparseable price", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"symbol":"BTCUSDT","price":"n/a"}`))
		}},
		{"zero price", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"symbol":"BTCUSDT","price":"0"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			svc := newTestPriceService(srv.URL, srv.URL)
			if _, ok := svc.FetchPrice(context.Background(), "BTCUSDT", domain.MarketSpot); ok {
				t.Error("FetchPrice should report absence, not a price")
			}
		})
	}
}

func TestFetchPriceUnknownMarket(t *testing.T) {
	svc := newTestPriceService("http://unused.invalid", "http://unused.invalid")
	if _, ok := svc.FetchPrice(context.Background(), "BTCUSDT", domain.Market("margin")); ok {
		t.Error("unknown market should yield absence")
	}
}
