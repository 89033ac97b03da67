package adapter

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"signalboard/internal/domain"
)

const sampleFeed = `Pair,Direction,Entry,TakeProfit,StopLoss,AI_Score,Timestamp,Status
BTC/USDT,LONG,100,120,90,85,2024-01-01T00:00:00Z,Open
ETH/USDT,short,2000,1800,2100,55,2024-01-01T01:00:00Z,Closed
`

func TestParseSignals(t *testing.T) {
	signals := ParseSignals(sampleFeed)
	if len(signals) != 2 {
		t.Fatalf("parsed %d signals, want 2", len(signals))
	}

	btc := signals[0]
	if btc.Pair != "BTC/USDT" || btc.Side != domain.SideLong {
		t.Errorf("unexpected first signal: %+v", btc)
	}
	if btc.Entry != 100 || btc.TakeProfit != 120 || btc.StopLoss != 90 || btc.AIScore != 85 {
		t.Errorf("unexpected levels: %+v", btc)
	}
	if btc.Timestamp != "2024-01-01T00:00:00Z" || btc.Status != "Open" {
		t.Errorf("unexpected metadata: %+v", btc)
	}
	if btc.Symbol() != "BTCUSDT" {
		t.Errorf("Symbol() = %q, want BTCUSDT", btc.Symbol())
	}

	// Direction is uppercased regardless of feed casing
	if signals[1].Side != domain.SideShort {
		t.Errorf("second signal side = %q, want SHORT", signals[1].Side)
	}
	if signals[1].Status != "Closed" {
		t.Errorf("second signal status = %q, want Closed", signals[1].Status)
	}
}

func TestParseSignalsSkipsCommentsAndBlanks(t *testing.T) {
	raw := "# published 2024-01-01\r\n" +
		"\r\n" +
		"Pair,Direction,Entry,TakeProfit,StopLoss,AI_Score,Timestamp,Status\r\n" +
		"# mid-file comment\r\n" +
		"BTC/USDT,LONG,100,120,90,85,t1,Open\r\n" +
		"   \r\n" +
		"ETH/USDT,SHORT,2000,1800,2100,70,t2,Open\r\n"

	signals := ParseSignals(raw)
	if len(signals) != 2 {
		t.Fatalf("parsed %d signals, want 2", len(signals))
	}
	if signals[0].Pair != "BTC/USDT" || signals[1].Pair != "ETH/USDT" {
		t.Errorf("input order not preserved: %q, %q", signals[0].Pair, signals[1].Pair)
	}
}

func TestParseSignalsHeaderDiscardedUnconditionally(t *testing.T) {
	// The first non-comment line is dropped even when it looks like data
	raw := "BTC/USDT,LONG,100,120,90,85,t1,Open\nETH/USDT,SHORT,2000,1800,2100,70,t2,Open\n"
	signals := ParseSignals(raw)
	if len(signals) != 1 {
		t.Fatalf("parsed %d signals, want 1", len(signals))
	}
	if signals[0].Pair != "ETH/USDT" {
		t.Errorf("surviving signal = %q, want ETH/USDT", signals[0].Pair)
	}
}

func TestParseSignalsMalformedRows(t *testing.T) {
	raw := "header\n" +
		"BTC/USDT,LONG,not-a-number,120,90,eighty,t1,Open\n" +
		"SOL/USDT,LONG\n"

	signals := ParseSignals(raw)
	if len(signals) != 2 {
		t.Fatalf("parsed %d signals, want 2 (malformed rows are kept)", len(signals))
	}

	if !math.IsNaN(signals[0].Entry) || !math.IsNaN(signals[0].AIScore) {
		t.Errorf("non-numeric fields should parse to NaN: %+v", signals[0])
	}
	if signals[0].TakeProfit != 120 {
		t.Errorf("valid fields of a malformed row should survive: %+v", signals[0])
	}

	truncated := signals[1]
	if truncated.Pair != "SOL/USDT" || truncated.Side != domain.SideLong {
		t.Errorf("truncated row parsed wrong: %+v", truncated)
	}
	if !math.IsNaN(truncated.Entry) {
		t.Errorf("missing numeric fields should be NaN: %+v", truncated)
	}
	if truncated.Status != domain.StatusOpen {
		t.Errorf("missing status should default to Open, got %q", truncated.Status)
	}
}

func TestParseSignalsIgnoresExtraColumns(t *testing.T) {
	raw := "header\nBTC/USDT,LONG,100,120,90,85,t1,Open,stray,columns\n"
	signals := ParseSignals(raw)
	if len(signals) != 1 {
		t.Fatalf("parsed %d signals, want 1", len(signals))
	}
	if signals[0].Status != "Open" {
		t.Errorf("status = %q, want Open (columns beyond the schema are dropped)", signals[0].Status)
	}
}

func TestParseSignalsDuplicatesKept(t *testing.T) {
	raw := "header\n" +
		"BTC/USDT,LONG,100,120,90,85,t1,Open\n" +
		"BTC/USDT,SHORT,105,95,110,40,t2,Open\n"

	signals := ParseSignals(raw)
	if len(signals) != 2 {
		t.Fatalf("duplicate pairs must not be merged, got %d signals", len(signals))
	}
	if signals[0].ID == signals[1].ID {
		t.Error("duplicate pairs should keep distinct identities")
	}
}

func TestParseSignalsEmpty(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "# only comments\n"} {
		if got := ParseSignals(raw); len(got) != 0 {
			t.Errorf("ParseSignals(%q) = %d signals, want 0", raw, len(got))
		}
	}
}

func TestFetchSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cc := r.Header.Get("Cache-Control"); cc != "no-cache" {
			t.Errorf("Cache-Control = %q, want no-cache", cc)
		}
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	feed := NewSheetFeed(srv.URL)
	signals, err := feed.FetchSignals(context.Background())
	if err != nil {
		t.Fatalf("FetchSignals: %v", err)
	}
	if len(signals) != 2 {
		t.Fatalf("fetched %d signals, want 2", len(signals))
	}
}

func TestFetchSignalsFeedUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	feed := NewSheetFeed(srv.URL)
	if _, err := feed.FetchSignals(context.Background()); !errors.Is(err, domain.ErrFeedUnavailable) {
		t.Fatalf("err = %v, want ErrFeedUnavailable", err)
	}
}

func TestFetchSignalsNoURL(t *testing.T) {
	feed := NewSheetFeed("")
	if _, err := feed.FetchSignals(context.Background()); !errors.Is(err, domain.ErrFeedUnavailable) {
		t.Fatalf("err = %v, want ErrFeedUnavailable", err)
	}
}
