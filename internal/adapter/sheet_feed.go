package adapter

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"signalboard/internal/domain"
)

// feedColumns is the fixed positional schema of the feed:
// Pair, Direction, Entry, TakeProfit, StopLoss, AI_Score, Timestamp, Status
const feedColumns = 8

// SheetFeed fetches trading signals from a published CSV feed
type SheetFeed struct {
	httpClient *http.Client
	feedURL    string
}

// NewSheetFeed creates a new SheetFeed for the given published CSV URL
func NewSheetFeed(feedURL string) *SheetFeed {
	return &SheetFeed{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		feedURL: feedURL,
	}
}

// FetchSignals retrieves the feed and parses it into signal records.
// Only a total fetch failure is surfaced as an error; malformed rows degrade
// to NaN fields instead of being rejected.
func (f *SheetFeed) FetchSignals(ctx context.Context) ([]domain.Signal, error) {
	if f.feedURL == "" {
		return nil, fmt.Errorf("%w: feed URL is not configured", domain.ErrFeedUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request failed: %v", domain.ErrFeedUnavailable, err)
	}
	// Always fetch fresh; published sheets sit behind aggressive caches
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned status %d", domain.ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body failed: %v", domain.ErrFeedUnavailable, err)
	}

	signals := ParseSignals(string(body))
	log.Printf("[OK] Feed fetched: %d signal(s)", len(signals))
	return signals, nil
}

// ParseSignals converts raw delimited feed text into signal records, in file
// order. Blank lines and lines starting with '#' are skipped and the first
// remaining line is discarded as the header, without column-name validation.
// Fields are split on literal commas; no quoting is supported, so a value
// containing a comma misaligns the rest of its row. That matches the feed
// contract and is accepted.
func ParseSignals(raw string) []domain.Signal {
	var rows []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
	}

	if len(rows) == 0 {
		return nil
	}
	// Header row carries no data
	rows = rows[1:]

	signals := make([]domain.Signal, 0, len(rows))
	for _, line := range rows {
		fields := strings.Split(line, ",")
		if len(fields) > feedColumns {
			fields = fields[:feedColumns]
		}
		signals = append(signals, domain.Signal{
			ID:         uuid.New(),
			Pair:       field(fields, 0),
			Side:       strings.ToUpper(field(fields, 1)),
			Entry:      parseLevel(field(fields, 2)),
			TakeProfit: parseLevel(field(fields, 3)),
			StopLoss:   parseLevel(field(fields, 4)),
			AIScore:    parseLevel(field(fields, 5)),
			Timestamp:  field(fields, 6),
			Status:     parseStatus(field(fields, 7)),
		})
	}
	return signals
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// parseLevel converts a numeric feed column, yielding NaN on failure so the
// row survives with placeholder metrics downstream
func parseLevel(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseStatus(s string) string {
	if s == "" {
		return domain.StatusOpen
	}
	return s
}
