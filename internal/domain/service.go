package domain

import (
	"context"
	"errors"
)

// ErrFeedUnavailable is returned when the signal feed request fails entirely.
// Individual malformed rows never produce an error.
var ErrFeedUnavailable = errors.New("signal feed unavailable")

// SignalFeed defines the interface for fetching the raw signal set
type SignalFeed interface {
	// FetchSignals retrieves and parses the full signal set from the feed
	FetchSignals(ctx context.Context) ([]Signal, error)
}

// PriceProvider defines the interface for fetching a single live quote.
// Absence (ok == false) means "no update available", never a fatal condition.
type PriceProvider interface {
	FetchPrice(ctx context.Context, symbol string, market Market) (float64, bool)
}
