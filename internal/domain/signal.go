package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Signal represents one trade recommendation row from the feed.
// Numeric fields hold NaN when the source column was not parseable;
// the metric engine treats NaN and zero alike as "no data".
type Signal struct {
	ID         uuid.UUID
	Pair       string
	Side       string
	Entry      float64
	TakeProfit float64
	StopLoss   float64
	AIScore    float64
	Timestamp  string
	Status     string
}

// Signal side constants
const (
	SideLong  = "LONG"
	SideShort = "SHORT"
)

// StatusOpen is the default status assigned when the feed omits one
const StatusOpen = "Open"

// StatusOrDefault returns the signal status, defaulting to Open when absent
func (s *Signal) StatusOrDefault() string {
	if s.Status == "" {
		return StatusOpen
	}
	return s.Status
}

// Symbol returns the normalized exchange symbol for the signal pair
func (s *Signal) Symbol() string {
	return NormalizeSymbol(s.Pair)
}

// NormalizeSymbol converts a feed pair label into an exchange ticker symbol,
// e.g. "BTC/USDT" -> "BTCUSDT".
func NormalizeSymbol(pair string) string {
	sym := strings.ReplaceAll(pair, "/", "")
	sym = strings.ReplaceAll(sym, "-", "")
	return strings.ToUpper(strings.TrimSpace(sym))
}
