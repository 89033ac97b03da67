package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Market selects which price source quotes are fetched from
type Market string

// Market context constants
const (
	MarketSpot    Market = "spot"
	MarketFutures Market = "futures"
)

// ParseMarket validates a market context label
func ParseMarket(s string) (Market, bool) {
	switch Market(strings.ToLower(strings.TrimSpace(s))) {
	case MarketSpot:
		return MarketSpot, true
	case MarketFutures:
		return MarketFutures, true
	}
	return "", false
}

// Filter holds the user-driven view filters. The zero value matches everything.
type Filter struct {
	// Query matches case-insensitively as a substring of the pair
	Query string
	// Side requires exact (case-insensitive) equality with the signal side
	Side string
	// Status requires exact equality with the signal status (absent defaults to Open)
	Status string
}

// SignalCard is one rendered signal with its derived metrics.
// Pointer fields are nil when the underlying value is absent or unparseable.
type SignalCard struct {
	ID         uuid.UUID `json:"id"`
	Pair       string    `json:"pair"`
	Side       string    `json:"side"`
	Status     string    `json:"status"`
	Timestamp  string    `json:"timestamp"`
	Entry      *float64  `json:"entry"`
	TakeProfit *float64  `json:"take_profit"`
	StopLoss   *float64  `json:"stop_loss"`
	AIScore    *float64  `json:"ai_score"`
	Price      *float64  `json:"price"`
	ProfitPct  float64   `json:"profit_pct"`
	Progress   float64   `json:"progress"`
	RewardRisk *float64  `json:"reward_risk"`
	Quality    string    `json:"quality"`
}

// KPIs are board-level aggregates over the visible subset
type KPIs struct {
	OpenCount   int     `json:"open_count"`
	AvgAIScore  float64 `json:"avg_ai_score"`
	LastUpdated string  `json:"last_updated"`
}

// BoardError is the user-visible error panel shown when the feed is unavailable
type BoardError struct {
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

// ViewState is the rendered board: either cards plus KPIs, or an error panel.
// It is recomputed on every render and never persisted.
type ViewState struct {
	Market Market       `json:"market"`
	Cards  []SignalCard `json:"cards"`
	KPIs   KPIs         `json:"kpis"`
	Error  *BoardError  `json:"error,omitempty"`
}

// SentimentReading is one Fear & Greed index observation
type SentimentReading struct {
	Value          int     `json:"value"`
	Classification string  `json:"classification"`
	Timestamp      string  `json:"timestamp"`
	Rotation       float64 `json:"rotation"`
}
