package usecase

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"signalboard/internal/domain"
	"signalboard/internal/metrics"
)

// BoardService is the refresh orchestrator. It exclusively owns the raw
// signal set, the per-cycle price cache, and the current market context; the
// filter and metric functions only ever see read-only snapshots. One mutex
// spans a whole refresh cycle so overlapping triggers (manual refresh racing
// the timer) serialize instead of interleaving cache clears.
type BoardService struct {
	mu     sync.Mutex
	feed   domain.SignalFeed
	prices domain.PriceProvider

	market      domain.Market
	rawSignals  []domain.Signal
	priceCache  map[string]float64
	feedErr     error
	lastUpdated time.Time
}

// NewBoardService creates a new BoardService
func NewBoardService(feed domain.SignalFeed, prices domain.PriceProvider, market domain.Market) *BoardService {
	return &BoardService{
		feed:       feed,
		prices:     prices,
		market:     market,
		priceCache: make(map[string]float64),
	}
}

// FullRefresh clears the price cache, re-fetches the signal set, and renders
// the unfiltered board. On feed failure the previous raw set is kept but the
// rendered view is an error panel; the failure only affects this cycle.
func (s *BoardService) FullRefresh(ctx context.Context) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullRefreshLocked(ctx), s.feedErr
}

// View performs a view-only refresh: it recomputes the visible subset for the
// given filter and fetches prices only for symbols not already cached this
// cycle. The raw signal set is not touched.
func (s *BoardService) View(ctx context.Context, f domain.Filter) domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked(ctx, f)
}

// SetMarket switches the price source context and forces a full refresh,
// since cached quotes from the previous market are no longer valid
func (s *BoardService) SetMarket(ctx context.Context, market domain.Market) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.market = market
	log.Printf("[OK] Market context switched to %s", market)
	return s.fullRefreshLocked(ctx), s.feedErr
}

// Market returns the current market context
func (s *BoardService) Market() domain.Market {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.market
}

func (s *BoardService) fullRefreshLocked(ctx context.Context) domain.ViewState {
	// New signal data invalidates every cached quote
	s.priceCache = make(map[string]float64)

	signals, err := s.feed.FetchSignals(ctx)
	if err != nil {
		log.Printf("ERROR: Full refresh failed: %v", err)
		s.feedErr = err
		return s.renderLocked(ctx, domain.Filter{})
	}

	s.rawSignals = signals
	s.feedErr = nil
	s.lastUpdated = time.Now()
	return s.renderLocked(ctx, domain.Filter{})
}

func (s *BoardService) renderLocked(ctx context.Context, f domain.Filter) domain.ViewState {
	if s.feedErr != nil {
		return domain.ViewState{
			Market: s.market,
			Error: &domain.BoardError{
				Message: "Couldn't load live data",
				Hint:    "Make sure the sheet is published to the web as CSV and SHEET_CSV_URL points at it",
			},
		}
	}

	view := FilterSignals(s.rawSignals, f)
	s.fetchMissingPricesLocked(ctx, view)

	cards := make([]domain.SignalCard, 0, len(view))
	for i := range view {
		cards = append(cards, s.buildCardLocked(&view[i]))
	}

	return domain.ViewState{
		Market: s.market,
		Cards:  cards,
		KPIs:   aggregateKPIs(view, s.lastUpdated),
	}
}

// fetchMissingPricesLocked populates the cycle cache with one fetch attempt
// per unique uncached symbol in the visible subset; duplicate pairs share the
// attempt even when the quote comes back absent. Fetches are deliberately
// sequential; the provider's token bucket spaces them out, so refresh latency
// grows linearly with the number of uncached symbols.
func (s *BoardService) fetchMissingPricesLocked(ctx context.Context, view []domain.Signal) {
	attempted := make(map[string]bool)
	for i := range view {
		sym := view[i].Symbol()
		if sym == "" || attempted[sym] {
			continue
		}
		attempted[sym] = true
		if _, ok := s.priceCache[sym]; ok {
			continue
		}
		if price, ok := s.prices.FetchPrice(ctx, sym, s.market); ok {
			s.priceCache[sym] = price
		}
	}
}

func (s *BoardService) buildCardLocked(sig *domain.Signal) domain.SignalCard {
	card := domain.SignalCard{
		ID:         sig.ID,
		Pair:       sig.Pair,
		Side:       sig.Side,
		Status:     sig.StatusOrDefault(),
		Timestamp:  sig.Timestamp,
		Entry:      optional(sig.Entry),
		TakeProfit: optional(sig.TakeProfit),
		StopLoss:   optional(sig.StopLoss),
		AIScore:    optional(sig.AIScore),
		Quality:    metrics.QualityTier(sig.AIScore),
	}

	price, havePrice := s.priceCache[sig.Symbol()]
	if havePrice {
		card.Price = &price
	}

	card.ProfitPct = metrics.ProfitPercent(sig.Entry, price, sig.Side)
	card.Progress = metrics.Progress(sig.Entry, price, sig.TakeProfit, sig.StopLoss, sig.Side)
	if ratio, ok := metrics.RewardRisk(sig.Entry, sig.TakeProfit, sig.StopLoss, sig.Side); ok {
		card.RewardRisk = &ratio
	}
	return card
}

// aggregateKPIs derives the board aggregates from the visible subset only
func aggregateKPIs(view []domain.Signal, lastUpdated time.Time) domain.KPIs {
	kpis := domain.KPIs{}
	if !lastUpdated.IsZero() {
		kpis.LastUpdated = lastUpdated.Format(time.RFC3339)
	}

	var scoreSum float64
	for i := range view {
		if view[i].StatusOrDefault() == domain.StatusOpen {
			kpis.OpenCount++
		}
		if !math.IsNaN(view[i].AIScore) {
			scoreSum += view[i].AIScore
		}
	}
	if len(view) > 0 {
		kpis.AvgAIScore = scoreSum / float64(len(view))
	}
	return kpis
}

// optional converts a parsed level into a renderable value, dropping the NaN
// parse-failure marker
func optional(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
