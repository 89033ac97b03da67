package usecase

import (
	"strings"

	"signalboard/internal/domain"
)

// FilterSignals applies the three view filters to the raw signal set and
// returns the visible subset, preserving order. All predicates are ANDed and
// an empty filter returns every signal. The input is never mutated.
func FilterSignals(signals []domain.Signal, f domain.Filter) []domain.Signal {
	query := strings.ToUpper(strings.TrimSpace(f.Query))

	view := make([]domain.Signal, 0, len(signals))
	for _, sig := range signals {
		if query != "" && !strings.Contains(strings.ToUpper(sig.Pair), query) {
			continue
		}
		if f.Side != "" && !strings.EqualFold(sig.Side, f.Side) {
			continue
		}
		if f.Status != "" && sig.StatusOrDefault() != f.Status {
			continue
		}
		view = append(view, sig)
	}
	return view
}
