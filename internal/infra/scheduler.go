package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"signalboard/internal/usecase"
)

// Scheduler drives the automatic full-refresh cycle. It owns the only
// long-lived background task in the process and must be stopped on shutdown
// so a late tick never fires against a torn-down board.
type Scheduler struct {
	cron     *cron.Cron
	board    *usecase.BoardService
	interval time.Duration
}

// NewScheduler creates a new Scheduler refreshing the board at the given
// interval (minimum one second, the cron scheduler's resolution)
func NewScheduler(board *usecase.BoardService, interval time.Duration) *Scheduler {
	if interval < time.Second {
		interval = time.Second
	}
	return &Scheduler{
		cron:     cron.New(),
		board:    board,
		interval: interval,
	}
}

// Start begins the periodic refresh
func (s *Scheduler) Start() {
	s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		defer cancel()

		if _, err := s.board.FullRefresh(ctx); err != nil {
			// Terminal for this cycle only; the next tick retries
			log.Printf("ERROR: Scheduled refresh failed: %v", err)
		}
	}))

	s.cron.Start()
	log.Printf("[OK] Auto-refresh scheduled every %s", s.interval)
}

// Stop cancels the periodic refresh and waits for an in-flight run to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[OK] Auto-refresh stopped")
}
