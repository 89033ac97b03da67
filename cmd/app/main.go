package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"signalboard/configs"
	"signalboard/internal/adapter"
	delivery "signalboard/internal/delivery/http"
	ws "signalboard/internal/delivery/websocket"
	"signalboard/internal/domain"
	"signalboard/internal/infra"
	"signalboard/internal/service"
	"signalboard/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	market, ok := domain.ParseMarket(cfg.Prices.DefaultMarket)
	if !ok {
		log.Fatalf("Invalid DEFAULT_MARKET %q (want spot or futures)", cfg.Prices.DefaultMarket)
	}

	// Initialize services
	feed := adapter.NewSheetFeed(cfg.Feed.URL)
	priceService := service.NewMarketPriceService(
		cfg.Prices.SpotBaseURL,
		cfg.Prices.FuturesBaseURL,
		cfg.Prices.RatePerSec,
		cfg.Prices.Burst,
	)
	sentimentService := service.NewSentimentService(cfg.Sentiment.BaseURL)
	board := usecase.NewBoardService(feed, priceService, market)

	// Initial data load; failures render as the error panel until the next cycle
	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := board.FullRefresh(startCtx); err != nil {
		log.Printf("WARNING: Initial feed load failed: %v", err)
	}
	if err := sentimentService.Refresh(startCtx); err != nil {
		log.Printf("WARNING: Initial sentiment load failed: %v", err)
	}
	startCancel()

	// Start the auto-refresh scheduler
	scheduler := infra.NewScheduler(board, cfg.Feed.RefreshInterval)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		BoardHandler:     delivery.NewBoardHandler(board),
		SentimentHandler: delivery.NewSentimentHandler(sentimentService),
		WSHandler:        ws.NewHandler(board, cfg.Feed.RefreshInterval),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Signal board starting on %s", addr)
	log.Printf("Environment: %s | Market: %s | Refresh: %s", cfg.Server.Env, market, cfg.Feed.RefreshInterval)

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}
