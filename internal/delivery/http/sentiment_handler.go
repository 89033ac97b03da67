package http

import (
	"log"

	"github.com/labstack/echo/v4"

	"signalboard/internal/service"
)

// SentimentHandler serves the Fear & Greed gauge endpoints
type SentimentHandler struct {
	sentiment *service.SentimentService
}

// NewSentimentHandler creates a new SentimentHandler
func NewSentimentHandler(sentiment *service.SentimentService) *SentimentHandler {
	return &SentimentHandler{sentiment: sentiment}
}

// GetSentiment handles GET /api/sentiment
func (h *SentimentHandler) GetSentiment(c echo.Context) error {
	reading, ok := h.sentiment.Last()
	if !ok {
		return NotFoundResponse(c, "no sentiment reading available yet")
	}
	return SuccessResponse(c, reading)
}

// RefreshSentiment handles POST /api/sentiment/refresh. A failed fetch keeps
// the previous reading on display and is logged, not surfaced as an error.
func (h *SentimentHandler) RefreshSentiment(c echo.Context) error {
	if err := h.sentiment.Refresh(c.Request().Context()); err != nil {
		log.Printf("WARNING: Sentiment refresh failed: %v", err)
	}

	reading, ok := h.sentiment.Last()
	if !ok {
		return BadGatewayResponse(c, "sentiment index unavailable", nil)
	}
	return SuccessResponse(c, reading)
}
