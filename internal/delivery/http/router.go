package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	ws "signalboard/internal/delivery/websocket"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	BoardHandler     *BoardHandler
	SentimentHandler *SentimentHandler
	WSHandler        *ws.Handler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for high-frequency polling endpoints to reduce noise
			path := c.Request().URL.Path
			return path == "/health" || path == "/api/board"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	e.GET("/", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"service": "signalboard",
			"endpoints": map[string]string{
				"board":             "GET /api/board?q=&side=&status=",
				"refresh":           "POST /api/refresh",
				"market":            "PUT /api/market",
				"sentiment":         "GET /api/sentiment",
				"sentiment_refresh": "POST /api/sentiment/refresh",
				"live":              "GET /ws",
			},
		})
	})

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "signalboard",
		})
	})

	// API group
	api := e.Group("/api")
	{
		api.GET("/board", config.BoardHandler.GetBoard)
		api.POST("/refresh", config.BoardHandler.Refresh)
		api.PUT("/market", config.BoardHandler.SetMarket)
		api.GET("/sentiment", config.SentimentHandler.GetSentiment)
		api.POST("/sentiment/refresh", config.SentimentHandler.RefreshSentiment)
	}

	// Live board stream
	e.GET("/ws", config.WSHandler.Handle)
}
