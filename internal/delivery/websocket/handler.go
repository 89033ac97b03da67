package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"signalboard/internal/domain"
	"signalboard/internal/usecase"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the board is public, same as the REST surface
	},
}

// Handler streams the rendered board over a websocket. The client's filter is
// taken from the query string at connect time; the board is sent immediately
// and then re-sent on the refresh interval.
type Handler struct {
	board    *usecase.BoardService
	interval time.Duration
}

// NewHandler creates a new websocket Handler
func NewHandler(board *usecase.BoardService, interval time.Duration) *Handler {
	if interval < time.Second {
		interval = time.Second
	}
	return &Handler{board: board, interval: interval}
}

// Handle upgrades the connection and pushes view states until the client
// disconnects
func (h *Handler) Handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f := domain.Filter{
		Query:  c.QueryParam("q"),
		Side:   c.QueryParam("side"),
		Status: c.QueryParam("status"),
	}

	ctx := c.Request().Context()
	if err := conn.WriteJSON(h.board.View(ctx, f)); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := conn.WriteJSON(h.board.View(ctx, f)); err != nil {
				log.Printf("WARNING: websocket write failed: %v", err)
				return nil
			}
		}
	}
}
