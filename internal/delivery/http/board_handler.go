package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"signalboard/internal/domain"
	"signalboard/internal/usecase"
)

// BoardHandler serves the signal board endpoints
type BoardHandler struct {
	board *usecase.BoardService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(board *usecase.BoardService) *BoardHandler {
	return &BoardHandler{board: board}
}

// GetBoard handles GET /api/board - a view-only refresh. Filter changes only
// recompute the visible subset; cached prices from this cycle are reused.
func (h *BoardHandler) GetBoard(c echo.Context) error {
	f := domain.Filter{
		Query:  c.QueryParam("q"),
		Side:   c.QueryParam("side"),
		Status: c.QueryParam("status"),
	}
	view := h.board.View(c.Request().Context(), f)
	return SuccessResponse(c, view)
}

// Refresh handles POST /api/refresh - a manual full refresh
func (h *BoardHandler) Refresh(c echo.Context) error {
	view, err := h.board.FullRefresh(c.Request().Context())
	if err != nil {
		return ErrorResponse(c, http.StatusBadGateway, "signal feed unavailable", view.Error)
	}
	return SuccessResponse(c, view)
}

// marketRequest is the body of PUT /api/market
type marketRequest struct {
	Market string `json:"market"`
}

// SetMarket handles PUT /api/market - switching between spot and futures
// pricing. Prices are market-specific, so this triggers a full refresh.
func (h *BoardHandler) SetMarket(c echo.Context) error {
	var req marketRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "invalid request body")
	}

	market, ok := domain.ParseMarket(req.Market)
	if !ok {
		return BadRequestResponse(c, "market must be \"spot\" or \"futures\"")
	}

	view, err := h.board.SetMarket(c.Request().Context(), market)
	if err != nil {
		return ErrorResponse(c, http.StatusBadGateway, "signal feed unavailable", view.Error)
	}
	return SuccessResponse(c, view)
}
