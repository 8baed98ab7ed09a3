package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/songzhibin97/chainpulse/internal/assistant"
	"github.com/songzhibin97/chainpulse/internal/data/collector"
	"github.com/songzhibin97/chainpulse/internal/market"
	"github.com/songzhibin97/chainpulse/internal/projection"
	"github.com/songzhibin97/chainpulse/internal/risk"
	"github.com/songzhibin97/chainpulse/internal/wallet"
	"github.com/songzhibin97/chainpulse/internal/whale"
)

// ErrorResponse is the body of every 4xx/5xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Forwarder relays a raw messages request upstream with server-side credentials.
type Forwarder interface {
	Forward(ctx context.Context, body []byte) (int, []byte, error)
}

// Handler 汇总各面板服务
type Handler struct {
	Prices      *collector.MultiSourceUpdater
	Wallet      *wallet.Service
	Whales      *whale.Feed
	Drawdowns   *risk.DrawdownAnalyzer
	Projections *projection.Service
	Assistant   *assistant.Assistant
	Proxy       Forwarder
}

func (h *Handler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

func (h *Handler) GetPrices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Prices.Table().Snapshot())
}

// RefreshPrices runs one poll outside the schedule.
func (h *Handler) RefreshPrices(c echo.Context) error {
	if err := h.Prices.Refresh(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, h.Prices.Table().Snapshot())
}

func (h *Handler) GetExampleWallets(c echo.Context) error {
	return c.JSON(http.StatusOK, wallet.ExampleWallets)
}

type lookupRequest struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

func (h *Handler) LookupWallet(c echo.Context) error {
	var req lookupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	res, err := h.Wallet.Lookup(c.Request().Context(), req.Address, req.Chain)
	if err != nil {
		if errors.Is(err, wallet.ErrAddressTooShort) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

// GetWhales returns the feed for ?chain= and makes it the filter for new simulated trades.
func (h *Handler) GetWhales(c echo.Context) error {
	chain := c.QueryParam("chain")
	if err := h.Whales.SetFilter(chain); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	view, err := h.Whales.View(chain)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) RefreshWhales(c echo.Context) error {
	h.Whales.Refresh(c.Request().Context())
	return h.whaleView(c)
}

func (h *Handler) PauseWhales(c echo.Context) error {
	h.Whales.Pause()
	return h.whaleView(c)
}

func (h *Handler) ResumeWhales(c echo.Context) error {
	h.Whales.Resume()
	return h.whaleView(c)
}

// whaleView renders the feed for the chain last selected through GetWhales.
func (h *Handler) whaleView(c echo.Context) error {
	view, err := h.Whales.View(h.Whales.Filter())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) GetMarketOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, market.BuildOverview())
}

func (h *Handler) GetMarketMini(c echo.Context) error {
	return c.JSON(http.StatusOK, market.MiniCards(h.Prices.Table().Snapshot().Prices))
}

func (h *Handler) GetDrawdowns(c echo.Context) error {
	cmp, err := h.Drawdowns.Compare(c.Param("asset"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, cmp)
}

func (h *Handler) GetProjections(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Projections.Log(c.Request().Context()))
}

func (h *Handler) SubmitProjection(c echo.Context) error {
	var sub projection.Submission
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	res, err := h.Projections.Submit(c.Request().Context(), sub)
	switch {
	case errors.Is(err, projection.ErrMissingReason):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: projection.MissingReasonMessage})
	case errors.Is(err, projection.ErrNoProjection), errors.Is(err, projection.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) ClearProjections(c echo.Context) error {
	if err := h.Projections.Clear(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "projection log cleared"})
}

// GetCoverage accepts ecosystem, tier, q and a comma separated selected list.
func (h *Handler) GetCoverage(c echo.Context) error {
	q := market.CoverageQuery{
		Ecosystem: c.QueryParam("ecosystem"),
		Tier:      c.QueryParam("tier"),
		Search:    c.QueryParam("q"),
	}
	for _, id := range strings.Split(c.QueryParam("selected"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			q.Selected = append(q.Selected, id)
		}
	}
	return c.JSON(http.StatusOK, market.Coverage(q))
}

func (h *Handler) GetAskExamples(c echo.Context) error {
	return c.JSON(http.StatusOK, assistant.ExampleQuestions)
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) Ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	answer, err := h.Assistant.Ask(c.Request().Context(), req.Question)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, answer)
}

// ProxyClaude forwards the raw body to the messages API and relays the upstream answer.
func (h *Handler) ProxyClaude(c echo.Context) error {
	if h.Proxy == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "ai proxy not configured"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	status, resp, err := h.Proxy.Forward(c.Request().Context(), body)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.Blob(status, echo.MIMEApplicationJSON, resp)
}
