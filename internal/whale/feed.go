package whale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/songzhibin97/chainpulse/internal/ai"
	"github.com/songzhibin97/chainpulse/internal/models"
	"github.com/songzhibin97/chainpulse/internal/wallet"
)

const (
	SourceLoading   = "loading"
	SourceAllium    = "allium"
	SourceSimulated = "simulated"

	maxAlliumTrades = 30
	maxFeedTrades   = 50
	simulatedCount  = 15
	newHighlight    = 1500 * time.Millisecond
	maxTokens       = 4000
)

var (
	ErrUnknownChain = errors.New("unknown chain filter")

	// ErrNoMCP means the model cannot reach the analytics tools, so any answer would be made up.
	ErrNoMCP = errors.New("ai client cannot attach mcp servers")
)

// mcpSupporter is implemented by chat clients that may not forward MCP servers.
type mcpSupporter interface {
	SupportsMCP() bool
}

const whalePrompt = `Query the Allium database for the largest token transfers in the last 6 hours across ethereum, solana, and bitcoin chains where USD value >= $1,000,000. Include ETH, WETH, SOL, WSOL, BTC, WBTC, USDC, USDT, DAI tokens. Also try to get entity names/labels for the from and to addresses using the common.identity.address_names table. Return ONLY a JSON array of objects with fields: chain, token_symbol, amount, usd_amount, from_address, to_address, from_name (entity name or null), to_name (entity name or null), transaction_hash, block_timestamp. Order by block_timestamp DESC, limit 40. Deduplicate by transaction_hash (keep highest usd_amount per hash). Return only valid JSON array, nothing else.`

// Feed 巨鲸动态缓存
type Feed struct {
	chat   ai.ChatClient
	model  string
	mcpURL string
	gen    *Generator
	logger *slog.Logger
	now    func() time.Time

	mu          sync.RWMutex
	trades      []models.WhaleTrade
	totalVolume float64
	tradeCount  int
	source      string
	filter      string
	paused      bool
	lastRefresh time.Time
}

func NewFeed(chat ai.ChatClient, model, mcpURL string, gen *Generator, logger *slog.Logger) *Feed {
	return &Feed{
		chat:   chat,
		model:  model,
		mcpURL: mcpURL,
		gen:    gen,
		logger: logger,
		now:    time.Now,
		source: SourceLoading,
		filter: FilterAll,
	}
}

// Refresh asks the model for recent large transfers and replaces the cached feed.
// Any failure switches the feed to simulated trades for the current filter.
func (f *Feed) Refresh(ctx context.Context) string {
	trades, volume, err := f.fetch(ctx)
	if err != nil {
		f.logger.Info("whale fetch failed, using simulated trades", "err", err)
	}

	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		count := len(trades)
		if count > maxAlliumTrades {
			trades = trades[:maxAlliumTrades]
		}
		f.replace(trades, count, volume, SourceAllium, now)
		return SourceAllium
	}

	simulated := make([]models.WhaleTrade, 0, simulatedCount)
	volume = 0
	for i := 0; i < simulatedCount; i++ {
		t := f.gen.Trade(f.filter, now)
		// seeded trades are not highlighted
		t.CreatedAt = time.Time{}
		simulated = append(simulated, t)
		volume += t.USD
	}
	f.replace(simulated, len(simulated), volume, SourceSimulated, now)
	return SourceSimulated
}

// replace swaps the cached trades. count and volume cover every fetched trade, which
// may exceed the cached ones.
func (f *Feed) replace(trades []models.WhaleTrade, count int, volume float64, source string, now time.Time) {
	f.trades = trades
	f.tradeCount = count
	f.totalVolume = volume
	f.source = source
	f.lastRefresh = now
}

// fetch returns every de-duplicated transfer and their total USD value.
func (f *Feed) fetch(ctx context.Context) ([]models.WhaleTrade, float64, error) {
	if f.chat == nil {
		return nil, 0, errors.New("no ai client configured")
	}
	if m, ok := f.chat.(mcpSupporter); f.mcpURL == "" || (ok && !m.SupportsMCP()) {
		return nil, 0, ErrNoMCP
	}

	req := &ai.MessageRequest{
		Model:      f.model,
		MaxTokens:  maxTokens,
		Messages:   []ai.Message{{Role: "user", Content: whalePrompt}},
		MCPServers: []ai.MCPServer{{Type: "url", URL: f.mcpURL, Name: "allium"}},
	}

	resp, err := f.chat.CreateMessage(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transfers: %w", err)
	}

	candidates := append(resp.ToolResultTexts(), strings.Join(resp.Texts(), "\n"))

	var rows []transferRow
	if !ai.DecodeFirstArray(candidates, &rows) || len(rows) == 0 {
		return nil, 0, ai.ErrEmptyResponse
	}

	trades := parseTransfers(rows, f.now())
	volume := 0.0
	for _, t := range trades {
		volume += t.USD
	}
	return trades, volume, nil
}

// transferRow is one element of the model's JSON answer.
type transferRow struct {
	Chain           looseString `json:"chain"`
	TokenSymbol     looseString `json:"token_symbol"`
	Amount          number      `json:"amount"`
	USDAmount       number      `json:"usd_amount"`
	FromAddress     looseString `json:"from_address"`
	ToAddress       looseString `json:"to_address"`
	FromName        looseString `json:"from_name"`
	ToName          looseString `json:"to_name"`
	TransactionHash looseString `json:"transaction_hash"`
	BlockTimestamp  looseString `json:"block_timestamp"`
}

// looseString accepts any JSON scalar: strings as-is, null as empty, other values as their literal.
type looseString string

func (t *looseString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = looseString(s)
		return nil
	}
	*t = looseString(b)
	return nil
}

// number accepts JSON numbers and numeric strings, keeping the raw text.
type number struct {
	text  string
	value float64
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	n.text = s
	n.value, _ = strconv.ParseFloat(s, 64)
	return nil
}

// parseTransfers de-duplicates rows by transaction hash keeping the highest USD amount
// in first-seen order.
func parseTransfers(rows []transferRow, now time.Time) []models.WhaleTrade {
	index := make(map[string]int, len(rows))
	out := make([]models.WhaleTrade, 0, len(rows))

	for i, r := range rows {
		key := string(r.TransactionHash)
		if key == "" {
			key = "row-" + strconv.Itoa(i)
		}

		trade := rowToTrade(r, now)
		if pos, ok := index[key]; ok {
			if trade.USD > out[pos].USD {
				out[pos] = trade
			}
			continue
		}
		index[key] = len(out)
		out = append(out, trade)
	}

	return out
}

func rowToTrade(r transferRow, now time.Time) models.WhaleTrade {
	chain := strings.ToLower(string(r.Chain))
	t := models.WhaleTrade{
		ID:         string(r.TransactionHash) + "-" + uuid.NewString()[:8],
		Chain:      chain,
		ChainColor: models.ChainColor(chain),
		Amount:     r.Amount.text,
		Symbol:     string(r.TokenSymbol),
		USD:        r.USDAmount.value,
		From:       string(r.FromAddress),
		To:         string(r.ToAddress),
		FromName:   string(r.FromName),
		ToName:     string(r.ToName),
		Hash:       string(r.TransactionHash),
		Timestamp:  now,
	}
	if meta, ok := chainMeta(chain); ok && chain != FilterAll {
		t.ChainName = meta.Name
		t.ChainIcon = meta.Icon
	}
	if ts, ok := wallet.ParseTimestamp(string(r.BlockTimestamp)); ok {
		t.Timestamp = ts
	}
	return t
}

// Inject prepends one simulated trade. It is a no-op unless the feed is simulated
// and not paused.
func (f *Feed) Inject() (models.WhaleTrade, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.paused || f.source != SourceSimulated {
		return models.WhaleTrade{}, false
	}

	t := f.gen.Trade(f.filter, f.now())
	f.trades = append([]models.WhaleTrade{t}, f.trades...)
	if len(f.trades) > maxFeedTrades {
		f.trades = f.trades[:maxFeedTrades]
	}
	f.totalVolume += t.USD
	f.tradeCount++

	return t, true
}

// SetFilter selects the chain used for new simulated trades.
func (f *Feed) SetFilter(filter string) error {
	if filter == "" {
		filter = FilterAll
	}
	if !ValidFilter(filter) {
		return fmt.Errorf("%w: %s", ErrUnknownChain, filter)
	}

	f.mu.Lock()
	f.filter = filter
	f.mu.Unlock()
	return nil
}

// Filter returns the chain used for new simulated trades.
func (f *Feed) Filter() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter
}

func (f *Feed) Pause() {
	f.mu.Lock()
	f.paused = true
	f.mu.Unlock()
}

func (f *Feed) Resume() {
	f.mu.Lock()
	f.paused = false
	f.mu.Unlock()
}

// View returns the cached trades matching filter; "all" returns every trade.
func (f *Feed) View(filter string) (models.WhaleFeedView, error) {
	if filter == "" {
		filter = FilterAll
	}
	if !ValidFilter(filter) {
		return models.WhaleFeedView{}, fmt.Errorf("%w: %s", ErrUnknownChain, filter)
	}

	now := f.now()

	f.mu.RLock()
	defer f.mu.RUnlock()

	trades := make([]models.WhaleTrade, 0, len(f.trades))
	for _, t := range f.trades {
		if filter != FilterAll && t.Chain != filter {
			continue
		}
		t.IsNew = !t.CreatedAt.IsZero() && now.Sub(t.CreatedAt) < newHighlight
		trades = append(trades, t)
	}

	view := models.WhaleFeedView{
		Trades:      trades,
		Filter:      filter,
		TradeCount:  f.tradeCount,
		TotalVolume: f.totalVolume,
		Source:      f.source,
		Paused:      f.paused,
	}
	if !f.lastRefresh.IsZero() {
		ts := f.lastRefresh
		view.LastRefresh = &ts
	}
	return view, nil
}
