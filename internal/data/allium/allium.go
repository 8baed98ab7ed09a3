package allium

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/chainpulse/internal/models"
	"github.com/songzhibin97/chainpulse/internal/utils/request"
)

const (
	transactionsPath = "/api/v1/developer/wallet/transactions"
	balancesPath     = "/api/v1/developer/wallet/balances"
	pricesPath       = "/api/v1/developer/prices"
)

// TrackedTokens is the fixed token set polled for the price table.
var TrackedTokens = []models.TokenAddress{
	{TokenAddress: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Chain: "ethereum"}, // WETH
	{TokenAddress: "So11111111111111111111111111111111111111112", Chain: "solana"},  // WSOL
	{TokenAddress: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Chain: "ethereum"}, // WBTC
}

// lowercased token address -> price table key
var trackedAssets = map[string]string{
	"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2":  models.AssetEthereum,
	"so11111111111111111111111111111111111111112": models.AssetSolana,
	"0x2260fac5e5542a773aa44fbcfedf7c193bc2c599":  models.AssetBitcoin,
}

// Client talks to the Allium developer REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: request.New(timeout),
	}
}

func (c *Client) Name() string {
	return models.SourceAllium
}

// Transactions implements data.WalletSource
func (c *Client) Transactions(ctx context.Context, address, chain string, limit int) ([]models.Transaction, error) {
	body := map[string]any{
		"addresses": []map[string]string{{"address": address, "chain": chain}},
		"limit":     limit,
	}

	resp, err := c.post(ctx, transactionsPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	var txs []models.Transaction
	if err := decodeItems(resp, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	return txs, nil
}

// Balances implements data.WalletSource
func (c *Client) Balances(ctx context.Context, address, chain string) ([]models.Balance, error) {
	resp, err := c.post(ctx, balancesPath, map[string]string{"address": address, "chain": chain})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balances: %w", err)
	}

	var items []balanceItem
	if err := decodeItems(resp, &items); err != nil {
		return nil, fmt.Errorf("failed to decode balances: %w", err)
	}

	balances := make([]models.Balance, 0, len(items))
	for _, item := range items {
		balances = append(balances, item.toBalance())
	}

	return balances, nil
}

// LatestPrices implements data.PriceSource
func (c *Client) LatestPrices(ctx context.Context) ([]models.PriceUpdate, error) {
	resp, err := c.post(ctx, pricesPath, TrackedTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	var items []priceItem
	if err := decodeItems(resp, &items); err != nil {
		return nil, fmt.Errorf("failed to decode prices: %w", err)
	}

	updates := make([]models.PriceUpdate, 0, len(items))
	for _, item := range items {
		addr := item.Address
		if addr == "" {
			addr = item.Mint
		}
		if addr == "" {
			addr = item.TokenAddress
		}

		asset, ok := trackedAssets[strings.ToLower(addr)]
		if !ok || !item.Price.ok || item.Price.v == 0 {
			continue
		}

		price := item.Price.v
		update := models.PriceUpdate{Asset: asset, Price: &price}
		if item.Volume24h.ok {
			vol := item.Volume24h.v / 1e9
			update.Volume24h = &vol
		}
		updates = append(updates, update)
	}

	return updates, nil
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetBody(body).
		Post(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

// decodeItems accepts both `{"items": [...]}` and a bare array. Any other object
// shape decodes to an empty list.
func decodeItems(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var envelope struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		if len(envelope.Items) == 0 || string(envelope.Items) == "null" {
			return nil
		}
		trimmed = envelope.Items
	}

	return json.Unmarshal(trimmed, v)
}

type priceItem struct {
	Address      string    `json:"address"`
	Mint         string    `json:"mint"`
	TokenAddress string    `json:"token_address"`
	Price        flexFloat `json:"price"`
	Volume24h    flexFloat `json:"volume_24h"`
}

type balanceFields struct {
	Symbol      string    `json:"symbol"`
	AssetSymbol string    `json:"asset_symbol"`
	Name        string    `json:"name"`
	AssetName   string    `json:"asset_name"`
	Amount      flexFloat `json:"amount"`
	Balance     flexFloat `json:"balance"`
	USDValue    flexFloat `json:"usd_value"`
	AmountUSD   flexFloat `json:"amount_usd"`
}

type balanceItem struct {
	Token *balanceFields `json:"token"`
	balanceFields
}

func (b balanceItem) toBalance() models.Balance {
	token := &b.balanceFields
	if b.Token != nil {
		token = b.Token
	}

	out := models.Balance{
		Symbol: firstNonEmpty(token.Symbol, token.AssetSymbol, "???"),
		Name:   firstNonEmpty(token.Name, token.AssetName),
		Amount: b.Amount.v,
	}
	if out.Amount == 0 {
		out.Amount = b.Balance.v
	}
	out.USDValue = b.USDValue.v
	if out.USDValue == 0 {
		out.USDValue = b.AmountUSD.v
	}

	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// flexFloat decodes numbers that upstream sends either as JSON numbers or strings.
type flexFloat struct {
	v  float64
	ok bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// unparsable values count as missing
		return nil
	}

	f.v, f.ok = v, true
	return nil
}
