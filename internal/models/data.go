package models

import "time"

// Asset keys used by the price table and the static datasets.
const (
	AssetBitcoin  = "bitcoin"
	AssetEthereum = "ethereum"
	AssetSolana   = "solana"
)

// Price sources
const (
	SourceFallback = "fallback"
	SourceAllium   = "allium"
	SourceBinance  = "binance"
)

// AssetPrice 资产行情快照
type AssetPrice struct {
	Price         float64 `json:"price"`
	Change24h     float64 `json:"change_24h"`
	Volume24h     float64 `json:"vol_24h"` // billions USD
	TwoWeekChange float64 `json:"two_week_change"`
}

// PriceUpdate is a partial update returned by a price source. Nil fields are left untouched.
type PriceUpdate struct {
	Asset     string   `json:"asset"`
	Price     *float64 `json:"price,omitempty"`
	Change24h *float64 `json:"change_24h,omitempty"`
	Volume24h *float64 `json:"vol_24h,omitempty"`
}

// PriceSnapshot 价格表快照
type PriceSnapshot struct {
	Prices     map[string]AssetPrice `json:"prices"`
	Source     string                `json:"source"`
	LastUpdate *time.Time            `json:"last_update,omitempty"`
}

// TokenAddress identifies a token on a chain for the prices endpoint.
type TokenAddress struct {
	TokenAddress string `json:"token_address"`
	Chain        string `json:"chain"`
}

// Asset 转账资产信息
type Asset struct {
	Type     string `json:"type"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// Amount keeps both the raw string and the parsed value as returned upstream.
type Amount struct {
	AmountStr string  `json:"amount_str"`
	Amount    float64 `json:"amount"`
}

// AssetTransfer 单笔资产转移
type AssetTransfer struct {
	TransferType string `json:"transfer_type"`
	Asset        Asset  `json:"asset"`
	Amount       Amount `json:"amount"`
}

// Transaction 钱包交易
type Transaction struct {
	Hash           string          `json:"hash"`
	BlockTimestamp string          `json:"block_timestamp"`
	FromAddress    string          `json:"from_address"`
	ToAddress      string          `json:"to_address"`
	Labels         []string        `json:"labels"`
	AssetTransfers []AssetTransfer `json:"asset_transfers"`
}

// Balance 代币余额
type Balance struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	USDValue float64 `json:"usd_value"`
}

// ExampleWallet is a well-known address offered as a lookup shortcut.
type ExampleWallet struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	Chain   string `json:"chain"`
}
