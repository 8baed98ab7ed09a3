package models

import "time"

// WhaleTrade 大额转账
type WhaleTrade struct {
	ID         string    `json:"id"`
	Chain      string    `json:"chain"`
	ChainName  string    `json:"chain_name,omitempty"`
	ChainColor string    `json:"chain_color"`
	ChainIcon  string    `json:"chain_icon,omitempty"`
	Type       string    `json:"type,omitempty"`
	Amount     string    `json:"amount"`
	Symbol     string    `json:"symbol"`
	USD        float64   `json:"usd"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	FromName   string    `json:"from_name,omitempty"`
	ToName     string    `json:"to_name,omitempty"`
	Hash       string    `json:"hash"`
	Label      string    `json:"label,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IsNew      bool      `json:"is_new"`

	CreatedAt time.Time `json:"-"`
}

// WhaleFeedView is what the whale panel renders.
type WhaleFeedView struct {
	Trades      []WhaleTrade `json:"trades"`
	Filter      string       `json:"filter"`
	TradeCount  int          `json:"trade_count"`
	TotalVolume float64      `json:"total_volume"`
	Source      string       `json:"source"`
	Paused      bool         `json:"paused"`
	LastRefresh *time.Time   `json:"last_refresh,omitempty"`
}
