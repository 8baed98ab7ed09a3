package risk

import (
	"errors"

	"github.com/songzhibin97/chainpulse/internal/models"
)

var ErrUnknownAsset = errors.New("unknown asset")

// PriceReader exposes the live price table, read for the two-week change.
type PriceReader interface {
	Get(asset string) (models.AssetPrice, bool)
}

// Drawdown 历史周期回撤
type Drawdown struct {
	Cycle    string  `json:"cycle"`
	Event    string  `json:"event"`
	Date     string  `json:"date"`
	Peak     float64 `json:"peak"`
	Bottom   float64 `json:"bottom"`
	Drawdown float64 `json:"drawdown"`
	Duration string  `json:"duration"`
	Recovery string  `json:"recovery"`
}

// DrawdownBar is a drawdown sized against the asset's worst one.
type DrawdownBar struct {
	Drawdown
	Current bool    `json:"current"`
	Width   float64 `json:"width"`
}

// AssetCard is the selector card of one asset.
type AssetCard struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	TwoWeekChange float64 `json:"two_week_change"`
}

// Comparison 回撤对比结果
type Comparison struct {
	Asset       string        `json:"asset"`
	Assets      []AssetCard   `json:"assets"`
	Drawdowns   []DrawdownBar `json:"drawdowns"`
	CurrentDip  *Drawdown     `json:"current_dip,omitempty"`
	MaxDrawdown float64       `json:"max_drawdown"`
	Severity    string        `json:"severity"`
	Perspective string        `json:"perspective"`
}
