package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/songzhibin97/chainpulse/internal/data"
	"github.com/songzhibin97/chainpulse/internal/models"
)

// FallbackPrices 内置行情, 在第一次成功拉取前使用
func FallbackPrices() map[string]models.AssetPrice {
	return map[string]models.AssetPrice{
		models.AssetBitcoin:  {Price: 68787.00, Change24h: 2.78, Volume24h: 768.2, TwoWeekChange: -47.8},
		models.AssetEthereum: {Price: 1994.89, Change24h: 2.60, Volume24h: 2132.8, TwoWeekChange: -22.4},
		models.AssetSolana:   {Price: 84.62, Change24h: 0.48, Volume24h: 12352.1, TwoWeekChange: -28.7},
	}
}

// PriceTable holds the latest price per asset. Safe for concurrent use.
type PriceTable struct {
	mu         sync.RWMutex
	prices     map[string]models.AssetPrice
	source     string
	lastUpdate time.Time
}

func NewPriceTable() *PriceTable {
	return &PriceTable{
		prices: FallbackPrices(),
		source: models.SourceFallback,
	}
}

// Get returns the current price of asset.
func (t *PriceTable) Get(asset string) (models.AssetPrice, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.prices[asset]
	return p, ok
}

// Price returns the spot price of asset, zero when unknown.
func (t *PriceTable) Price(asset string) float64 {
	p, _ := t.Get(asset)
	return p.Price
}

// Merge applies partial updates. Only assets already in the table are touched and nil
// fields keep their previous value. Returns the number of assets updated.
func (t *PriceTable) Merge(source string, updates []models.PriceUpdate) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	applied := 0
	for _, u := range updates {
		cur, ok := t.prices[u.Asset]
		if !ok {
			continue
		}
		if u.Price != nil {
			cur.Price = *u.Price
		}
		if u.Change24h != nil {
			cur.Change24h = *u.Change24h
		}
		if u.Volume24h != nil {
			cur.Volume24h = *u.Volume24h
		}
		t.prices[u.Asset] = cur
		applied++
	}

	if applied > 0 {
		t.source = source
		t.lastUpdate = time.Now()
	}

	return applied
}

// Snapshot returns a copy of the table.
func (t *PriceTable) Snapshot() models.PriceSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	prices := make(map[string]models.AssetPrice, len(t.prices))
	for k, v := range t.prices {
		prices[k] = v
	}

	snap := models.PriceSnapshot{Prices: prices, Source: t.source}
	if !t.lastUpdate.IsZero() {
		ts := t.lastUpdate
		snap.LastUpdate = &ts
	}
	return snap
}

// MultiSourceUpdater polls price sources in order and merges the first usable answer
// into the table.
type MultiSourceUpdater struct {
	sources []data.PriceSource
	table   *PriceTable
	logger  *slog.Logger
}

func NewMultiSourceUpdater(sources []data.PriceSource, table *PriceTable, logger *slog.Logger) *MultiSourceUpdater {
	return &MultiSourceUpdater{
		sources: sources,
		table:   table,
		logger:  logger,
	}
}

// Table returns the table updated by u.
func (u *MultiSourceUpdater) Table() *PriceTable {
	return u.table
}

// Refresh runs one poll. Failures leave the table untouched.
func (u *MultiSourceUpdater) Refresh(ctx context.Context) error {
	for _, source := range u.sources {
		updates, err := source.LatestPrices(ctx)
		if err != nil {
			u.logger.Debug("failed to collect prices", "source", source.Name(), "err", err)
			continue
		}

		if n := u.table.Merge(source.Name(), updates); n > 0 {
			return nil
		}
		u.logger.Debug("price source returned no usable rows", "source", source.Name())
	}

	return fmt.Errorf("failed to collect prices from all sources")
}
