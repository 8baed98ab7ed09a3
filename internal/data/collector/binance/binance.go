package binance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adshao/go-binance/v2"

	"github.com/songzhibin97/chainpulse/internal/models"
)

// symbols maps the USDT pair of each tracked asset to its price table key.
var symbols = map[string]string{
	"BTCUSDT": models.AssetBitcoin,
	"ETHUSDT": models.AssetEthereum,
	"SOLUSDT": models.AssetSolana,
}

// BinanceDataSource reads public 24h tickers. No credentials are needed.
type BinanceDataSource struct {
	client *binance.Client
}

func NewBinanceDataSource() *BinanceDataSource {
	return &BinanceDataSource{
		client: binance.NewClient("", ""),
	}
}

func (b *BinanceDataSource) Name() string {
	return models.SourceBinance
}

// LatestPrices implements data.PriceSource
func (b *BinanceDataSource) LatestPrices(ctx context.Context) ([]models.PriceUpdate, error) {
	updates := make([]models.PriceUpdate, 0, len(symbols))

	for symbol, asset := range symbols {
		stats, err := b.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get ticker %s: %w", symbol, err)
		}
		if len(stats) == 0 {
			continue
		}

		update, err := toUpdate(asset, stats[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse ticker %s: %w", symbol, err)
		}
		updates = append(updates, update)
	}

	return updates, nil
}

func toUpdate(asset string, s *binance.PriceChangeStats) (models.PriceUpdate, error) {
	price, err := strconv.ParseFloat(s.LastPrice, 64)
	if err != nil {
		return models.PriceUpdate{}, fmt.Errorf("failed to parse price: %w", err)
	}

	change, err := strconv.ParseFloat(s.PriceChangePercent, 64)
	if err != nil {
		return models.PriceUpdate{}, fmt.Errorf("failed to parse price change: %w", err)
	}

	update := models.PriceUpdate{Asset: asset, Price: &price, Change24h: &change}

	// quote volume is in USDT, the table keeps billions
	if quote, err := strconv.ParseFloat(s.QuoteVolume, 64); err == nil {
		vol := quote / 1e9
		update.Volume24h = &vol
	}

	return update, nil
}
