package market

import (
	"fmt"

	"github.com/songzhibin97/chainpulse/internal/models"
	"github.com/songzhibin97/chainpulse/internal/utils/numfmt"
)

// Metric is one headline number with its day-over-day change and trend.
type Metric struct {
	Label  string    `json:"label"`
	Value  string    `json:"value"`
	Change float64   `json:"change"`
	Series []float64 `json:"series"`
	Points []Point   `json:"points"`
	Color  string    `json:"color"`
}

// ChainRow 链活跃度行
type ChainRow struct {
	ChainActivity
	Color     string  `json:"color"`
	TxnShare  float64 `json:"txn_share"`
	DexShare  float64 `json:"dex_share"`
	TxnsText  string  `json:"txns_text"`
	AddrsText string  `json:"addrs_text"`
	DexText   string  `json:"dex_text,omitempty"`
	FeesText  string  `json:"fees_text"`
}

type DexRow struct {
	Dex
	Share   float64 `json:"share"`
	VolText string  `json:"vol_text"`
}

// Overview is the market dashboard payload.
type Overview struct {
	Date             string                      `json:"date"`
	Metrics          []Metric                    `json:"metrics"`
	Fees             Metric                      `json:"fees"`
	StablecoinVolume Metric                      `json:"stablecoin_volume"`
	Chains           []ChainRow                  `json:"chains"`
	Dexes            []DexRow                    `json:"dexes"`
	StablecoinSupply map[string]StablecoinSupply `json:"stablecoin_supply"`
}

// BuildOverview derives the dashboard from the bundled daily series.
func BuildOverview() Overview {
	latest := CrosschainDaily[len(CrosschainDaily)-1]
	prev := CrosschainDaily[len(CrosschainDaily)-2]

	series := func(f func(DailyMetrics) float64) []float64 {
		out := make([]float64, len(CrosschainDaily))
		for i, d := range CrosschainDaily {
			out[i] = f(d)
		}
		return out
	}
	metric := func(label, color string, format func(float64) string, f func(DailyMetrics) float64) Metric {
		s := series(f)
		return Metric{
			Label:  label,
			Value:  format(f(latest)),
			Change: PctChange(f(latest), f(prev)),
			Series: s,
			Points: Sparkline(s, 70, 28),
			Color:  color,
		}
	}

	o := Overview{
		Date: latest.Date,
		Metrics: []Metric{
			metric("Daily Txns", "#00E39E", FormatCount, func(d DailyMetrics) float64 { return d.Txns }),
			metric("Active Addresses", "#627EEA", FormatCount, func(d DailyMetrics) float64 { return d.Addrs }),
			metric("DEX Volume", "#00FFA3", FormatUSD, func(d DailyMetrics) float64 { return d.DexVol }),
			metric("Total TVL", "#FFA726", FormatUSD, func(d DailyMetrics) float64 { return d.TVL }),
		},
		StablecoinSupply: StablecoinSupplyByChain,
	}

	fees := series(func(d DailyMetrics) float64 { return d.Fees })
	o.Fees = Metric{
		Label:  "Network Fees (24h)",
		Value:  FormatUSD(latest.Fees),
		Change: PctChange(latest.Fees, prev.Fees),
		Series: fees,
		Points: Sparkline(fees, 200, 24),
		Color:  "#FFA726",
	}

	stable := make([]float64, len(StablecoinDaily))
	for i, d := range StablecoinDaily {
		stable[i] = d.Vol
	}
	last := len(stable) - 1
	o.StablecoinVolume = Metric{
		Label:  "Stablecoin Volume (24h)",
		Value:  FormatUSD(stable[last]),
		Change: PctChange(stable[last], stable[last-1]),
		Series: stable,
		Points: Sparkline(stable, 200, 24),
		Color:  "#2775CA",
	}

	o.Chains = chainRows(ChainBreakdown)
	o.Dexes = dexRows(TopDexes)

	return o
}

func chainRows(in []ChainActivity) []ChainRow {
	var maxTxn, maxDex float64
	for _, c := range in {
		maxTxn = max(maxTxn, c.Txns)
		maxDex = max(maxDex, c.DexVol)
	}

	rows := make([]ChainRow, 0, len(in))
	for _, c := range in {
		r := ChainRow{
			ChainActivity: c,
			Color:         models.ChainColor(c.Chain),
			TxnsText:      FormatCount(c.Txns),
			AddrsText:     FormatCount(c.Addrs),
			FeesText:      FormatUSD(c.Fees),
		}
		if maxTxn > 0 {
			r.TxnShare = c.Txns / maxTxn * 100
		}
		// 无 DEX 的链不画条
		if c.DexVol > 0 && maxDex > 0 {
			r.DexShare = c.DexVol / maxDex * 100
			r.DexText = FormatUSD(c.DexVol)
		}
		rows = append(rows, r)
	}
	return rows
}

// dexRows sizes bars against the first (largest) entry.
func dexRows(in []Dex) []DexRow {
	if len(in) == 0 {
		return nil
	}
	top := in[0].Vol

	rows := make([]DexRow, 0, len(in))
	for _, d := range in {
		r := DexRow{Dex: d, VolText: FormatUSD(d.Vol)}
		if top > 0 {
			r.Share = d.Vol / top * 100
		}
		rows = append(rows, r)
	}
	return rows
}

// MiniCard is the compact live price card of one asset.
type MiniCard struct {
	models.AssetPrice
	Name        string `json:"name"`
	Color       string `json:"color"`
	PriceText   string `json:"price_text"`
	ChangeText  string `json:"change_text"`
	VolumeText  string `json:"volume_text"`
	TwoWeekText string `json:"two_week_text"`
}

// MiniCards renders the live price table, volume is in billions USD.
func MiniCards(prices map[string]models.AssetPrice) []MiniCard {
	cards := make([]MiniCard, 0, len(models.TrackedAssets))
	for _, a := range models.TrackedAssets {
		p, ok := prices[a.ID]
		if !ok {
			continue
		}
		cards = append(cards, MiniCard{
			AssetPrice:  p,
			Name:        a.Name,
			Color:       a.Color,
			PriceText:   "$" + numfmt.Fixed(p.Price, 2),
			ChangeText:  signedPct(p.Change24h),
			VolumeText:  volumeText(p.Volume24h),
			TwoWeekText: signedPct(p.TwoWeekChange),
		})
	}
	return cards
}

func volumeText(billions float64) string {
	switch {
	case billions <= 0:
		return "—"
	case billions >= 1000:
		return fmt.Sprintf("$%.1fT", billions/1000)
	default:
		return fmt.Sprintf("$%.0fB", billions)
	}
}
