package risk

import (
	"fmt"
	"math"

	"github.com/songzhibin97/chainpulse/internal/models"
)

// recovery marker of the drawdown still in progress
const ongoingRecovery = "?"

var CycleDrawdowns = map[string][]Drawdown{
	models.AssetBitcoin: {
		{Cycle: "2013-2017", Event: "Mt. Gox Hack", Date: "Feb 2014", Peak: 1150, Bottom: 175, Drawdown: -84.8, Duration: "2 weeks", Recovery: "14 months"},
		{Cycle: "2013-2017", Event: "China Exchange Ban", Date: "Sep 2017", Peak: 4980, Bottom: 2972, Drawdown: -40.3, Duration: "2 weeks", Recovery: "2 months"},
		{Cycle: "2017-2021", Event: "COVID Crash", Date: "Mar 2020", Peak: 10500, Bottom: 3850, Drawdown: -63.3, Duration: "1 week", Recovery: "5 months"},
		{Cycle: "2021-2025", Event: "FTX Collapse", Date: "Nov 2022", Peak: 21000, Bottom: 15500, Drawdown: -26.2, Duration: "1 week", Recovery: "18 months"},
		{Cycle: "2021-2025", Event: "Silicon Valley Bank", Date: "Mar 2023", Peak: 28400, Bottom: 19800, Drawdown: -30.3, Duration: "3 days", Recovery: "2 months"},
		{Cycle: "2025-2029", Event: "Feb 2026 Dip", Date: "Feb 2026", Peak: 126272, Bottom: 65896, Drawdown: -47.8, Duration: "4 months", Recovery: ongoingRecovery},
	},
	models.AssetEthereum: {
		{Cycle: "2015-2019", Event: "DAO Hack", Date: "Jun 2016", Peak: 21.50, Bottom: 6.00, Drawdown: -72.1, Duration: "2 weeks", Recovery: "8 months"},
		{Cycle: "2017-2021", Event: "COVID Crash", Date: "Mar 2020", Peak: 290, Bottom: 85, Drawdown: -70.7, Duration: "1 week", Recovery: "6 months"},
		{Cycle: "2017-2021", Event: "China Mining Ban", Date: "May 2021", Peak: 4380, Bottom: 1700, Drawdown: -61.2, Duration: "3 weeks", Recovery: "4 months"},
		{Cycle: "2021-2025", Event: "FTX Collapse", Date: "Nov 2022", Peak: 1650, Bottom: 880, Drawdown: -46.7, Duration: "1 week", Recovery: "20 months"},
		{Cycle: "2021-2025", Event: "USDC Depeg", Date: "Mar 2023", Peak: 1850, Bottom: 1365, Drawdown: -26.2, Duration: "2 days", Recovery: "3 weeks"},
		{Cycle: "2025-2029", Event: "Feb 2026 Dip", Date: "Feb 2026", Peak: 2475, Bottom: 1920, Drawdown: -22.4, Duration: "2 weeks", Recovery: ongoingRecovery},
	},
	models.AssetSolana: {
		{Cycle: "2020-2024", Event: "FTX Collapse", Date: "Nov 2022", Peak: 260, Bottom: 8, Drawdown: -96.9, Duration: "2 weeks", Recovery: "24+ months"},
		{Cycle: "2020-2024", Event: "Network Outage", Date: "Feb 2023", Peak: 27, Bottom: 18, Drawdown: -33.3, Duration: "1 day", Recovery: "2 months"},
		{Cycle: "2020-2024", Event: "Meme Coin Crash", Date: "Apr 2024", Peak: 205, Bottom: 128, Drawdown: -37.6, Duration: "1 week", Recovery: "6 weeks"},
		{Cycle: "2025-2029", Event: "Feb 2026 Dip", Date: "Feb 2026", Peak: 116, Bottom: 82.7, Drawdown: -28.7, Duration: "2 weeks", Recovery: ongoingRecovery},
	},
}

var perspectives = map[string]string{
	models.AssetBitcoin:  "BTC has weathered drawdowns as large as -84.8% (Mt. Gox) and recovered.",
	models.AssetEthereum: "ETH has seen corrections up to -72% (DAO Hack) and bounced back stronger.",
	models.AssetSolana:   "SOL survived a -96.9% crash during FTX and recovered to new highs.",
}

type DrawdownAnalyzer struct {
	prices PriceReader
}

func NewDrawdownAnalyzer(prices PriceReader) *DrawdownAnalyzer {
	return &DrawdownAnalyzer{prices: prices}
}

// Compare puts the asset's current dip next to its historical cycle drawdowns.
func (a *DrawdownAnalyzer) Compare(asset string) (*Comparison, error) {
	meta, ok := models.LookupAsset(asset)
	history, hasHistory := CycleDrawdowns[asset]
	if !ok || !hasHistory {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}

	c := &Comparison{
		Asset:  meta.ID,
		Assets: a.cards(),
	}

	for _, d := range history {
		c.MaxDrawdown = math.Max(c.MaxDrawdown, math.Abs(d.Drawdown))
	}

	c.Drawdowns = make([]DrawdownBar, 0, len(history))
	for i, d := range history {
		bar := DrawdownBar{Drawdown: d, Current: d.Recovery == ongoingRecovery}
		if c.MaxDrawdown > 0 {
			bar.Width = math.Abs(d.Drawdown) / c.MaxDrawdown * 100
		}
		if bar.Current && c.CurrentDip == nil {
			c.CurrentDip = &history[i]
		}
		c.Drawdowns = append(c.Drawdowns, bar)
	}

	if c.CurrentDip != nil {
		c.Severity = getSeverityLevel(c.CurrentDip.Drawdown)
		c.Perspective = fmt.Sprintf("The current %s drawdown of %.1f%% is %s compared to historical cycle corrections. %s",
			meta.Name, c.CurrentDip.Drawdown, c.Severity, perspectives[asset])
	}

	return c, nil
}

func (a *DrawdownAnalyzer) cards() []AssetCard {
	fallback := ongoingDips()

	cards := make([]AssetCard, 0, len(models.TrackedAssets))
	for _, m := range models.TrackedAssets {
		card := AssetCard{ID: m.ID, Name: m.Name, Color: m.Color, TwoWeekChange: fallback[m.ID]}
		if a.prices != nil {
			if p, ok := a.prices.Get(m.ID); ok {
				card.TwoWeekChange = p.TwoWeekChange
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// ongoingDips maps each asset to the drawdown still in progress.
func ongoingDips() map[string]float64 {
	out := make(map[string]float64, len(CycleDrawdowns))
	for asset, history := range CycleDrawdowns {
		for _, d := range history {
			if d.Recovery == ongoingRecovery {
				out[asset] = d.Drawdown
			}
		}
	}
	return out
}

func getSeverityLevel(drawdown float64) string {
	dd := math.Abs(drawdown)
	switch {
	case dd < 30:
		return "relatively mild"
	case dd < 50:
		return "moderate"
	case dd < 70:
		return "significant"
	default:
		return "severe"
	}
}
