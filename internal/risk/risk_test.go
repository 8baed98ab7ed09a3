package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/chainpulse/internal/data/collector"
	"github.com/songzhibin97/chainpulse/internal/models"
)

func TestDrawdownAnalyzer_Compare(t *testing.T) {
	analyzer := NewDrawdownAnalyzer(collector.NewPriceTable())

	tests := []struct {
		name         string
		asset        string
		wantBars     int
		wantMax      float64
		wantCurrent  float64
		wantSeverity string
		wantTail     string
	}{
		{
			name:         "bitcoin",
			asset:        models.AssetBitcoin,
			wantBars:     6,
			wantMax:      84.8,
			wantCurrent:  -47.8,
			wantSeverity: "moderate",
			wantTail:     "BTC has weathered drawdowns as large as -84.8% (Mt. Gox) and recovered.",
		},
		{
			name:         "ethereum",
			asset:        models.AssetEthereum,
			wantBars:     6,
			wantMax:      72.1,
			wantCurrent:  -22.4,
			wantSeverity: "relatively mild",
			wantTail:     "ETH has seen corrections up to -72% (DAO Hack) and bounced back stronger.",
		},
		{
			name:         "solana",
			asset:        models.AssetSolana,
			wantBars:     4,
			wantMax:      96.9,
			wantCurrent:  -28.7,
			wantSeverity: "relatively mild",
			wantTail:     "SOL survived a -96.9% crash during FTX and recovered to new highs.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := analyzer.Compare(tt.asset)
			require.NoError(t, err)
			require.NotNil(t, c)

			assert.Len(t, c.Drawdowns, tt.wantBars)
			assert.Equal(t, tt.wantMax, c.MaxDrawdown)
			require.NotNil(t, c.CurrentDip)
			assert.Equal(t, tt.wantCurrent, c.CurrentDip.Drawdown)
			assert.Equal(t, tt.wantSeverity, c.Severity)
			assert.Contains(t, c.Perspective, tt.wantSeverity)
			assert.Contains(t, c.Perspective, tt.wantTail)

			widest := 0.0
			current := 0
			for _, bar := range c.Drawdowns {
				assert.LessOrEqual(t, bar.Width, 100.0)
				widest = max(widest, bar.Width)
				if bar.Current {
					current++
				}
			}
			assert.Equal(t, 100.0, widest)
			assert.Equal(t, 1, current)
		})
	}
}

func TestDrawdownAnalyzer_AssetCards(t *testing.T) {
	table := collector.NewPriceTable()
	analyzer := NewDrawdownAnalyzer(table)

	c, err := analyzer.Compare(models.AssetBitcoin)
	require.NoError(t, err)
	require.Len(t, c.Assets, 3)
	assert.Equal(t, "BTC", c.Assets[0].Name)
	assert.Equal(t, "#F7931A", c.Assets[0].Color)
	assert.Equal(t, -47.8, c.Assets[0].TwoWeekChange)

	noPrices, err := NewDrawdownAnalyzer(nil).Compare(models.AssetSolana)
	require.NoError(t, err)
	assert.Equal(t, -28.7, noPrices.Assets[2].TwoWeekChange)
}

func TestDrawdownAnalyzer_UnknownAsset(t *testing.T) {
	_, err := NewDrawdownAnalyzer(nil).Compare("dogecoin")
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestGetSeverityLevel(t *testing.T) {
	tests := []struct {
		name     string
		drawdown float64
		want     string
	}{
		{name: "mild", drawdown: -29.9, want: "relatively mild"},
		{name: "moderate lower bound", drawdown: -30, want: "moderate"},
		{name: "significant", drawdown: -50, want: "significant"},
		{name: "severe", drawdown: -70, want: "severe"},
		{name: "positive input", drawdown: 84.8, want: "severe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getSeverityLevel(tt.drawdown)
			assert.Equal(t, tt.want, got)
		})
	}
}
