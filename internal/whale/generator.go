package whale

import (
	"math"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/songzhibin97/chainpulse/internal/data/collector"
	"github.com/songzhibin97/chainpulse/internal/models"
)

// MinTradeUSD is the smallest trade the feed shows.
const MinTradeUSD = 1_000_000

const maxResample = 1000

// ChainMeta is the display metadata of a feed chain filter.
type ChainMeta struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

const FilterAll = "all"

var Chains = []ChainMeta{
	{ID: FilterAll, Name: "All Chains", Color: "#00E39E"},
	{ID: models.AssetBitcoin, Name: "BTC", Color: "#F7931A", Icon: "₿"},
	{ID: models.AssetEthereum, Name: "ETH", Color: "#627EEA", Icon: "Ξ"},
	{ID: models.AssetSolana, Name: "SOL", Color: "#00FFA3", Icon: "◎"},
}

var Labels = []string{
	"Unknown Whale", "Institutional", "DEX Aggregator", "Market Maker", "CEX Hot Wallet",
	"Whale Alert", "Smart Money", "MEV Bot", "OTC Desk", "Fund",
}

var tradeTypes = []string{"Transfer", "Swap", "Bridge", "Deposit", "Withdrawal"}

// unit ranges per chain: low + rand*span, rounded to decimals
var amountSpecs = map[string]struct {
	symbol   string
	low      float64
	span     float64
	decimals int
}{
	models.AssetBitcoin:  {symbol: "BTC", low: 10, span: 200, decimals: 4},
	models.AssetEthereum: {symbol: "ETH", low: 500, span: 5000, decimals: 2},
	models.AssetSolana:   {symbol: "SOL", low: 12000, span: 50000, decimals: 0},
}

func chainMeta(id string) (ChainMeta, bool) {
	for _, c := range Chains {
		if c.ID == id {
			return c, true
		}
	}
	return ChainMeta{}, false
}

// ValidFilter reports whether f is a known chain filter.
func ValidFilter(f string) bool {
	_, ok := chainMeta(f)
	return ok
}

// PriceLookup supplies spot prices for pricing simulated trades.
type PriceLookup interface {
	Price(asset string) float64
}

// Generator produces pseudo-random whale trades priced from live prices.
type Generator struct {
	prices PriceLookup

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator(prices PriceLookup) *Generator {
	return &Generator{
		prices: prices,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Trade generates one trade for filter ("all" picks a random chain). The USD value is
// always at least MinTradeUSD.
func (g *Generator) Trade(filter string, now time.Time) models.WhaleTrade {
	g.mu.Lock()
	defer g.mu.Unlock()

	chain := filter
	if _, ok := amountSpecs[chain]; !ok {
		all := []string{models.AssetBitcoin, models.AssetEthereum, models.AssetSolana}
		chain = all[g.rnd.IntN(len(all))]
	}
	meta, _ := chainMeta(chain)
	rng := amountSpecs[chain]

	price := g.price(chain)
	amount, usd := g.sample(rng.low, rng.span, rng.decimals, price)
	for i := 0; usd < MinTradeUSD && i < maxResample; i++ {
		amount, usd = g.sample(rng.low, rng.span, rng.decimals, price)
	}
	if usd < MinTradeUSD {
		// the range cannot reach the threshold at this price
		units := math.Ceil(MinTradeUSD / price)
		if units*price < MinTradeUSD {
			units++
		}
		amount = strconv.FormatFloat(units, 'f', rng.decimals, 64)
		usd = units * price
	}

	trade := models.WhaleTrade{
		ID:         uuid.NewString(),
		Chain:      chain,
		ChainName:  meta.Name,
		ChainColor: meta.Color,
		ChainIcon:  meta.Icon,
		Type:       tradeTypes[g.rnd.IntN(len(tradeTypes))],
		Amount:     amount,
		Symbol:     rng.symbol,
		USD:        usd,
		From:       g.hex(40),
		To:         g.hex(40),
		Hash:       g.hex(64),
		Timestamp:  now,
		CreatedAt:  now,
	}
	if g.rnd.Float64() > 0.4 {
		trade.Label = Labels[g.rnd.IntN(len(Labels))]
	}

	return trade
}

func (g *Generator) price(chain string) float64 {
	if g.prices != nil {
		if p := g.prices.Price(chain); p > 0 {
			return p
		}
	}
	return collector.FallbackPrices()[chain].Price
}

func (g *Generator) sample(low, span float64, decimals int, price float64) (string, float64) {
	amount := strconv.FormatFloat(g.rnd.Float64()*span+low, 'f', decimals, 64)
	units, _ := strconv.ParseFloat(amount, 64)
	return amount, units * price
}

const hexDigits = "0123456789abcdef"

func (g *Generator) hex(n int) string {
	b := make([]byte, n+2)
	b[0], b[1] = '0', 'x'
	for i := 2; i < len(b); i++ {
		b[i] = hexDigits[g.rnd.IntN(16)]
	}
	return string(b)
}
