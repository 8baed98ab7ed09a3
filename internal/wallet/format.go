package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/songzhibin97/chainpulse/internal/utils/numfmt"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var explorers = map[string]string{
	"ethereum": "https://etherscan.io/tx/",
	"solana":   "https://solscan.io/tx/",
}

// ShortenAddress keeps the first 6 and last 4 characters.
func ShortenAddress(a string) string {
	if len(a) <= 10 {
		return a
	}
	return a[:6] + "…" + a[len(a)-4:]
}

// ParseTimestamp accepts RFC3339 and the zone-less forms the API returns, read as UTC.
func ParseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimeAgo renders the elapsed time between t and now as "Ns/Nm/Nh/Nd ago".
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

// DisplayAmount shortens amount strings longer than 12 characters to at most 6
// decimals with thousands separators. Shorter strings are returned as-is.
func DisplayAmount(amountStr string) string {
	if amountStr == "" {
		return "0"
	}
	if len(amountStr) <= 12 {
		return amountStr
	}

	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return amountStr
	}

	return numfmt.Group(d.Round(6).String())
}

// ExplorerURL links a transaction hash to the chain's block explorer.
func ExplorerURL(chain, hash string) string {
	base, ok := explorers[chain]
	if !ok {
		base = explorers["ethereum"]
	}
	return base + hash
}
