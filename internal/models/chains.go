package models

// ChainColors 链主题色
var ChainColors = map[string]string{
	"solana":   "#00FFA3",
	"ethereum": "#627EEA",
	"bsc":      "#F0B90B",
	"base":     "#0052FF",
	"arbitrum": "#28A0F0",
	"polygon":  "#8247E5",
	"optimism": "#FF0420",
	"bitcoin":  "#F7931A",
}

// ChainColor returns the theme color of chain, grey when unknown.
func ChainColor(chain string) string {
	if c, ok := ChainColors[chain]; ok {
		return c
	}
	return "#888"
}

// AssetMeta 展示用资产信息
type AssetMeta struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TrackedAssets are the assets with live prices, in display order.
var TrackedAssets = []AssetMeta{
	{ID: AssetBitcoin, Name: "BTC", Color: "#F7931A"},
	{ID: AssetEthereum, Name: "ETH", Color: "#627EEA"},
	{ID: AssetSolana, Name: "SOL", Color: "#00FFA3"},
}

// LookupAsset finds a tracked asset by id.
func LookupAsset(id string) (AssetMeta, bool) {
	for _, a := range TrackedAssets {
		if a.ID == id {
			return a, true
		}
	}
	return AssetMeta{}, false
}
