package market

// Daily cross-chain activity as exported from Allium Explorer (Jan 29 - Feb 5, 2026).

// DailyMetrics 全链日度指标
type DailyMetrics struct {
	Date   string  `json:"date"`
	Txns   float64 `json:"txns"`
	Addrs  float64 `json:"addrs"`
	DexVol float64 `json:"dex_vol"`
	TVL    float64 `json:"tvl"`
	Fees   float64 `json:"fees"`
}

type ChainActivity struct {
	Chain    string  `json:"chain"`
	Txns     float64 `json:"txns"`
	Addrs    float64 `json:"addrs"`
	DexVol   float64 `json:"dex_vol"`
	Fees     float64 `json:"fees"`
	NewAddrs float64 `json:"new_addrs"`
}

type Dex struct {
	Name  string  `json:"name"`
	Chain string  `json:"chain"`
	Vol   float64 `json:"vol"`
	Color string  `json:"color"`
}

type DailyVolume struct {
	Date string  `json:"date"`
	Vol  float64 `json:"vol"`
}

// StablecoinSupply is circulating supply per chain in billions USD.
type StablecoinSupply struct {
	USDC  float64 `json:"usdc"`
	USDT  float64 `json:"usdt"`
	DAI   float64 `json:"dai"`
	Total float64 `json:"total"`
}

var CrosschainDaily = []DailyMetrics{
	{Date: "Jan 29", Txns: 338322442, Addrs: 9544909, DexVol: 24189217849, TVL: 329170332499, Fees: 3239090},
	{Date: "Jan 30", Txns: 362419204, Addrs: 8981216, DexVol: 29430702875, TVL: 317232684422, Fees: 4151567},
	{Date: "Jan 31", Txns: 354963804, Addrs: 8351785, DexVol: 29239791228, TVL: 307972560951, Fees: 5307305},
	{Date: "Feb 1", Txns: 348194890, Addrs: 8730971, DexVol: 29448282035, TVL: 293115181834, Fees: 3000061},
	{Date: "Feb 2", Txns: 367219682, Addrs: 9245889, DexVol: 29130105843, TVL: 283250782497, Fees: 3354188},
	{Date: "Feb 3", Txns: 353385708, Addrs: 9848083, DexVol: 27606375052, TVL: 287043561149, Fees: 3235570},
	{Date: "Feb 4", Txns: 351954149, Addrs: 9160619, DexVol: 26420262049, TVL: 282971109697, Fees: 3152217},
	{Date: "Feb 5", Txns: 394398784, Addrs: 9800806, DexVol: 30767706939, TVL: 274213313950, Fees: 7227035},
}

var ChainBreakdown = []ChainActivity{
	{Chain: "solana", Txns: 329391489, Addrs: 3255638, DexVol: 14582564950, Fees: 876084, NewAddrs: 1693417},
	{Chain: "bsc", Txns: 19692361, Addrs: 3381770, DexVol: 5952471820, Fees: 449940, NewAddrs: 1242928},
	{Chain: "ethereum", Txns: 2263196, Addrs: 766721, DexVol: 5943870609, Fees: 3301294, NewAddrs: 283091},
	{Chain: "base", Txns: 19637126, Addrs: 483265, DexVol: 2468042905, Fees: 1870741, NewAddrs: 84600},
	{Chain: "arbitrum", Txns: 9741556, Addrs: 425232, DexVol: 1267475595, Fees: 74301, NewAddrs: 235332},
	{Chain: "polygon", Txns: 7223709, Addrs: 514869, DexVol: 190410154, Fees: 217020, NewAddrs: 108933},
	{Chain: "optimism", Txns: 3823880, Addrs: 27706, DexVol: 74216041, Fees: 27804, NewAddrs: 5830},
	{Chain: "bitcoin", Txns: 384550, Addrs: 544569, DexVol: 0, Fees: 378474, NewAddrs: 368067},
}

var TopDexes = []Dex{
	{Name: "Raydium+Jupiter", Chain: "solana", Vol: 9691241905, Color: "#00FFA3"},
	{Name: "PancakeSwap", Chain: "bsc", Vol: 4988826216, Color: "#F0B90B"},
	{Name: "Uniswap", Chain: "ethereum", Vol: 3710111652, Color: "#627EEA"},
	{Name: "Meteora", Chain: "solana", Vol: 2891520892, Color: "#00FFA3"},
	{Name: "Curve Finance", Chain: "ethereum", Vol: 1230951618, Color: "#627EEA"},
	{Name: "Aerodrome", Chain: "base", Vol: 1223951351, Color: "#0052FF"},
	{Name: "Uniswap", Chain: "arbitrum", Vol: 1092778319, Color: "#28A0F0"},
}

var StablecoinDaily = []DailyVolume{
	{Date: "Jan 30", Vol: 317393937018},
	{Date: "Jan 31", Vol: 312562010428},
	{Date: "Feb 1", Vol: 297524768031},
	{Date: "Feb 2", Vol: 647654435578},
	{Date: "Feb 3", Vol: 525627742480},
	{Date: "Feb 4", Vol: 377838820979},
	{Date: "Feb 5", Vol: 1270931005224},
}

var StablecoinSupplyByChain = map[string]StablecoinSupply{
	"ethereum": {USDC: 448.2, USDT: 184.6, DAI: 25.8, Total: 658.6},
	"solana":   {USDC: 234.0, USDT: 16.9, DAI: 0.0003, Total: 250.9},
}
