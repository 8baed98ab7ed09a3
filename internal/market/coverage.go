package market

import (
	"slices"
	"strings"
)

const FilterAll = "all"

// CoverageChain is one row of the chain coverage matrix.
type CoverageChain struct {
	Name      string   `json:"name"`
	ID        string   `json:"id"`
	Tables    int      `json:"tables"`
	Ecosystem string   `json:"ecosystem"`
	Tier      string   `json:"tier"`
	Schemas   []string `json:"schemas"`
	Color     string   `json:"color"`
}

type SchemaInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Desc  string `json:"desc"`
	Color string `json:"color"`
}

var CoverageChains = []CoverageChain{
	{Name: "Ethereum", ID: "ethereum", Tables: 101, Ecosystem: "EVM", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "ens", "yields", "decoded", "liquid_staking", "metrics", "bridges", "prices"}, Color: "#627EEA"},
	{Name: "Polygon", ID: "polygon", Tables: 92, Ecosystem: "EVM", Tier: "L2", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "decoded", "metrics", "bridges"}, Color: "#8247E5"},
	{Name: "Solana", ID: "solana", Tables: 82, Ecosystem: "SVM", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "decoded", "defi", "staking", "predictions", "prices", "bridges", "metrics"}, Color: "#00FFA3"},
	{Name: "Base", ID: "base", Tables: 79, Ecosystem: "EVM", Tier: "L2", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "decoded", "metrics", "bridges"}, Color: "#0052FF"},
	{Name: "Arbitrum", ID: "arbitrum", Tables: 73, Ecosystem: "EVM", Tier: "L2", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "decoded", "metrics", "bridges"}, Color: "#28A0F0"},
	{Name: "Avalanche", ID: "avalanche", Tables: 68, Ecosystem: "EVM", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "decoded", "metrics"}, Color: "#E84142"},
	{Name: "BSC", ID: "bsc", Tables: 61, Ecosystem: "EVM", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "decoded", "metrics"}, Color: "#F0B90B"},
	{Name: "Monad", ID: "monad", Tables: 59, Ecosystem: "EVM", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "decoded", "metrics"}, Color: "#836EF9"},
	{Name: "Optimism", ID: "optimism", Tables: 55, Ecosystem: "EVM", Tier: "L2", Schemas: []string{"raw", "assets", "dex", "lending", "nfts", "decoded", "metrics"}, Color: "#FF0420"},
	{Name: "Linea", ID: "linea", Tables: 49, Ecosystem: "EVM", Tier: "L2", Schemas: []string{"raw", "assets", "dex", "decoded", "metrics"}, Color: "#61DFFF"},
	{Name: "Scroll", ID: "scroll", Tables: 47, Ecosystem: "EVM", Tier: "L2", Schemas: []string{"raw", "assets", "dex", "decoded", "metrics"}, Color: "#FFEEDA"},
	{Name: "zkSync", ID: "zksync", Tables: 35, Ecosystem: "EVM", Tier: "L2", Schemas: []string{"raw", "assets", "dex", "decoded"}, Color: "#8B8DFC"},
	{Name: "Berachain", ID: "berachain", Tables: 36, Ecosystem: "EVM", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "decoded"}, Color: "#784421"},
	{Name: "Tron", ID: "tron", Tables: 29, Ecosystem: "TVM", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "decoded"}, Color: "#FF0013"},
	{Name: "Sui", ID: "sui", Tables: 27, Ecosystem: "Move", Tier: "L1", Schemas: []string{"raw", "assets", "dex", "decoded"}, Color: "#6FBCF0"},
	{Name: "Near", ID: "near", Tables: 26, Ecosystem: "NEAR", Tier: "L1", Schemas: []string{"raw", "assets", "dex"}, Color: "#00C08B"},
	{Name: "Hyperliquid", ID: "hyperliquid", Tables: 23, Ecosystem: "Custom", Tier: "L1", Schemas: []string{"raw", "dex", "metrics"}, Color: "#00FF88"},
	{Name: "Sei", ID: "sei", Tables: 20, Ecosystem: "Cosmos", Tier: "L1", Schemas: []string{"raw", "assets", "dex"}, Color: "#9E1F63"},
	{Name: "Bitcoin", ID: "bitcoin", Tables: 19, Ecosystem: "UTXO", Tier: "L1", Schemas: []string{"raw", "assets", "nfts", "metrics"}, Color: "#F7931A"},
	{Name: "Aptos", ID: "aptos", Tables: 15, Ecosystem: "Move", Tier: "L1", Schemas: []string{"raw", "assets", "dex"}, Color: "#2DD8A3"},
	{Name: "Stellar", ID: "stellar", Tables: 17, Ecosystem: "Stellar", Tier: "L1", Schemas: []string{"raw", "assets"}, Color: "#7C66DC"},
	{Name: "TON", ID: "ton", Tables: 11, Ecosystem: "TON", Tier: "L1", Schemas: []string{"raw", "assets"}, Color: "#0098EA"},
	{Name: "Cosmos", ID: "cosmos", Tables: 10, Ecosystem: "Cosmos", Tier: "L1", Schemas: []string{"raw", "assets"}, Color: "#2E3148"},
	{Name: "Hedera", ID: "hedera", Tables: 10, Ecosystem: "Hashgraph", Tier: "L1", Schemas: []string{"raw", "assets"}, Color: "#222222"},
	{Name: "Cardano", ID: "cardano", Tables: 5, Ecosystem: "UTXO", Tier: "L1", Schemas: []string{"raw", "assets"}, Color: "#0033AD"},
	{Name: "Dogecoin", ID: "dogecoin", Tables: 5, Ecosystem: "UTXO", Tier: "L1", Schemas: []string{"raw", "assets"}, Color: "#C2A633"},
	{Name: "Starknet", ID: "starknet", Tables: 5, Ecosystem: "Cairo", Tier: "L2", Schemas: []string{"raw", "assets"}, Color: "#EC796B"},
	{Name: "XRP Ledger", ID: "xrp_ledger", Tables: 4, Ecosystem: "XRP", Tier: "L1", Schemas: []string{"raw", "assets"}, Color: "#23292F"},
}

var Schemas = map[string]SchemaInfo{
	"raw":            {Label: "Raw Data", Icon: "📦", Desc: "Blocks, transactions, logs, traces", Color: "#627EEA"},
	"assets":         {Label: "Token Transfers", Icon: "💸", Desc: "ERC20, native, fungible transfers with USD values", Color: "#00E39E"},
	"dex":            {Label: "DEX Trades", Icon: "🔄", Desc: "Swaps, pools, liquidity across all DEXes", Color: "#00FFA3"},
	"lending":        {Label: "Lending", Icon: "🏦", Desc: "Borrows, repays, liquidations (Aave, Compound, etc.)", Color: "#B6509E"},
	"nfts":           {Label: "NFTs", Icon: "🖼️", Desc: "Trades, mints, transfers, collections", Color: "#FF6B6B"},
	"decoded":        {Label: "Decoded Logs", Icon: "🔓", Desc: "ABI-decoded event logs and function calls", Color: "#FFA726"},
	"metrics":        {Label: "Metrics", Icon: "📊", Desc: "Pre-computed daily chain & project stats", Color: "#2196F3"},
	"bridges":        {Label: "Bridges", Icon: "🌉", Desc: "Cross-chain bridge transactions", Color: "#9C27B0"},
	"prices":         {Label: "Prices", Icon: "💰", Desc: "DEX-derived token prices, OHLCV", Color: "#FFD700"},
	"yields":         {Label: "Yields", Icon: "🌾", Desc: "Yield farming, staking returns", Color: "#4CAF50"},
	"staking":        {Label: "Staking", Icon: "🥩", Desc: "Validator staking, delegations, rewards", Color: "#FF5722"},
	"ens":            {Label: "ENS", Icon: "🏷️", Desc: "Name registrations, resolutions", Color: "#5284FF"},
	"liquid_staking": {Label: "Liquid Staking", Icon: "💧", Desc: "stETH, rETH derivatives and flows", Color: "#00BCD4"},
	"defi":           {Label: "DeFi", Icon: "🏗️", Desc: "Protocol-specific DeFi data", Color: "#E91E63"},
	"predictions":    {Label: "Predictions", Icon: "🔮", Desc: "Prediction markets data", Color: "#673AB7"},
}

// EcosystemFilters are the ecosystem shortcuts offered by the matrix.
var EcosystemFilters = []string{FilterAll, "EVM", "SVM", "Move", "UTXO", "Cosmos"}

var TierFilters = []string{FilterAll, "L1", "L2"}

// CoverageQuery 覆盖矩阵筛选条件
type CoverageQuery struct {
	Ecosystem string
	Tier      string
	Search    string
	Selected  []string
}

// Selection aggregates the chains the user picked.
type Selection struct {
	Chains      []string `json:"chains"`
	Schemas     []string `json:"schemas"`
	TotalTables int      `json:"total_tables"`
}

// CoverageSummary holds the headline numbers; chain and table totals are marketing figures.
type CoverageSummary struct {
	TotalChains string `json:"total_chains"`
	TotalTables string `json:"total_tables"`
	Ecosystems  int    `json:"ecosystems"`
	Schemas     int    `json:"schemas"`
}

type CoverageView struct {
	Summary          CoverageSummary       `json:"summary"`
	Chains           []CoverageChain       `json:"chains"`
	Selection        Selection             `json:"selection"`
	AllEcosystems    []string              `json:"all_ecosystems"`
	AllSchemas       []string              `json:"all_schemas"`
	EcosystemFilters []string              `json:"ecosystem_filters"`
	TierFilters      []string              `json:"tier_filters"`
	SchemaInfo       map[string]SchemaInfo `json:"schema_info"`
}

// Coverage filters the matrix and aggregates the selected chains.
func Coverage(q CoverageQuery) CoverageView {
	ecosystems, schemas := AllEcosystems(), AllSchemas()
	return CoverageView{
		Summary: CoverageSummary{
			TotalChains: "115+",
			TotalTables: "3,000+",
			Ecosystems:  len(ecosystems),
			Schemas:     len(schemas),
		},
		Chains:           FilterChains(q.Ecosystem, q.Tier, q.Search),
		Selection:        Select(q.Selected),
		AllEcosystems:    ecosystems,
		AllSchemas:       schemas,
		EcosystemFilters: EcosystemFilters,
		TierFilters:      TierFilters,
		SchemaInfo:       Schemas,
	}
}

// FilterChains keeps chains matching the exact ecosystem and tier ("all" or empty
// matches any) whose name contains search, case-insensitively.
func FilterChains(ecosystem, tier, search string) []CoverageChain {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]CoverageChain, 0, len(CoverageChains))
	for _, c := range CoverageChains {
		if ecosystem != "" && ecosystem != FilterAll && c.Ecosystem != ecosystem {
			continue
		}
		if tier != "" && tier != FilterAll && c.Tier != tier {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Toggle adds id to the selection or removes it when already present.
func Toggle(selected []string, id string) []string {
	if i := slices.Index(selected, id); i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1)
	}
	return append(slices.Clone(selected), id)
}

// Select returns the union of schemas and the total table count over the selected ids,
// in matrix order. Unknown ids are ignored.
func Select(ids []string) Selection {
	sel := Selection{Chains: []string{}, Schemas: []string{}}
	for _, c := range CoverageChains {
		if !slices.Contains(ids, c.ID) {
			continue
		}
		sel.Chains = append(sel.Chains, c.ID)
		sel.TotalTables += c.Tables
		for _, s := range c.Schemas {
			if !slices.Contains(sel.Schemas, s) {
				sel.Schemas = append(sel.Schemas, s)
			}
		}
	}
	return sel
}

// AllEcosystems lists distinct ecosystems in order of first appearance.
func AllEcosystems() []string {
	var out []string
	for _, c := range CoverageChains {
		if !slices.Contains(out, c.Ecosystem) {
			out = append(out, c.Ecosystem)
		}
	}
	return out
}

// AllSchemas lists distinct schemas in order of first appearance.
func AllSchemas() []string {
	var out []string
	for _, c := range CoverageChains {
		for _, s := range c.Schemas {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}
