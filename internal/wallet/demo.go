package wallet

import "github.com/songzhibin97/chainpulse/internal/models"

// ExampleWallets are offered as one-click lookups.
var ExampleWallets = []models.ExampleWallet{
	{Label: "Donald Trump", Address: "0x94845333028B1204Fbe14E1278Fd4Adde46B22ce", Chain: "ethereum"},
	{Label: "Vitalik Buterin", Address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", Chain: "ethereum"},
	{Label: "Justin Sun", Address: "0x176F3DAb24a159341c0509bB36B833E7fdd0a132", Chain: "ethereum"},
	{Label: "Coinbase", Address: "0x503828976D22510aad0201ac7EC88293211D23Da", Chain: "ethereum"},
}

func demoTransfer(symbol, name, assetType string, decimals int, amountStr string, amount float64) []models.AssetTransfer {
	return []models.AssetTransfer{{
		TransferType: "received",
		Asset:        models.Asset{Type: assetType, Symbol: symbol, Name: name, Decimals: decimals},
		Amount:       models.Amount{AmountStr: amountStr, Amount: amount},
	}}
}

// DemoTransactions returns the fixed transaction set shown when the analytics API is
// unreachable. A fresh slice is returned on every call.
func DemoTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Hash:           "0xba2b8b31...3be9eb",
			BlockTimestamp: "2026-02-05T16:31:47",
			FromAddress:    "0x74c10e4bbe847d68ce02a9abb4bab8dbedfd4675",
			ToAddress:      "0xd714a9c3836edd56198576ebfbc8d23ea3cb405e",
			Labels:         []string{"transfer"},
			AssetTransfers: demoTransfer("CTO", "Ethereum CTO", "evm_erc20", 9, "1000000", 1000000),
		},
		{
			Hash:           "0x5b0d81ba...1b898",
			BlockTimestamp: "2026-02-05T13:43:47",
			FromAddress:    "0xf8fc9a91349ebd2033d53f2b97245102f00aba96",
			ToAddress:      "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			Labels:         []string{"transfer"},
			AssetTransfers: demoTransfer("ETH", "Ether", "native", 18, "0.000505", 0.000505),
		},
		{
			Hash:           "0x92434a46...1b383d",
			BlockTimestamp: "2026-02-05T09:43:23",
			FromAddress:    "0xb063b093f7cd53165b4e7d32ff85803ae0572ea9",
			ToAddress:      "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			Labels:         []string{"transfer"},
			AssetTransfers: demoTransfer("ETH", "Ether", "native", 18, "0.000000001", 1e-9),
		},
		{
			Hash:           "0x67852cbf...c4bbb0",
			BlockTimestamp: "2026-02-05T09:42:47",
			FromAddress:    "0xb06896fbc28370a70b86bda84db0931f09f99ea9",
			ToAddress:      "0x761d38e5ddf6ccf6cf7c55759d5210750b5d60f3",
			Labels:         []string{"transfer"},
			AssetTransfers: demoTransfer("ELON", "Dogelon", "evm_erc20", 18, "0.0000666", 0.0000666),
		},
		{
			Hash:           "0xd5efd7dc...7d69c",
			BlockTimestamp: "2026-02-05T09:40:35",
			FromAddress:    "0xf250259b35bda8c3e1b3f0b46ce4cd9b503c865b",
			ToAddress:      "0x761d38e5ddf6ccf6cf7c55759d5210750b5d60f3",
			Labels:         []string{"transfer"},
			AssetTransfers: demoTransfer("ELON", "Dogelon", "evm_erc20", 18, "0.0000666", 0.0000666),
		},
	}
}
