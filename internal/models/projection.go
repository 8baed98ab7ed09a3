package models

// ProjectionEntry 预测日志条目
type ProjectionEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Years     string `json:"years"`
	BTC       string `json:"btc"`
	ETH       string `json:"eth"`
	SOL       string `json:"sol"`
	Reason    string `json:"reason"`
}

// AssetProjection is the projected outcome for one asset.
type AssetProjection struct {
	Asset       string  `json:"asset"`
	Name        string  `json:"name"`
	Increase    float64 `json:"increase"`
	Current     float64 `json:"current"`
	Projected   float64 `json:"projected"`
	Gain        float64 `json:"gain"`
	Multiplier  float64 `json:"multiplier"`
	FutureValue float64 `json:"future_value"`
	Profit      float64 `json:"profit"`
}

// Celebration is the banner shown next to a submitted projection.
type Celebration struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	GIF   string `json:"gif"`
}

// ProjectionResult 提交结果
type ProjectionResult struct {
	Entry       ProjectionEntry   `json:"entry"`
	Projections []AssetProjection `json:"projections"`
	Celebration Celebration       `json:"celebration"`
	Log         []ProjectionEntry `json:"log"`
	Persisted   bool              `json:"persisted"`
}
