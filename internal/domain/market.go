package domain

// PriceTrend labels the recent direction of an item's price.
type PriceTrend string

const (
	TrendStable  PriceTrend = "stable"
	TrendRising  PriceTrend = "rising"
	TrendFalling PriceTrend = "falling"
)

// MarketItemKey identifies a priced item as "category.item"
// (e.g. "harvest.maize"); scalar categories use the bare category name.
type MarketItemKey string

// MarketTrend is one row of the trend report.
type MarketTrend struct {
	Category     ResourceCategory `json:"category"`
	Item         string           `json:"item"`
	BasePrice    float64          `json:"base_price"`
	CurrentPrice float64          `json:"current_price"`
	Change       string           `json:"change"`
	Trend        PriceTrend       `json:"trend"`
}

// PriceSnapshot is one day's recorded market prices.
type PriceSnapshot struct {
	Day    int                       `json:"day"`
	Prices map[MarketItemKey]float64 `json:"prices"`
}

// MarketState is the serializable state of the market subsystem.
type MarketState struct {
	PriceModifiers map[MarketItemKey]float64    `json:"price_modifiers"`
	Trends         map[MarketItemKey]PriceTrend `json:"trends"`
	PriceHistory   []PriceSnapshot              `json:"price_history,omitempty"`
}
