package dto

// SimplePriceResponse maps /simple/price?ids=bitcoin&vs_currencies=usd.
type SimplePriceResponse map[string]map[string]float64

// MarketChartRangeResponse maps /coins/{id}/market_chart/range.
// Each entry is a [timestamp_ms, value] pair.
type MarketChartRangeResponse struct {
	Prices [][]float64 `json:"prices"`
}

// DailyClosePrices flattens the price pairs into values only.
func (m MarketChartRangeResponse) DailyClosePrices() []float64 {
	prices := make([]float64, 0, len(m.Prices))
	for _, pair := range m.Prices {
		if len(pair) < 2 {
			continue
		}
		prices = append(prices, pair[1])
	}
	return prices
}
