package dto

type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

const (
	// Mayer Multiple thresholds, fixed by the strategy.
	BuyThreshold  = 1.0
	SellThreshold = 2.4

	// The SELL signal only fires after this many consecutive calendar
	// days above SellThreshold.
	SellStreakDays = 7
)
