package service

import (
	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/model"
	"mayer-monitor/pkg/utils"
)

// Evaluate maps one Mayer Multiple reading and the prior rolling state to a
// trading signal and the next state. It is pure and total over well-formed
// readings; malformed values are rejected upstream by MayerReading.Validate.
//
// Rules:
//   - value < 1.0            → BUY, streak resets (a BUY day is never a SELL-streak day)
//   - value > 2.4            → streak advances once per calendar day;
//     SELL once the streak reaches 7, HOLD until then
//   - 1.0 <= value <= 2.4    → HOLD, streak resets
//
// Re-running on the same calendar date never advances the streak twice.
func Evaluate(reading dto.MayerReading, prior model.RollingState) (dto.Signal, model.RollingState) {
	next := prior
	next.LastEvaluatedDate = utils.DateOnly(reading.Timestamp)
	next.LastValue = reading.Value

	var signal dto.Signal
	switch {
	case reading.Value < dto.BuyThreshold:
		signal = dto.SignalBuy
		next.ConsecutiveDaysAboveSellThreshold = 0

	case reading.Value > dto.SellThreshold:
		alreadyCounted := prior.Evaluated() && utils.SameDate(prior.LastEvaluatedDate, reading.Timestamp)
		if !alreadyCounted {
			next.ConsecutiveDaysAboveSellThreshold = prior.ConsecutiveDaysAboveSellThreshold + 1
		}
		if next.ConsecutiveDaysAboveSellThreshold >= dto.SellStreakDays {
			signal = dto.SignalSell
		} else {
			signal = dto.SignalHold
		}

	default:
		signal = dto.SignalHold
		next.ConsecutiveDaysAboveSellThreshold = 0
	}

	next.LastSignal = string(signal)
	return signal, next
}
