package telegram

import (
	"context"
	"fmt"
	"strings"

	"mayer-monitor/internal/dto"
	"mayer-monitor/pkg/logger"
	"mayer-monitor/pkg/utils"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleStatus(ctx context.Context, c telebot.Context) error {
	status, err := t.service.TelegramBotService.GetStatus(ctx)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to get signal status", logger.ErrorField(err))
		_, err = t.telegram.Send(ctx, c, "❌ Could not fetch the Mayer Multiple right now, please try again later.")
		return err
	}

	sb := strings.Builder{}
	sb.WriteString("<b>📊 Mayer Multiple Status</b>\n")
	sb.WriteString(fmt.Sprintf("<i>📅 %s</i>\n", utils.PrettyDate(status.Reading.Timestamp)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("💰 <b>BTC Price</b>: $%.2f\n", status.Reading.CurrentPrice))
	sb.WriteString(fmt.Sprintf("📊 <b>200-day MA</b>: $%.2f\n", status.Reading.MovingAvg))
	sb.WriteString(fmt.Sprintf("📈 <b>Mayer Multiple</b>: %.2f\n", status.Reading.Value))
	sb.WriteString("\n")

	switch status.Signal {
	case dto.SignalBuy:
		sb.WriteString("🚀 <b>BUY</b>: Mayer Multiple is below 1.0\n")
	case dto.SignalSell:
		sb.WriteString(fmt.Sprintf("📉 <b>SELL</b>: above 2.4 for %d consecutive days\n", status.Streak))
	default:
		sb.WriteString("⏳ <b>HOLD</b>\n")
		if status.Streak > 0 {
			sb.WriteString(fmt.Sprintf("🔥 Streak above 2.4: %d of %d days\n", status.Streak, dto.SellStreakDays))
		}
	}

	menu := &telebot.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data(btnDeleteMessage.Text, btnDeleteMessage.Unique)))

	_, err = t.telegram.Send(ctx, c, sb.String(), menu, telebot.ModeHTML)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to send status", logger.ErrorField(err))
		t.telegram.Send(ctx, c, commonErrorInternal)
		return err
	}
	return nil
}
