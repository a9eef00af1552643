package telegram

import (
	"context"
	"strconv"
	"strings"

	"mayer-monitor/pkg/logger"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleNotify(ctx context.Context, c telebot.Context) error {
	telegramID := c.Sender().ID

	enabled, err := t.service.TelegramBotService.GetNotificationPreference(ctx, telegramID)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to get notification preference", logger.ErrorField(err))
		t.telegram.Send(ctx, c, commonErrorInternal)
		return err
	}

	sb := strings.Builder{}
	sb.WriteString("<b>🔔 Signal notifications</b>\n")
	sb.WriteString("\n")
	sb.WriteString("When <b>ON</b>, you receive a message whenever the daily evaluation fires a BUY or SELL signal.\n")
	sb.WriteString("\n")
	if enabled {
		sb.WriteString("Current setting: ✅ <b>ON</b>\n")
	} else {
		sb.WriteString("Current setting: ❌ <b>OFF</b>\n")
	}
	sb.WriteString("\n")
	sb.WriteString("👉 Use the button below to change it:\n")

	toggleText := "Turn ON ✅"
	if enabled {
		toggleText = "Turn OFF ❌"
	}

	menu := &telebot.ReplyMarkup{}
	btnToggle := menu.Data(toggleText, btnToggleNotify.Unique, strconv.FormatBool(!enabled))
	menu.Inline(
		menu.Row(btnToggle),
		menu.Row(menu.Data(btnDeleteMessage.Text, btnDeleteMessage.Unique)),
	)

	msgExist := c.Message()
	if msgExist != nil && msgExist.Sender != nil && msgExist.Sender.ID == t.bot.Me.ID {
		_, err = t.telegram.Edit(ctx, c, msgExist, sb.String(), menu, telebot.ModeHTML)
		return err
	}

	_, err = t.telegram.Send(ctx, c, sb.String(), menu, telebot.ModeHTML)
	return err
}

func (t *TelegramBotHandler) handleBtnToggleNotify(ctx context.Context, c telebot.Context) error {
	enabled, err := strconv.ParseBool(c.Data())
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to parse notify toggle data", logger.ErrorField(err))
		t.telegram.Send(ctx, c, commonErrorInternal)
		return err
	}

	telegramID := c.Sender().ID

	if err := t.service.TelegramBotService.SetNotificationPreference(ctx, telegramID, enabled); err != nil {
		t.log.ErrorContext(ctx, "Failed to set notification preference", logger.ErrorField(err))
		t.telegram.Send(ctx, c, commonErrorInternal)
		return err
	}

	text := "✅ Signal notifications are now <b>enabled</b>"
	if !enabled {
		text = "❌ Signal notifications are now <b>disabled</b>"
	}
	text += "\n\n<i>Use /notify to change this again.</i>"

	_, err = t.telegram.Edit(ctx, c, c.Message(), text, telebot.ModeHTML)
	return err
}
