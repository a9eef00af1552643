package telegram

import (
	"context"
	"net/http"
	"time"

	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/model"
	"mayer-monitor/pkg/logger"

	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"
)

const commonErrorInternal = "⚠️ Something went wrong, please try again later."

var (
	btnToggleNotify  = telebot.Btn{Unique: "btn_toggle_notify"}
	btnDeleteMessage = telebot.Btn{Text: "🗑️ Close", Unique: "btn_delete_message"}
)

func (t *TelegramBotHandler) WithContext(handler func(ctx context.Context, c telebot.Context) error) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(t.ctx, 2*time.Minute)
		defer cancel()

		t.ensureUser(ctx, c)
		return handler(ctx, c)
	}
}

func (t *TelegramBotHandler) RegisterHandlers() {
	t.echo.POST("/api/v1/telegram/webhook", func(c echo.Context) error {
		var update telebot.Update
		if err := c.Bind(&update); err != nil {
			t.log.ErrorContext(t.ctx, "Cannot bind JSON", logger.ErrorField(err))
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		}
		t.bot.ProcessUpdate(update)
		return c.JSON(http.StatusOK, dto.NewBaseResponse(http.StatusOK, "ok", nil))
	})

	t.bot.Handle("/start", t.WithContext(t.handleStart))
	t.bot.Handle("/help", t.WithContext(t.handleHelp))
	t.bot.Handle("/status", t.WithContext(t.handleStatus))
	t.bot.Handle("/notify", t.WithContext(t.handleNotify))
	t.bot.Handle(&btnToggleNotify, t.WithContext(t.handleBtnToggleNotify))
	t.bot.Handle(&btnDeleteMessage, t.WithContext(t.handleBtnDeleteMessage))
}

// ensureUser registers the sender on first contact so the preference
// toggle always has a row to flip.
func (t *TelegramBotHandler) ensureUser(ctx context.Context, c telebot.Context) {
	sender := c.Sender()
	if sender == nil || sender.IsBot {
		return
	}

	err := t.service.TelegramBotService.EnsureUser(ctx, &model.User{
		TelegramID: sender.ID,
		Username:   sender.Username,
		FirstName:  sender.FirstName,
		LastName:   sender.LastName,
	})
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to ensure user", logger.ErrorField(err), logger.Field("telegram_id", sender.ID))
	}
}

func (t *TelegramBotHandler) handleStart(ctx context.Context, c telebot.Context) error {
	message := `👋 *Welcome to the Mayer Multiple monitor!* 🤖
I watch the Bitcoin Mayer Multiple (price / 200-day moving average) once a day and ping you when the threshold rules fire.

🔧 Commands:

📊 /status - Current price, 200-day MA, Mayer Multiple and signal
🔔 /notify - Turn BUY/SELL notifications on or off

💡 Info & help:
🆘 /help - Full usage guide
🔁 /start - Show this message again

🚀 *Ready?* Try /status to see where the market stands.`
	return c.Send(message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}

func (t *TelegramBotHandler) handleHelp(ctx context.Context, c telebot.Context) error {
	message := `❓ *Mayer Multiple monitor guide* ❓

The Mayer Multiple is the current BTC price divided by its 200-day moving average.

🤖 *Commands:*
/start - Welcome message
/help - This guide
/status - Current reading and signal
/notify - Toggle BUY/SELL notifications

📐 *Signal rules:*
🚀 BUY when the multiple drops below 1.0
📉 SELL when the multiple stays above 2.4 for 7 consecutive days
⏳ HOLD otherwise

📌 Signals are a reference, not financial advice — *Do Your Own Research!* 🔍`
	return c.Send(message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}

func (t *TelegramBotHandler) handleBtnDeleteMessage(ctx context.Context, c telebot.Context) error {
	return t.telegram.Delete(ctx, c, c.Message())
}
