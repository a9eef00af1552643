package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mayer-monitor/config"
	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/repository"
	"mayer-monitor/pkg/cache"
	"mayer-monitor/pkg/common"
	"mayer-monitor/pkg/logger"
	"mayer-monitor/pkg/utils"

	"gopkg.in/telebot.v3"
)

type NotifierService interface {
	NotifySignal(ctx context.Context, status *dto.SignalStatus) (int, error)
}

// MessageSender is the delivery transport for outgoing notifications,
// satisfied by the rate-limited Telegram wrapper.
type MessageSender interface {
	SendMessageUser(ctx context.Context, message string, chatID int64, opts ...interface{}) error
}

type notifierService struct {
	cfg           *config.Config
	log           *logger.Logger
	userRepo      repository.UserRepository
	telegram      MessageSender
	inmemoryCache cache.Cache
}

func NewNotifierService(
	cfg *config.Config,
	log *logger.Logger,
	userRepo repository.UserRepository,
	telegram MessageSender,
	inmemoryCache cache.Cache,
) NotifierService {
	return &notifierService{
		cfg:           cfg,
		log:           log,
		userRepo:      userRepo,
		telegram:      telegram,
		inmemoryCache: inmemoryCache,
	}
}

// NotifySignal fans the BUY/SELL message out to every opted-in user. A
// delivery failure for one recipient is logged and never blocks the rest.
// Each recipient receives the same signal at most once per calendar day,
// marked per recipient only after a successful send, so a re-run of the
// cycle retries failed deliveries without spamming the rest. The day is
// taken from the wall clock rather than the reading timestamp, because a
// cached reading fetched just before midnight carries the previous date.
func (s *notifierService) NotifySignal(ctx context.Context, status *dto.SignalStatus) (int, error) {
	if status.Signal != dto.SignalBuy && status.Signal != dto.SignalSell {
		return 0, nil
	}

	users, err := s.userRepo.GetOptedInUsers(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get opted-in users", logger.ErrorField(err))
		return 0, err
	}

	if len(users) == 0 {
		s.log.DebugContext(ctx, "No user to notify")
		return 0, nil
	}

	message := s.formatSignalMessage(status)
	today := utils.FormatDate(time.Now().UTC())

	sent, skipped := 0, 0
	for _, user := range users {
		if !utils.ShouldContinue(ctx) {
			s.log.WarnContext(ctx, "Notification fan-out cancelled", logger.ErrorField(ctx.Err()))
			break
		}
		dedupKey := fmt.Sprintf(common.KEY_LAST_SENT_SIGNAL, status.Signal, today, user.TelegramID)
		if _, alreadySent := s.inmemoryCache.Get(dedupKey); alreadySent {
			skipped++
			continue
		}
		if errSend := s.telegram.SendMessageUser(ctx, message, user.TelegramID, telebot.ModeHTML); errSend != nil {
			s.log.ErrorContext(ctx, "Failed to send signal notification",
				logger.ErrorField(fmt.Errorf("%w: %v", dto.ErrNotifyUser, errSend)),
				logger.Field("telegram_id", user.TelegramID),
			)
			continue
		}
		s.inmemoryCache.Set(dedupKey, true, 24*time.Hour)
		sent++
	}

	s.log.InfoContext(ctx, "Signal notification fan-out completed",
		logger.StringField("signal", string(status.Signal)),
		logger.IntField("recipients", len(users)),
		logger.IntField("sent", sent),
		logger.IntField("skipped", skipped),
	)
	return sent, nil
}

func (s *notifierService) formatSignalMessage(status *dto.SignalStatus) string {
	sb := strings.Builder{}

	sb.WriteString("<b>Mayer Multiple Update</b>\n")
	sb.WriteString(fmt.Sprintf("<i>%s</i>\n", utils.PrettyDate(status.Reading.Timestamp)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("💰 <b>BTC Price</b>: $%.2f\n", status.Reading.CurrentPrice))
	sb.WriteString(fmt.Sprintf("📊 <b>200-day MA</b>: $%.2f\n", status.Reading.MovingAvg))
	sb.WriteString(fmt.Sprintf("📈 <b>Mayer Multiple</b>: %.2f\n", status.Reading.Value))
	sb.WriteString("\n")

	switch status.Signal {
	case dto.SignalBuy:
		sb.WriteString(fmt.Sprintf("🚀 <b>BUY SIGNAL</b>: Mayer Multiple is below %.1f\n", dto.BuyThreshold))
	case dto.SignalSell:
		sb.WriteString(fmt.Sprintf("📉 <b>SELL SIGNAL</b>: Mayer Multiple has stayed above %.1f for %d consecutive days\n",
			dto.SellThreshold, status.Streak))
	}

	sb.WriteString("\n")
	sb.WriteString("👉 <i>Use /notify to manage these notifications</i>")
	return sb.String()
}
