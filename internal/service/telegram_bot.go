package service

import (
	"context"

	"mayer-monitor/config"
	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/model"
	"mayer-monitor/internal/repository"
	"mayer-monitor/pkg/logger"
)

type TelegramBotService interface {
	GetStatus(ctx context.Context) (*dto.SignalStatus, error)
	EnsureUser(ctx context.Context, user *model.User) error
	GetNotificationPreference(ctx context.Context, telegramID int64) (bool, error)
	SetNotificationPreference(ctx context.Context, telegramID int64, enabled bool) error
}

type telegramBotService struct {
	cfg      *config.Config
	log      *logger.Logger
	monitor  MonitorService
	userRepo repository.UserRepository
}

func NewTelegramBotService(
	cfg *config.Config,
	log *logger.Logger,
	monitor MonitorService,
	userRepo repository.UserRepository,
) TelegramBotService {
	return &telegramBotService{
		cfg:      cfg,
		log:      log,
		monitor:  monitor,
		userRepo: userRepo,
	}
}

func (s *telegramBotService) GetStatus(ctx context.Context) (*dto.SignalStatus, error) {
	return s.monitor.GetStatus(ctx)
}

func (s *telegramBotService) EnsureUser(ctx context.Context, user *model.User) error {
	return s.userRepo.EnsureUser(ctx, user)
}

func (s *telegramBotService) GetNotificationPreference(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.userRepo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.NotificationsEnabled, nil
}

func (s *telegramBotService) SetNotificationPreference(ctx context.Context, telegramID int64, enabled bool) error {
	return s.userRepo.SetNotificationsEnabled(ctx, telegramID, enabled)
}
