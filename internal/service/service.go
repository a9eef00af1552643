package service

import (
	"mayer-monitor/config"
	"mayer-monitor/internal/repository"
	"mayer-monitor/pkg/cache"
	"mayer-monitor/pkg/logger"
	"mayer-monitor/pkg/telegram"
)

type Service struct {
	MonitorService     MonitorService
	SchedulerService   SchedulerService
	NotifierService    NotifierService
	TelegramBotService TelegramBotService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	telegram *telegram.RateLimiter,
) *Service {
	notifierService := NewNotifierService(cfg, log, repo.UserRepo, telegram, inmemoryCache)
	monitorService := NewMonitorService(cfg, log, repo.MayerMultipleRepo, repo.SignalStateRepo, notifierService, inmemoryCache)
	schedulerService := NewSchedulerService(cfg, log, monitorService)
	telegramBotService := NewTelegramBotService(cfg, log, monitorService, repo.UserRepo)

	return &Service{
		MonitorService:     monitorService,
		SchedulerService:   schedulerService,
		NotifierService:    notifierService,
		TelegramBotService: telegramBotService,
	}
}
