package repository

import (
	"mayer-monitor/config"
	"mayer-monitor/pkg/cache"
	"mayer-monitor/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	MayerMultipleRepo MayerMultipleRepository
	SignalStateRepo   SignalStateRepository
	UserRepo          UserRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		MayerMultipleRepo: NewCoinGeckoRepository(cfg, log, inmemoryCache),
		SignalStateRepo:   NewSignalStateRepository(db),
		UserRepo:          NewUserRepository(db),
	}, nil
}
