package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"mayer-monitor/config"
	"mayer-monitor/internal/dto"
	"mayer-monitor/pkg/cache"
	"mayer-monitor/pkg/common"
	"mayer-monitor/pkg/httpclient"
	"mayer-monitor/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type MayerMultipleRepository interface {
	GetMayerReading(ctx context.Context) (*dto.MayerReading, error)
}

type coinGeckoRepository struct {
	cfg           *config.Config
	log           *logger.Logger
	client        httpclient.HTTPClient
	inmemoryCache cache.Cache
}

func NewCoinGeckoRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) MayerMultipleRepository {
	return &coinGeckoRepository{
		cfg:           cfg,
		log:           log,
		client:        httpclient.New(cfg.CoinGecko.BaseURL, cfg.CoinGecko.BaseTimeout, ""),
		inmemoryCache: inmemoryCache,
	}
}

// GetMayerReading fetches the current BTC spot price and the trailing
// 200-day window, then derives the Mayer Multiple. Results are cached
// briefly so status commands do not hammer the API between cycles.
func (r *coinGeckoRepository) GetMayerReading(ctx context.Context) (*dto.MayerReading, error) {
	if val, found := r.inmemoryCache.Get(common.KEY_MAYER_READING); found {
		if reading, ok := val.(*dto.MayerReading); ok {
			return reading, nil
		}
	}

	var (
		currentPrice float64
		movingAvg    float64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		price, err := r.getCurrentPrice(gCtx)
		if err != nil {
			return err
		}
		currentPrice = price
		return nil
	})
	g.Go(func() error {
		ma, err := r.getMovingAverage(gCtx)
		if err != nil {
			return err
		}
		movingAvg = ma
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrFetchFailed, err)
	}

	if movingAvg == 0 {
		return nil, fmt.Errorf("%w: zero moving average", dto.ErrFetchFailed)
	}

	reading := &dto.MayerReading{
		Value:        currentPrice / movingAvg,
		CurrentPrice: currentPrice,
		MovingAvg:    movingAvg,
		Timestamp:    time.Now().UTC(),
	}

	r.inmemoryCache.Set(common.KEY_MAYER_READING, reading, r.cfg.CoinGecko.ResultCacheTTL)
	return reading, nil
}

func (r *coinGeckoRepository) getCurrentPrice(ctx context.Context) (float64, error) {
	var result dto.SimplePriceResponse

	resp, err := r.client.Get(ctx, "/simple/price", map[string]string{
		"ids":           common.ASSET_BITCOIN,
		"vs_currencies": common.VS_CURRENCY,
	}, r.authHeaders(), &result)
	if err != nil {
		return 0, err
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("unexpected status code %d from simple price", resp.StatusCode)
	}

	price, ok := result[common.ASSET_BITCOIN][common.VS_CURRENCY]
	if !ok || price <= 0 {
		return 0, fmt.Errorf("missing %s price in simple price response", common.ASSET_BITCOIN)
	}
	return price, nil
}

func (r *coinGeckoRepository) getMovingAverage(ctx context.Context) (float64, error) {
	var result dto.MarketChartRangeResponse

	window := r.cfg.CoinGecko.MovingAvgWindow
	now := time.Now()
	from := now.AddDate(0, 0, -window)

	resp, err := r.client.Get(ctx, fmt.Sprintf("/coins/%s/market_chart/range", common.ASSET_BITCOIN), map[string]string{
		"vs_currency": common.VS_CURRENCY,
		"from":        strconv.FormatInt(from.Unix(), 10),
		"to":          strconv.FormatInt(now.Unix(), 10),
	}, r.authHeaders(), &result)
	if err != nil {
		return 0, err
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("unexpected status code %d from market chart", resp.StatusCode)
	}

	prices := result.DailyClosePrices()
	if len(prices) < window {
		return 0, fmt.Errorf("not enough historical data for %d-day moving average, got %d samples", window, len(prices))
	}

	var sum float64
	for _, p := range prices[len(prices)-window:] {
		sum += p
	}
	return sum / float64(window), nil
}

func (r *coinGeckoRepository) authHeaders() map[string]string {
	if r.cfg.CoinGecko.APIKey == "" {
		return nil
	}
	return map[string]string{"x-cg-demo-api-key": r.cfg.CoinGecko.APIKey}
}
