package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mayer-monitor/config"
	"mayer-monitor/internal/dto"
	"mayer-monitor/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	values map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]interface{})}
}

func (f *fakeCache) Set(key string, value interface{}, duration time.Duration) {
	f.values[key] = value
}

func (f *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeCache) Delete(key string) { delete(f.values, key) }
func (f *fakeCache) Flush()            { f.values = make(map[string]interface{}) }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func newCoinGeckoTestServer(t *testing.T, spotPrice float64, chartPrices []float64, status int) *httptest.Server {
	t.Helper()

	e := echo.New()
	e.GET("/simple/price", func(c echo.Context) error {
		if status != http.StatusOK {
			return c.NoContent(status)
		}
		return c.JSON(http.StatusOK, map[string]map[string]float64{
			"bitcoin": {"usd": spotPrice},
		})
	})
	e.GET("/coins/bitcoin/market_chart/range", func(c echo.Context) error {
		if status != http.StatusOK {
			return c.NoContent(status)
		}
		pairs := make([][]float64, 0, len(chartPrices))
		now := time.Now().UnixMilli()
		for i, p := range chartPrices {
			pairs = append(pairs, []float64{float64(now - int64(len(chartPrices)-i)*86400000), p})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"prices": pairs})
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func newTestRepo(t *testing.T, baseURL string, window int) MayerMultipleRepository {
	t.Helper()
	cfg := &config.Config{}
	cfg.CoinGecko.BaseURL = baseURL
	cfg.CoinGecko.BaseTimeout = 5 * time.Second
	cfg.CoinGecko.ResultCacheTTL = time.Minute
	cfg.CoinGecko.MovingAvgWindow = window
	return NewCoinGeckoRepository(cfg, testLogger(t), newFakeCache())
}

func TestGetMayerReading_DerivesMultipleFromSpotAndMovingAverage(t *testing.T) {
	// 5-day window averaging to 10000, spot at 25000 → multiple of 2.5.
	server := newCoinGeckoTestServer(t, 25000, []float64{8000, 9000, 10000, 11000, 12000}, http.StatusOK)

	reading, err := newTestRepo(t, server.URL, 5).GetMayerReading(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2.5, reading.Value, 1e-9)
	assert.InDelta(t, 25000, reading.CurrentPrice, 1e-9)
	assert.InDelta(t, 10000, reading.MovingAvg, 1e-9)
	assert.False(t, reading.Timestamp.IsZero())
	require.NoError(t, reading.Validate())
}

func TestGetMayerReading_UsesOnlyTrailingWindow(t *testing.T) {
	// Extra leading samples must be ignored: the trailing 4 average to 1000.
	server := newCoinGeckoTestServer(t, 2400, []float64{50000, 60000, 700, 900, 1100, 1300}, http.StatusOK)

	reading, err := newTestRepo(t, server.URL, 4).GetMayerReading(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2.4, reading.Value, 1e-9)
}

func TestGetMayerReading_ShortHistoryIsFetchError(t *testing.T) {
	server := newCoinGeckoTestServer(t, 25000, []float64{10000, 10000}, http.StatusOK)

	_, err := newTestRepo(t, server.URL, 5).GetMayerReading(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrFetchFailed)
}

func TestGetMayerReading_UpstreamErrorIsFetchError(t *testing.T) {
	server := newCoinGeckoTestServer(t, 0, nil, http.StatusServiceUnavailable)

	_, err := newTestRepo(t, server.URL, 5).GetMayerReading(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrFetchFailed)
}

func TestGetMayerReading_SecondCallServedFromCache(t *testing.T) {
	server := newCoinGeckoTestServer(t, 25000, []float64{10000, 10000, 10000, 10000, 10000}, http.StatusOK)
	repo := newTestRepo(t, server.URL, 5)

	first, err := repo.GetMayerReading(context.Background())
	require.NoError(t, err)

	server.Close()

	second, err := repo.GetMayerReading(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
