package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/chainpulse/internal/configs"
	"github.com/songzhibin97/chainpulse/internal/models"
)

type countingPrices struct {
	calls atomic.Int32
	err   error
}

func (c *countingPrices) Refresh(ctx context.Context) error {
	c.calls.Add(1)
	return c.err
}

type countingFeed struct {
	refreshes atomic.Int32
	injects   atomic.Int32
}

func (f *countingFeed) Refresh(ctx context.Context) string {
	f.refreshes.Add(1)
	return "simulated"
}

func (f *countingFeed) Inject() (models.WhaleTrade, bool) {
	f.injects.Add(1)
	return models.WhaleTrade{Chain: models.AssetBitcoin, USD: 1e6}, true
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestScheduler_StartStop(t *testing.T) {
	prices := &countingPrices{err: errors.New("upstream down")}
	feed := &countingFeed{}

	s := New(Intervals{
		Prices:    time.Second,
		Whales:    time.Minute,
		InjectMin: 10 * time.Millisecond,
		InjectMax: 20 * time.Millisecond,
	}, prices, feed, discard)

	require.NoError(t, s.Start(context.Background()))
	assert.Error(t, s.Start(context.Background()), "double start")

	assert.Eventually(t, func() bool { return prices.calls.Load() >= 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return feed.refreshes.Load() >= 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return feed.injects.Load() >= 3 }, time.Second, 10*time.Millisecond)

	s.Stop()
	stopped := feed.injects.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, stopped, feed.injects.Load())

	// second stop is a no-op
	s.Stop()
}

func TestScheduler_PriceTicks(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for cron ticks")
	}

	prices := &countingPrices{}
	s := New(Intervals{Prices: time.Second, InjectMin: time.Second, InjectMax: time.Second}, prices, nil, discard)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return prices.calls.Load() >= 3 }, 4*time.Second, 50*time.Millisecond)
}

func TestScheduler_ParentCancel(t *testing.T) {
	feed := &countingFeed{}
	ctx, cancel := context.WithCancel(context.Background())

	s := New(Intervals{Whales: time.Minute, InjectMin: 5 * time.Millisecond, InjectMax: 5 * time.Millisecond}, nil, feed, discard)
	require.NoError(t, s.Start(ctx))

	assert.Eventually(t, func() bool { return feed.injects.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after parent cancel")
	}
}

func TestNextInjectDelay(t *testing.T) {
	s := New(Intervals{InjectMin: 3 * time.Second, InjectMax: 6 * time.Second}, nil, nil, discard)
	for i := 0; i < 1000; i++ {
		d := s.nextInjectDelay()
		assert.GreaterOrEqual(t, d, 3*time.Second)
		assert.LessOrEqual(t, d, 6*time.Second)
	}

	fixed := New(Intervals{InjectMin: 2 * time.Second, InjectMax: time.Second}, nil, nil, discard)
	assert.Equal(t, 2*time.Second, fixed.nextInjectDelay())
}

func TestIntervalsFromConfig(t *testing.T) {
	cfg := configs.Default()
	got := IntervalsFromConfig(cfg)
	assert.Equal(t, Intervals{
		Prices:    time.Second,
		Whales:    60 * time.Second,
		InjectMin: 3 * time.Second,
		InjectMax: 6 * time.Second,
	}, got)

	cfg.Prices.RefreshInterval = "bogus"
	cfg.Whales.InjectMax = "10s"
	got = IntervalsFromConfig(cfg)
	assert.Equal(t, time.Second, got.Prices)
	assert.Equal(t, 10*time.Second, got.InjectMax)
}

func TestEvery(t *testing.T) {
	assert.Equal(t, "@every 1s", every(time.Second))
	assert.Equal(t, "@every 1m0s", every(time.Minute))
}
