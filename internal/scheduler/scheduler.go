package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/songzhibin97/chainpulse/internal/configs"
	"github.com/songzhibin97/chainpulse/internal/models"
)

// PriceRefresher runs one price poll.
type PriceRefresher interface {
	Refresh(ctx context.Context) error
}

// WhaleFeed is the part of the whale feed driven by timers.
type WhaleFeed interface {
	Refresh(ctx context.Context) string
	Inject() (models.WhaleTrade, bool)
}

// Intervals 定时任务间隔
type Intervals struct {
	Prices    time.Duration
	Whales    time.Duration
	InjectMin time.Duration
	InjectMax time.Duration
}

// IntervalsFromConfig reads the job intervals, falling back to 1s / 60s / 3-6s.
func IntervalsFromConfig(cfg *configs.Config) Intervals {
	return Intervals{
		Prices:    configs.Duration(cfg.Prices.RefreshInterval, time.Second),
		Whales:    configs.Duration(cfg.Whales.RefreshInterval, 60*time.Second),
		InjectMin: configs.Duration(cfg.Whales.InjectMin, 3*time.Second),
		InjectMax: configs.Duration(cfg.Whales.InjectMax, 6*time.Second),
	}
}

// Scheduler owns every background timer of the service.
type Scheduler struct {
	intervals Intervals
	prices    PriceRefresher
	whales    WhaleFeed
	logger    *slog.Logger

	cron   *cron.Cron
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

func New(intervals Intervals, prices PriceRefresher, whales WhaleFeed, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		intervals: intervals,
		prices:    prices,
		whales:    whales,
		logger:    logger,
	}
}

// Start runs the first refresh of each job immediately, then schedules them. Ticks may
// overlap when a poll is slower than its interval.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("scheduler already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	c := cron.New(
		cron.WithLogger(cronLogger{logger: s.logger}),
		cron.WithChain(cron.Recover(cronLogger{logger: s.logger})),
	)

	if s.prices != nil {
		if _, err := c.AddFunc(every(s.intervals.Prices), func() { s.refreshPrices(ctx) }); err != nil {
			cancel()
			return fmt.Errorf("failed to schedule price refresh: %w", err)
		}
		s.goInitial(func() { s.refreshPrices(ctx) })
	}

	if s.whales != nil {
		if _, err := c.AddFunc(every(s.intervals.Whales), func() { s.refreshWhales(ctx) }); err != nil {
			cancel()
			return fmt.Errorf("failed to schedule whale refresh: %w", err)
		}
		s.goInitial(func() { s.refreshWhales(ctx) })

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runInjector(ctx)
		}()
	}

	c.Start()

	s.cron = c
	s.cancel = cancel
	s.running = true

	s.logger.Info("scheduler started",
		"prices", s.intervals.Prices, "whales", s.intervals.Whales,
		"inject_min", s.intervals.InjectMin, "inject_max", s.intervals.InjectMax)

	return nil
}

// Stop cancels in-flight jobs and waits for running ones to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()

	s.running = false
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) goInitial(run func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		run()
	}()
}

func (s *Scheduler) refreshPrices(ctx context.Context) {
	if err := s.prices.Refresh(ctx); err != nil && ctx.Err() == nil {
		s.logger.Debug("price refresh failed", "err", err)
	}
}

func (s *Scheduler) refreshWhales(ctx context.Context) {
	source := s.whales.Refresh(ctx)
	s.logger.Debug("whale feed refreshed", "source", source)
}

// runInjector adds a simulated trade after a random delay in [InjectMin, InjectMax],
// re-drawn after every tick.
func (s *Scheduler) runInjector(ctx context.Context) {
	for {
		timer := time.NewTimer(s.nextInjectDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if t, ok := s.whales.Inject(); ok {
				s.logger.Debug("injected simulated trade", "chain", t.Chain, "usd", t.USD)
			}
		}
	}
}

func (s *Scheduler) nextInjectDelay() time.Duration {
	lo, hi := s.intervals.InjectMin, s.intervals.InjectMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int64N(int64(hi-lo)+1))
}

func every(d time.Duration) string {
	return "@every " + d.String()
}

// cronLogger routes cron's logs through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"err", err}, keysAndValues...)...)
}
