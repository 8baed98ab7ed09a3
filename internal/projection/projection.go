package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/songzhibin97/chainpulse/internal/data"
	"github.com/songzhibin97/chainpulse/internal/models"
)

const (
	// LogKey is the shared key every instance reads and writes.
	LogKey = "allium-projection-log"

	MaxEntries   = 20
	DefaultYears = "3"
	notGiven     = "N/A"

	hypotheticalStake = 10000.0

	// MissingReasonMessage is shown when a projection comes without a reason.
	MissingReasonMessage = "Don't forget to tell us WHY this will happen!"
)

var (
	ErrNoProjection  = errors.New("enter at least one projected increase")
	ErrMissingReason = errors.New("projection reason is required")
	ErrInvalidInput  = errors.New("invalid projection input")
)

var validYears = []string{"2", "3", "4", "5"}

var celebrations = []models.Celebration{
	{Text: "MONEY PRINTER GO BRRRR", Color: "#00E39E"},
	{Text: "TO THE MOON!", Color: "#F7931A"},
	{Text: "STONKS ONLY GO UP", Color: "#627EEA"},
	{Text: "WE'RE ALL GONNA MAKE IT", Color: "#00FFA3"},
	{Text: "GENERATIONAL WEALTH", Color: "#FFA726"},
}

var gifIDs = []string{
	"67ThRZlYBvibtMA4AP", "xTiTnqUxyWbsAXq7Ju", "3o6ZtpxSZbQRRnwCKQ", "l0HlQ7LRalQqdWfao",
	"26BRBKqUiq586bRVm", "3ohzdIuqJoo8QdKlnW", "artj92V8o75VPL7AeQ", "KzDqC8LvVC4lshCcGK",
	"l0K4mbH4lKBhAPFU4", "Y2ZUWLrTy63j9T6qrK", "3oEdva9BUHPIs2SkGk",
}

// PriceLookup supplies the current price a projection starts from.
type PriceLookup interface {
	Price(asset string) float64
}

// Submission is one what-if form post. Increases are percent strings, empty when skipped.
type Submission struct {
	Years  string `json:"years"`
	BTC    string `json:"btc"`
	ETH    string `json:"eth"`
	SOL    string `json:"sol"`
	Reason string `json:"reason"`
}

// Service 预测日志服务
type Service struct {
	store  data.KVStore
	prices PriceLookup
	logger *slog.Logger
	now    func() time.Time

	// serializes read-modify-write of the shared log within this process
	mu sync.Mutex
}

func NewService(store data.KVStore, prices PriceLookup, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		prices: prices,
		logger: logger,
		now:    time.Now,
	}
}

// Submit validates the form, appends the entry to the shared log and returns the
// projected outcome. A store failure is logged and reported through Persisted.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.ProjectionResult, error) {
	increases := map[string]string{
		models.AssetBitcoin:  strings.TrimSpace(sub.BTC),
		models.AssetEthereum: strings.TrimSpace(sub.ETH),
		models.AssetSolana:   strings.TrimSpace(sub.SOL),
	}

	given := 0
	pcts := make(map[string]float64, len(increases))
	for asset, raw := range increases {
		if raw == "" {
			continue
		}
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s increase %q", ErrInvalidInput, asset, raw)
		}
		pcts[asset] = pct
		given++
	}
	if given == 0 {
		return nil, ErrNoProjection
	}
	if strings.TrimSpace(sub.Reason) == "" {
		return nil, ErrMissingReason
	}

	years := strings.TrimSpace(sub.Years)
	if years == "" {
		years = DefaultYears
	}
	if !slices.Contains(validYears, years) {
		return nil, fmt.Errorf("%w: years must be 2-5, got %q", ErrInvalidInput, years)
	}

	entry := models.ProjectionEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now().Format(time.RFC3339),
		Years:     years,
		BTC:       orNotGiven(increases[models.AssetBitcoin]),
		ETH:       orNotGiven(increases[models.AssetEthereum]),
		SOL:       orNotGiven(increases[models.AssetSolana]),
		Reason:    sub.Reason,
	}

	log, persisted := s.append(ctx, entry)

	result := &models.ProjectionResult{
		Entry:       entry,
		Celebration: randomCelebration(),
		Log:         log,
		Persisted:   persisted,
	}
	for _, a := range models.TrackedAssets {
		pct, ok := pcts[a.ID]
		if !ok {
			continue
		}
		p := Project(s.prices.Price(a.ID), pct)
		p.Asset, p.Name = a.ID, a.Name
		result.Projections = append(result.Projections, p)
	}

	s.logger.Info("projection submitted",
		"years", entry.Years, "btc", entry.BTC, "eth", entry.ETH, "sol", entry.SOL, "persisted", persisted)

	return result, nil
}

func (s *Service) append(ctx context.Context, entry models.ProjectionEntry) ([]models.ProjectionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		// 读取失败时不覆盖共享日志
		return []models.ProjectionEntry{entry}, false
	}
	updated := append([]models.ProjectionEntry{entry}, current...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		s.logger.Error("failed to encode projection log", "err", err)
		return updated, false
	}
	if err := s.store.Set(ctx, LogKey, string(raw), true); err != nil {
		s.logger.Error("failed to save projection log", "err", err)
		return updated, false
	}
	return updated, true
}

// Log returns the shared log, newest first. Missing or unreadable logs are empty.
func (s *Service) Log(ctx context.Context) []models.ProjectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load(ctx)
	if err != nil {
		return []models.ProjectionEntry{}
	}
	return entries
}

// load reads the shared log. A missing or undecodable log is empty; only store read
// failures are returned.
func (s *Service) load(ctx context.Context) ([]models.ProjectionEntry, error) {
	raw, err := s.store.Get(ctx, LogKey, true)
	if errors.Is(err, data.ErrNotFound) {
		return []models.ProjectionEntry{}, nil
	}
	if err != nil {
		s.logger.Error("failed to load projection log", "err", err)
		return nil, fmt.Errorf("failed to load projection log: %w", err)
	}

	var entries []models.ProjectionEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Error("failed to decode projection log", "err", err)
		return []models.ProjectionEntry{}, nil
	}
	return entries, nil
}

// Clear deletes the shared log.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, LogKey, true); err != nil {
		return fmt.Errorf("failed to clear projection log: %w", err)
	}
	return nil
}

// Project applies a percent increase to current and values a $10,000 stake.
func Project(current, pct float64) models.AssetProjection {
	p := models.AssetProjection{
		Increase:  pct,
		Current:   current,
		Projected: current * (1 + pct/100),
	}
	p.Gain = p.Projected - p.Current
	if current > 0 {
		p.Multiplier = p.Projected / current
		p.FutureValue = hypotheticalStake * p.Projected / current
		p.Profit = p.FutureValue - hypotheticalStake
	}
	return p
}

func randomCelebration() models.Celebration {
	c := celebrations[rand.IntN(len(celebrations))]
	c.GIF = "https://media.giphy.com/media/" + gifIDs[rand.IntN(len(gifIDs))] + "/giphy.gif"
	return c
}

func orNotGiven(s string) string {
	if s == "" {
		return notGiven
	}
	return s
}
