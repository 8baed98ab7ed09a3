package wallet

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/songzhibin97/chainpulse/internal/data"
	"github.com/songzhibin97/chainpulse/internal/models"
)

const (
	minAddressLength = 10
	transactionLimit = 10
	maxBalances      = 10

	DefaultChain = "ethereum"

	DemoAdvisory = "Using demo data (Allium API not reachable from this environment)"
)

var ErrAddressTooShort = errors.New("address must be at least 10 characters")

// TxView is a transaction with the fields the lookup panel renders.
type TxView struct {
	models.Transaction
	Direction     string `json:"direction"` // received / sent
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	DisplayAmount string `json:"display_amount"`
	Counterparty  string `json:"counterparty"`
	ShortCounter  string `json:"counterparty_short"`
	ShortHash     string `json:"hash_short"`
	ExplorerURL   string `json:"explorer_url"`
	TimeAgo       string `json:"time_ago,omitempty"`
}

// LookupResult 钱包查询结果
type LookupResult struct {
	Address      string           `json:"address"`
	Chain        string           `json:"chain"`
	Transactions []TxView         `json:"transactions"`
	Balances     []models.Balance `json:"balances"`
	Demo         bool             `json:"demo"`
	Advisory     string           `json:"advisory,omitempty"`
}

type Service struct {
	source data.WalletSource
	logger *slog.Logger
	now    func() time.Time
}

func NewService(source data.WalletSource, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Lookup fetches transactions and balances in parallel. Demo transactions are
// substituted only when both requests fail; when just transactions are missing the
// demo set is still displayed but flagged.
func (s *Service) Lookup(ctx context.Context, address, chain string) (*LookupResult, error) {
	address = strings.TrimSpace(address)
	if len(address) < minAddressLength {
		return nil, ErrAddressTooShort
	}
	if chain == "" {
		chain = DefaultChain
	}

	var (
		txs           []models.Transaction
		balances      []models.Balance
		txErr, balErr error
		g             errgroup.Group
	)

	g.Go(func() error {
		txs, txErr = s.source.Transactions(ctx, address, chain, transactionLimit)
		return nil
	})
	g.Go(func() error {
		balances, balErr = s.source.Balances(ctx, address, chain)
		return nil
	})
	_ = g.Wait()

	result := &LookupResult{Address: address, Chain: chain}

	if txErr != nil {
		s.logger.Warn("failed to fetch wallet transactions", "address", address, "chain", chain, "err", txErr)
	}
	if balErr != nil {
		s.logger.Warn("failed to fetch wallet balances", "address", address, "chain", chain, "err", balErr)
	}

	if txErr != nil && balErr != nil {
		result.Advisory = DemoAdvisory
	}

	if txErr == nil && len(txs) > 0 {
		result.Transactions = s.views(txs, chain)
	} else {
		result.Transactions = s.views(DemoTransactions(), chain)
		result.Demo = true
	}

	if balErr == nil {
		result.Balances = TopBalances(balances)
	}

	return result, nil
}

// TopBalances keeps positive balances sorted by USD value, largest first, at most 10.
func TopBalances(in []models.Balance) []models.Balance {
	out := make([]models.Balance, 0, len(in))
	for _, b := range in {
		if b.Amount > 0 {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].USDValue > out[j].USDValue
	})

	if len(out) > maxBalances {
		out = out[:maxBalances]
	}
	return out
}

func (s *Service) views(txs []models.Transaction, chain string) []TxView {
	now := s.now()
	views := make([]TxView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, NewTxView(tx, chain, now))
	}
	return views
}

// NewTxView derives the display fields of tx as seen at now.
func NewTxView(tx models.Transaction, chain string, now time.Time) TxView {
	v := TxView{
		Transaction:   tx,
		Direction:     "sent",
		Symbol:        "???",
		DisplayAmount: "0",
		ShortHash:     ShortenAddress(tx.Hash),
		ExplorerURL:   ExplorerURL(chain, tx.Hash),
	}

	if len(tx.AssetTransfers) > 0 {
		t := tx.AssetTransfers[0]
		if t.TransferType == "received" {
			v.Direction = "received"
		}
		if t.Asset.Symbol != "" {
			v.Symbol = t.Asset.Symbol
		}
		v.Name = t.Asset.Name
		v.DisplayAmount = DisplayAmount(t.Amount.AmountStr)
	}
	if v.Name == "" {
		v.Name = v.Symbol
	}

	if v.Direction == "received" {
		v.Counterparty = tx.FromAddress
	} else {
		v.Counterparty = tx.ToAddress
	}
	v.ShortCounter = ShortenAddress(v.Counterparty)

	if ts, ok := ParseTimestamp(tx.BlockTimestamp); ok {
		v.TimeAgo = TimeAgo(ts, now)
	}

	return v
}
