package wallet

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

	"github.com/songzhibin97/chainpulse/internal/models"
)

type mockSource struct {
	txs      []models.Transaction
	txErr    error
	balances []models.Balance
	balErr   error
	calls    int32
}

func (m *mockSource) Transactions(ctx context.Context, address, chain string, limit int) ([]models.Transaction, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.txs, m.txErr
}

func (m *mockSource) Balances(ctx context.Context, address, chain string) ([]models.Balance, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.balances, m.balErr
}

func newTestService(src *mockSource) *Service {
	s := NewService(src, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return time.Date(2026, 2, 5, 17, 31, 47, 0, time.UTC) }
	return s
}

var realTx = models.Transaction{
	Hash:           "0x1111111111111111111111111111111111111111111111111111111111111111",
	BlockTimestamp: "2026-02-05T17:30:47Z",
	FromAddress:    "0xaaaa000000000000000000000000000000000001",
	ToAddress:      "0xbbbb000000000000000000000000000000000002",
	AssetTransfers: []models.AssetTransfer{{
		TransferType: "sent",
		Asset:        models.Asset{Symbol: "USDC", Name: "USD Coin"},
		Amount:       models.Amount{AmountStr: "1234567.123456789", Amount: 1234567.123456789},
	}},
}

func TestService_Lookup(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name         string
		src          *mockSource
		wantDemo     bool
		wantAdvisory bool
		wantTxs      int
		wantBalances int
	}{
		{
			name:         "both succeed",
			src:          &mockSource{txs: []models.Transaction{realTx}, balances: []models.Balance{{Symbol: "ETH", Amount: 1, USDValue: 2000}}},
			wantTxs:      1,
			wantBalances: 1,
		},
		{
			name:         "both fail uses demo with advisory",
			src:          &mockSource{txErr: boom, balErr: boom},
			wantDemo:     true,
			wantAdvisory: true,
			wantTxs:      5,
		},
		{
			name:         "transactions fail balances succeed",
			src:          &mockSource{txErr: boom, balances: []models.Balance{{Symbol: "ETH", Amount: 1}}},
			wantDemo:     true,
			wantTxs:      5,
			wantBalances: 1,
		},
		{
			name:    "balances fail transactions succeed",
			src:     &mockSource{txs: []models.Transaction{realTx}, balErr: boom},
			wantTxs: 1,
		},
		{
			name:     "empty transactions displayed as demo",
			src:      &mockSource{},
			wantDemo: true,
			wantTxs:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.src)
			res, err := svc.Lookup(context.Background(), "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "")
			require.NoError(t, err)

			assert.Equal(t, int32(2), tt.src.calls)
			assert.Equal(t, "ethereum", res.Chain)
			assert.Equal(t, tt.wantDemo, res.Demo)
			assert.Equal(t, tt.wantAdvisory, res.Advisory == DemoAdvisory)
			assert.Len(t, res.Transactions, tt.wantTxs)
			assert.Len(t, res.Balances, tt.wantBalances)
		})
	}
}

func TestService_LookupShortAddress(t *testing.T) {
	src := &mockSource{}
	svc := newTestService(src)

	_, err := svc.Lookup(context.Background(), "  0x123  ", "ethereum")
	assert.ErrorIs(t, err, ErrAddressTooShort)
	assert.Zero(t, src.calls)
}

func TestTopBalances(t *testing.T) {
	in := []models.Balance{
		{Symbol: "ZERO", Amount: 0, USDValue: 1e9},
		{Symbol: "NEG", Amount: -1, USDValue: 1e9},
	}
	for i := 0; i < 12; i++ {
		in = append(in, models.Balance{Symbol: string(rune('A' + i)), Amount: 1, USDValue: float64(i)})
	}

	out := TopBalances(in)
	require.Len(t, out, 10)
	assert.Equal(t, "L", out[0].Symbol)
	assert.Equal(t, 11.0, out[0].USDValue)
	assert.Equal(t, 2.0, out[9].USDValue)
	for _, b := range out {
		assert.Greater(t, b.Amount, 0.0)
	}
}

func TestNewTxView(t *testing.T) {
	now := time.Date(2026, 2, 5, 17, 31, 47, 0, time.UTC)

	v := NewTxView(realTx, "ethereum", now)
	assert.Equal(t, "sent", v.Direction)
	assert.Equal(t, "USDC", v.Symbol)
	assert.Equal(t, "USD Coin", v.Name)
	assert.Equal(t, "1,234,567.123457", v.DisplayAmount)
	assert.Equal(t, realTx.ToAddress, v.Counterparty)
	assert.Equal(t, "0xbbbb…0002", v.ShortCounter)
	assert.Equal(t, "https://etherscan.io/tx/"+realTx.Hash, v.ExplorerURL)
	assert.Equal(t, "1m ago", v.TimeAgo)

	demo := NewTxView(DemoTransactions()[1], "ethereum", now)
	assert.Equal(t, "received", demo.Direction)
	assert.Equal(t, "0.000505", demo.DisplayAmount)
	assert.Equal(t, "0xf8fc…ba96", demo.ShortCounter)
	assert.Equal(t, "3h ago", demo.TimeAgo)

	empty := NewTxView(models.Transaction{Hash: "0xabc"}, "solana", now)
	assert.Equal(t, "???", empty.Symbol)
	assert.Equal(t, "???", empty.Name)
	assert.Equal(t, "0", empty.DisplayAmount)
	assert.Equal(t, "https://solscan.io/tx/0xabc", empty.ExplorerURL)
	assert.Empty(t, empty.TimeAgo)
}

func TestFormatHelpers(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 5 * time.Second, want: "5s ago"},
		{ago: 59 * time.Second, want: "59s ago"},
		{ago: 2 * time.Minute, want: "2m ago"},
		{ago: 3 * time.Hour, want: "3h ago"},
		{ago: 49 * time.Hour, want: "2d ago"},
		{ago: -time.Minute, want: "0s ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now))
	}

	assert.Equal(t, "0x9484…22ce", ShortenAddress("0x94845333028B1204Fbe14E1278Fd4Adde46B22ce"))
	assert.Equal(t, "short", ShortenAddress("short"))

	assert.Equal(t, "1000000", DisplayAmount("1000000"))
	assert.Equal(t, "0.000000001", DisplayAmount("0.000000001"))
	assert.Equal(t, "0.000001", DisplayAmount("0.0000006666666"))
	assert.Equal(t, "100,000,000,000,000", DisplayAmount("100000000000000"))
	assert.Equal(t, "not-a-number-at-all", DisplayAmount("not-a-number-at-all"))
	assert.Equal(t, "0", DisplayAmount(""))

	_, ok := ParseTimestamp("yesterday")
	assert.False(t, ok)
	ts, ok := ParseTimestamp("2026-02-05 09:40:35")
	require.True(t, ok)
	assert.Equal(t, 9, ts.Hour())
}
