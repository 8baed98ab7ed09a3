package data

import (
	"context"
	"errors"

	"github.com/songzhibin97/chainpulse/internal/models"
)

// ErrNotFound is returned by KVStore.Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// WalletSource 钱包数据源
type WalletSource interface {
	// Transactions returns the most recent transactions of an address
	Transactions(ctx context.Context, address, chain string, limit int) ([]models.Transaction, error)

	// Balances returns the raw token balances of an address
	Balances(ctx context.Context, address, chain string) ([]models.Balance, error)
}

// PriceSource 行情数据源
type PriceSource interface {
	Name() string

	// LatestPrices returns partial updates for the tracked assets
	LatestPrices(ctx context.Context) ([]models.PriceUpdate, error)
}

// KVStore 共享键值存储
type KVStore interface {
	// Get returns the value stored under key or ErrNotFound
	Get(ctx context.Context, key string, shared bool) (string, error)

	// Set stores value under key
	Set(ctx context.Context, key, value string, shared bool) error

	// Delete removes key, absent keys are not an error
	Delete(ctx context.Context, key string, shared bool) error

	Close() error
}
