// Package store holds the persisted state containers behind the storefront
// screens: the cart, the local order ledger and the signed-in user. Each
// container keeps its snapshot in memory, writes it to the KV backend on
// every mutation and reloads it once at construction.
package store

import (
	"context"
	"time"
)

// Persistence keys, kept stable across releases so existing snapshots
// rehydrate after an upgrade.
const (
	cartStorageKey   = "cart-storage"
	ordersStorageKey = "orders-storage"
	userStorageKey   = "user-storage"
)

const persistTimeout = time.Second

func persistCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), persistTimeout)
}
