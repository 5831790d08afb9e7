// Package storage provides the small key-value persistence contract the
// state containers serialize their snapshots into. Writes happen on every
// mutation; reads happen once at startup.
package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is the persistence backend contract. Values are opaque serialized
// snapshots; keys are stable per store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
