// Package store implements the on-device account store: a durable
// key-value table holding the serialized account collection, the session
// marker and a few auxiliary entries (login prefill, profile photo).
package store

import "context"

// KV is a durable string-keyed byte store. Get returns (nil, nil) for an
// absent key: absence and emptiness are indistinguishable by design.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
