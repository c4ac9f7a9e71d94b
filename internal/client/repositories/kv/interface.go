// Package kv is the key/value view of the local state database. It plays
// the part of the browser's localStorage: string keys, opaque values,
// no schema beyond that.
package kv

import "context"

// Well-known keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyThemeMode    = "themeMode"
)

// Repository reads and writes single keys. Get returns (nil, nil) for an
// absent key; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
