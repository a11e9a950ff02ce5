// Package metadata stores small local key/value settings such as the access
// token.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyLastSync    = "last_sync"
)

type Repository interface {
	// Get returns the value for key, or nil when the key is not set.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
