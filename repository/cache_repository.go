package repository

import "context"

// CacheRepository stores serialized projections. Implementations must be safe
// for concurrent use; a miss is reported with ok == false, never an error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
