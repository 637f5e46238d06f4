package repository

import "context"

// CacheRepository is a string key-value store used to cache serialized
// bracket schedules. Entries are written once and never mutated.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
