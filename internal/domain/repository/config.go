package repository

import "context"

// ConfigRepository stores small string key/value configuration entries.
type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}
