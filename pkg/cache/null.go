package cache

import (
	"context"
	"time"
)

// NullCache drops every artifact, so each render is encoded afresh. The CLI
// uses it for --no-cache and whenever the cache directory is unusable.
type NullCache struct{}

func NewNullCache() Cache { return &NullCache{} }

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                    { return nil }
func (*NullCache) Close() error                                            { return nil }
