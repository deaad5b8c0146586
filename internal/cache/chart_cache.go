package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/kinopulse/kinopulse/config"
)

// ChartCache keeps rendered PNGs in valkey so repeated chart requests for
// the same movie skip classification and rasterization. A nil *ChartCache is
// a valid no-op cache; callers never need to branch on whether caching is
// configured.
type ChartCache struct {
	client valkey.Client
	ttl    time.Duration
}

func NewChartCache(cfg config.Config) (*ChartCache, error) {
	if !cfg.CacheEnabled || cfg.ValkeyAddr == "" {
		return nil, nil
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{cfg.ValkeyAddr},
		Password:         cfg.ValkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	})
	if err != nil {
		return nil, fmt.Errorf("[ChartCache] failed to create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ChartCache] failed to ping valkey: %w", err)
	}

	slog.Info("[ChartCache] Connected to valkey",
		slog.String("address", cfg.ValkeyAddr),
		slog.Duration("ttl", cfg.CacheTTL))

	return &ChartCache{client: client, ttl: cfg.CacheTTL}, nil
}

func Key(kind string, movieID int) string {
	return fmt.Sprintf("chart:%s:%d", kind, movieID)
}

// Get returns the cached PNG, or false on miss. Cache failures degrade to a
// miss and a log line, never to a request failure.
func (c *ChartCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ChartCache] Lookup failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return data, true
}

func (c *ChartCache) Set(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}

	cmd := c.client.B().Set().Key(key).Value(valkey.BinaryString(data)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		slog.Warn("[ChartCache] Store failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (c *ChartCache) Close() {
	if c != nil {
		c.client.Close()
	}
}
