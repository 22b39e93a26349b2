package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/redis/go-redis/v9"
)

// Connect parses the configured URL, applies pool overrides and pings the
// server.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

var transientReplies = []string{"LOADING", "TRYAGAIN", "BUSY"}

// IsTransient reports network timeouts and the server replies that ask the
// client to try again later. Wrapped errors are unwrapped down to the reply.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for ; err != nil; err = errors.Unwrap(err) {
		msg := err.Error()
		for _, prefix := range transientReplies {
			if strings.HasPrefix(msg, prefix) {
				return true
			}
		}
	}
	return false
}
