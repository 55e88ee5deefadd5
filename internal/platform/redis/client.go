// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the client layer to an optional Redis server.

The only consumer is the query cache bus: processes sharing one backend publish
refreshed keys on a channel so every other process refetches them too.

Core Responsibilities:

  - Connection: URL parsing, pool sizing and timeouts tuned for pub/sub.
  - Health: A startup ping so misconfiguration fails fast.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

/*
NewClient parses a Redis URL and returns a connected client.

Parameters:
  - context: context.Context (bounds the initial ping)
  - redisURL: string (e.g. "redis://localhost:6379/0")
  - logger: *slog.Logger

Returns:
  - *redis.Client: Ready client, owned by the caller
  - error: Invalid URL or failed ping
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	// Pub/sub holds one dedicated connection; publishes need very few more.
	options.PoolSize = 4
	options.MinIdleConns = 1

	options.DialTimeout = dialTimeout
	options.WriteTimeout = writeTimeout
	// Subscribers block on reads indefinitely.
	options.ReadTimeout = -1

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)

	return client, nil
}

// Ping verifies that the Redis server answers.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
