// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package querycache

import (
	stdctx "context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/civicdesk/pkg/uuid"
)

// # Redis Bus

// RedisBus broadcasts refreshed keys over a Redis pub/sub channel.
//
// Each bus tags its messages with a random origin so a process never re-applies
// its own refreshes.
type RedisBus struct {
	client  *redis.Client
	channel string
	origin  string
}

// NewRedisBus creates a [RedisBus] publishing on channel.
func NewRedisBus(client *redis.Client, channel string) *RedisBus {
	return &RedisBus{
		client:  client,
		channel: channel,
		origin:  uuid.New(),
	}
}

/*
Publish announces that key was refreshed.

Parameters:
  - context: context.Context
  - key: Key

Returns:
  - error: Connectivity errors
*/
func (bus *RedisBus) Publish(context stdctx.Context, key Key) error {
	if err := bus.client.Publish(context, bus.channel, encodeMessage(bus.origin, key)).Err(); err != nil {
		return fmt.Errorf("redis_cache_publish_failed: %w", err)
	}
	return nil
}

// Subscribe implements [Bus]. It returns nil when context ends.
func (bus *RedisBus) Subscribe(context stdctx.Context, handler func(Key)) error {
	subscription := bus.client.Subscribe(context, bus.channel)
	defer subscription.Close()

	// Wait for the subscription confirmation so early publishes are not lost.
	if _, err := subscription.Receive(context); err != nil {
		if context.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis_cache_subscribe_failed: %w", err)
	}

	messages := subscription.Channel()
	for {
		select {
		case <-context.Done():
			return nil
		case message, open := <-messages:
			if !open {
				return nil
			}
			origin, key, ok := decodeMessage(message.Payload)
			if !ok || origin == bus.origin {
				continue
			}
			handler(key)
		}
	}
}

// encodeMessage produces "<origin>|<key>".
func encodeMessage(origin string, key Key) string {
	return origin + "|" + string(key)
}

func decodeMessage(payload string) (string, Key, bool) {
	origin, key, found := strings.Cut(payload, "|")
	if !found || key == "" {
		return "", "", false
	}
	return origin, Key(key), true
}
