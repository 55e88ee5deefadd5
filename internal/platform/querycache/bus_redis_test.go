// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package querycache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestBusMessage_RoundTrip verifies the "<origin>|<key>" wire format and rejection of malformed payloads.
*/
func TestBusMessage_RoundTrip(t *testing.T) {
	origin, key, ok := decodeMessage(encodeMessage("proc-a", "organization:images:org-1"))
	assert.True(t, ok)
	assert.Equal(t, "proc-a", origin)
	assert.Equal(t, Key("organization:images:org-1"), key)

	tests := []string{"", "no-separator", "proc-a|"}
	for _, payload := range tests {
		_, _, ok := decodeMessage(payload)
		assert.False(t, ok, payload)
	}
}

const testChannel = "civicdesk:test-refresh"

func newTestBus(t *testing.T, server *miniredis.Miniredis) *RedisBus {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBus(client, testChannel)
}

func waitForSubscribers(t *testing.T, server *miniredis.Miniredis, count int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return server.PubSubNumSub(testChannel)[testChannel] == count
	}, 2*time.Second, 10*time.Millisecond)
}

func receive(t *testing.T, keys <-chan Key) Key {
	t.Helper()

	select {
	case key := <-keys:
		return key
	case <-time.After(2 * time.Second):
		t.Fatal("no key delivered")
		return ""
	}
}

/*
TestRedisBus_DeliversToOtherProcesses verifies that a published key reaches every
other bus, never the publishing one, and that Subscribe returns when its context ends.
*/
func TestRedisBus_DeliversToOtherProcesses(t *testing.T) {
	server := miniredis.RunT(t)
	origin, other := newTestBus(t, server), newTestBus(t, server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	originKeys, otherKeys := make(chan Key, 4), make(chan Key, 4)
	done := make(chan error, 2)
	go func() { done <- origin.Subscribe(ctx, func(key Key) { originKeys <- key }) }()
	go func() { done <- other.Subscribe(ctx, func(key Key) { otherKeys <- key }) }()
	waitForSubscribers(t, server, 2)

	require.NoError(t, origin.Publish(ctx, "organization:images:org-123"))
	assert.Equal(t, Key("organization:images:org-123"), receive(t, otherKeys))

	// Messages arrive in order, so the origin seeing this key proves it skipped its own.
	require.NoError(t, other.Publish(ctx, "organization:detail:org-123"))
	assert.Equal(t, Key("organization:detail:org-123"), receive(t, originKeys))
	assert.Empty(t, otherKeys)

	cancel()
	for range 2 {
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("subscribe did not stop")
		}
	}
}

/*
TestCache_ListenAppliesRemoteRefresh verifies that a refresh published by another
process refetches the local query and notifies its subscribers.
*/
func TestCache_ListenAppliesRemoteRefresh(t *testing.T) {
	server := miniredis.RunT(t)
	remote := newTestBus(t, server)

	cache := New(Options{Bus: newTestBus(t, server)})
	key := Compose("group", "detail", "group-123")

	var fetches atomic.Int32
	_, err := cache.Query(context.Background(), key, func(context.Context) (any, error) {
		return int(fetches.Add(1)), nil
	})
	require.NoError(t, err)

	values := make(chan any, 1)
	unsubscribe := cache.Subscribe(key, func(value any, _ error) { values <- value })
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cache.Listen(ctx) }()
	waitForSubscribers(t, server, 1)

	require.NoError(t, remote.Publish(ctx, key))

	select {
	case value := <-values:
		assert.Equal(t, 2, value)
	case <-time.After(2 * time.Second):
		t.Fatal("remote refresh not applied")
	}

	cancel()
	assert.NoError(t, <-done)
}
