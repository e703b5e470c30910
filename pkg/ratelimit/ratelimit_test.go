// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterAllowBurst(t *testing.T) {
	l := NewLimiter(3, 1, 0)
	defer l.Close()

	for i := 0; i < 3; i++ {
		if !l.Allow("client-1") {
			t.Fatalf("message %d within burst capacity refused", i+1)
		}
	}
	if l.Allow("client-1") {
		t.Error("message beyond burst capacity allowed")
	}
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(1, 1, 0)
	defer l.Close()

	if !l.Allow("client-1") {
		t.Fatal("first message from client-1 refused")
	}
	if l.Allow("client-1") {
		t.Error("client-1 exceeded its bucket")
	}
	if !l.Allow("client-2") {
		t.Error("client-2 refused while only client-1 is exhausted")
	}
}

func TestLimiterMaxClients(t *testing.T) {
	l := NewLimiter(1, 1, 2)
	defer l.Close()

	if !l.Allow("client-1") {
		t.Fatal("first client refused")
	}
	if !l.Allow("client-2") {
		t.Fatal("second client refused")
	}
	if l.Allow("client-3") {
		t.Error("client beyond the cap allowed")
	}

	l.Remove("client-1")
	if !l.Allow("client-3") {
		t.Error("client refused after a slot was freed")
	}
}

func TestLimiterRemoveResetsBucket(t *testing.T) {
	l := NewLimiter(1, 1, 0)
	defer l.Close()

	if !l.Allow("client-1") {
		t.Fatal("first message refused")
	}
	if l.Allow("client-1") {
		t.Fatal("bucket not exhausted")
	}

	l.Remove("client-1")
	if !l.Allow("client-1") {
		t.Error("reconnected client refused")
	}
}

func TestBucketRefill(t *testing.T) {
	now := time.Now()
	b := &bucket{tokens: 0, lastSeen: now}

	if b.take(5, 2, now) {
		t.Fatal("empty bucket yielded a token")
	}
	if !b.take(5, 2, now.Add(time.Second)) {
		t.Error("bucket empty after one second at 2 tokens/s")
	}
}

func TestBucketRefillCapsAtCapacity(t *testing.T) {
	now := time.Now()
	b := &bucket{tokens: 0, lastSeen: now}

	// A long idle stretch must not accumulate beyond the burst size.
	now = now.Add(time.Hour)
	for i := 0; i < 5; i++ {
		if !b.take(5, 1, now) {
			t.Fatalf("token %d within capacity refused", i+1)
		}
	}
	if b.take(5, 1, now) {
		t.Error("token beyond capacity granted")
	}
}

func TestEvictIdle(t *testing.T) {
	l := NewLimiter(1, 1, 0)
	defer l.Close()

	if !l.Allow("client-1") {
		t.Fatal("first message refused")
	}

	l.evictIdle(time.Now().Add(evictionInterval))

	l.mu.Lock()
	_, ok := l.buckets["client-1"]
	l.mu.Unlock()
	if ok {
		t.Error("idle bucket survived eviction")
	}
}
