// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package ratelimit throttles per-client message rates with token
// buckets. Each client ID owns a bucket that refills continuously at
// a fixed rate up to a burst capacity.
package ratelimit

import (
	"sync"
	"time"
)

const (
	defaultMaxClients = 10000
	evictionInterval  = 5 * time.Minute
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// take refills the bucket for the elapsed time and consumes a token
// if one is available. Caller holds the limiter lock.
func (b *bucket) take(capacity, refillRate float64, now time.Time) bool {
	b.tokens += now.Sub(b.lastSeen).Seconds() * refillRate
	if b.tokens > capacity {
		b.tokens = capacity
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Limiter tracks one token bucket per client ID. Buckets for clients
// that have been idle longer than the eviction interval are reclaimed
// in the background.
type Limiter struct {
	capacity   float64
	refillRate float64
	maxClients int

	mu      sync.Mutex
	buckets map[string]*bucket

	stop chan struct{}
	done chan struct{}
}

// NewLimiter creates a limiter allowing bursts of capacity messages
// and a sustained rate of refillRate messages per second per client.
// maxClients caps the number of tracked buckets; zero selects the
// default. Call Close to release the eviction goroutine.
func NewLimiter(capacity, refillRate int64, maxClients int) *Limiter {
	if maxClients <= 0 {
		maxClients = defaultMaxClients
	}

	l := &Limiter{
		capacity:   float64(capacity),
		refillRate: float64(refillRate),
		maxClients: maxClients,
		buckets:    make(map[string]*bucket),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go l.evictLoop()

	return l
}

// Allow reports whether the client may send one more message. An
// unknown client gets a full bucket unless the client cap is reached,
// in which case the message is refused.
func (l *Limiter) Allow(clientID string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[clientID]
	if !ok {
		if len(l.buckets) >= l.maxClients {
			return false
		}
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[clientID] = b
	}

	return b.take(l.capacity, l.refillRate, now)
}

// Remove drops the client's bucket, usually on disconnect.
func (l *Limiter) Remove(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, clientID)
}

// Close stops the background eviction and waits for it to exit.
func (l *Limiter) Close() {
	close(l.stop)
	<-l.done
}

func (l *Limiter) evictLoop() {
	defer close(l.done)

	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			l.evictIdle(now)
		case <-l.stop:
			return
		}
	}
}

// evictIdle reclaims buckets whose clients have not sent anything for
// a full eviction interval. Their next message starts a fresh bucket.
func (l *Limiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) >= evictionInterval {
			delete(l.buckets, id)
		}
	}
}
