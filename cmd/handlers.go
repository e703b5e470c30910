// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"sync"
	"time"

	"github.com/absmach/mbridge/pkg/errors"
	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/identity"
	"github.com/absmach/mbridge/pkg/metrics"
	"github.com/absmach/mbridge/pkg/ratelimit"
)

// instrumentedHandler wraps a handler with Prometheus metrics. It keeps
// a per-session record of connect times: OnDisconnect fires for every
// teardown, including connections that never passed AuthConnect, and
// only sessions that actually connected may move the gauge.
type instrumentedHandler struct {
	next handler.Handler
	m    *metrics.Metrics

	mu        sync.Mutex
	connected map[string]time.Time
}

var _ handler.Handler = (*instrumentedHandler)(nil)

func newInstrumentedHandler(next handler.Handler, m *metrics.Metrics) handler.Handler {
	return &instrumentedHandler{
		next:      next,
		m:         m,
		connected: make(map[string]time.Time),
	}
}

func (h *instrumentedHandler) AuthConnect(ctx context.Context, hctx *handler.Context) error {
	err := h.next.AuthConnect(ctx, hctx)
	h.m.ObserveAuth(hctx.Protocol, "connect", err)
	return err
}

func (h *instrumentedHandler) AuthPublish(ctx context.Context, hctx *handler.Context, topic *string, payload *[]byte) error {
	err := h.next.AuthPublish(ctx, hctx, topic, payload)
	h.m.ObserveAuth(hctx.Protocol, "publish", err)
	return err
}

func (h *instrumentedHandler) AuthSubscribe(ctx context.Context, hctx *handler.Context, topics *[]string) error {
	err := h.next.AuthSubscribe(ctx, hctx, topics)
	h.m.ObserveAuth(hctx.Protocol, "subscribe", err)
	return err
}

func (h *instrumentedHandler) OnConnect(ctx context.Context, hctx *handler.Context) error {
	h.mu.Lock()
	h.connected[hctx.SessionID] = time.Now()
	h.mu.Unlock()

	h.m.ActiveConnections.WithLabelValues(hctx.Protocol).Inc()
	h.m.ConnectionsTotal.WithLabelValues(hctx.Protocol, "success").Inc()
	return h.next.OnConnect(ctx, hctx)
}

func (h *instrumentedHandler) OnPublish(ctx context.Context, hctx *handler.Context, topic string, payload []byte) error {
	err := h.next.OnPublish(ctx, hctx, topic, payload)
	if err == nil {
		h.m.MessagesRelayed.WithLabelValues("mqtt_to_bus").Inc()
	}
	return err
}

func (h *instrumentedHandler) OnSubscribe(ctx context.Context, hctx *handler.Context, topics []string) error {
	return h.next.OnSubscribe(ctx, hctx, topics)
}

func (h *instrumentedHandler) OnUnsubscribe(ctx context.Context, hctx *handler.Context, topics []string) error {
	return h.next.OnUnsubscribe(ctx, hctx, topics)
}

func (h *instrumentedHandler) OnClientError(ctx context.Context, hctx *handler.Context, err error) error {
	h.m.ConnectionsTotal.WithLabelValues(hctx.Protocol, "error").Inc()
	return h.next.OnClientError(ctx, hctx, err)
}

func (h *instrumentedHandler) OnDisconnect(ctx context.Context, hctx *handler.Context) error {
	h.mu.Lock()
	start, ok := h.connected[hctx.SessionID]
	delete(h.connected, hctx.SessionID)
	h.mu.Unlock()

	if ok {
		h.m.ActiveConnections.WithLabelValues(hctx.Protocol).Dec()
		h.m.ConnectionDuration.WithLabelValues(hctx.Protocol).Observe(time.Since(start).Seconds())
	}
	return h.next.OnDisconnect(ctx, hctx)
}

// rateLimitedHandler throttles publishes per client ID.
type rateLimitedHandler struct {
	next    handler.Handler
	limiter *ratelimit.Limiter
	m       *metrics.Metrics
}

var _ handler.Handler = (*rateLimitedHandler)(nil)

func newRateLimitedHandler(next handler.Handler, limiter *ratelimit.Limiter, m *metrics.Metrics) handler.Handler {
	return &rateLimitedHandler{next: next, limiter: limiter, m: m}
}

func (h *rateLimitedHandler) AuthConnect(ctx context.Context, hctx *handler.Context) error {
	return h.next.AuthConnect(ctx, hctx)
}

func (h *rateLimitedHandler) AuthPublish(ctx context.Context, hctx *handler.Context, topic *string, payload *[]byte) error {
	if !h.limiter.Allow(hctx.ClientID) {
		h.m.RateLimitedRequests.WithLabelValues(hctx.Protocol, "publish").Inc()
		return errors.ErrRateLimited
	}
	return h.next.AuthPublish(ctx, hctx, topic, payload)
}

func (h *rateLimitedHandler) AuthSubscribe(ctx context.Context, hctx *handler.Context, topics *[]string) error {
	return h.next.AuthSubscribe(ctx, hctx, topics)
}

func (h *rateLimitedHandler) OnConnect(ctx context.Context, hctx *handler.Context) error {
	return h.next.OnConnect(ctx, hctx)
}

func (h *rateLimitedHandler) OnPublish(ctx context.Context, hctx *handler.Context, topic string, payload []byte) error {
	return h.next.OnPublish(ctx, hctx, topic, payload)
}

func (h *rateLimitedHandler) OnSubscribe(ctx context.Context, hctx *handler.Context, topics []string) error {
	return h.next.OnSubscribe(ctx, hctx, topics)
}

func (h *rateLimitedHandler) OnUnsubscribe(ctx context.Context, hctx *handler.Context, topics []string) error {
	return h.next.OnUnsubscribe(ctx, hctx, topics)
}

func (h *rateLimitedHandler) OnClientError(ctx context.Context, hctx *handler.Context, err error) error {
	return h.next.OnClientError(ctx, hctx, err)
}

func (h *rateLimitedHandler) OnDisconnect(ctx context.Context, hctx *handler.Context) error {
	h.limiter.Remove(hctx.ClientID)
	return h.next.OnDisconnect(ctx, hctx)
}

// instrumentedIdentity records call counts and latency for every
// identity service round trip.
type instrumentedIdentity struct {
	next identity.Client
	m    *metrics.Metrics
}

var _ identity.Client = (*instrumentedIdentity)(nil)

func newInstrumentedIdentity(next identity.Client, m *metrics.Metrics) identity.Client {
	return &instrumentedIdentity{next: next, m: m}
}

func (c *instrumentedIdentity) Identify(ctx context.Context, key string) (string, error) {
	var id string
	err := c.m.ObserveIdentity("identify", func() error {
		var err error
		id, err = c.next.Identify(ctx, key)
		return err
	})
	return id, err
}

func (c *instrumentedIdentity) CanAccess(ctx context.Context, key, chanID string) (string, error) {
	var id string
	err := c.m.ObserveIdentity("can_access", func() error {
		var err error
		id, err = c.next.CanAccess(ctx, key, chanID)
		return err
	})
	return id, err
}
