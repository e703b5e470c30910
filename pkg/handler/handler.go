// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"
	"crypto/x509"
	"sync"
)

// Context contains connection metadata and credentials extracted from packets.
// It is passed to Handler methods to provide auth context. Contexts are
// created once per session and must be shared by pointer.
type Context struct {
	// SessionID is a unique identifier for this connection/session
	SessionID string

	// Username extracted from the MQTT CONNECT packet
	Username string

	// Password extracted from the MQTT CONNECT packet (raw bytes).
	// Mainflux clients put the thing key here.
	Password []byte

	// ClientID extracted from the MQTT CONNECT packet
	ClientID string

	// RemoteAddr is the client's network address
	RemoteAddr string

	// Protocol indicates the front the client connected through (mqtt, ws)
	Protocol string

	// Cert is the client's TLS certificate (if using mTLS)
	Cert *x509.Certificate

	mu   sync.Mutex
	subs map[uint16][]bool
}

// TrackSub records which filters of an in-flight SUBSCRIBE were forwarded
// to the broker, keyed by message ID. The mask holds one entry per filter
// the client requested, true for filters that reached the broker. Both
// stream directions share the session Context, so the acknowledgment
// coming back can be rebuilt to answer every requested filter.
func (c *Context) TrackSub(id uint16, granted []bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[uint16][]bool)
	}
	c.subs[id] = granted
}

// TakeSub removes and returns the granted-filter mask recorded for the
// given message ID. The second return is false when no SUBSCRIBE with
// that ID was narrowed.
func (c *Context) TakeSub(id uint16) ([]bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	granted, ok := c.subs[id]
	if ok {
		delete(c.subs, id)
	}
	return granted, ok
}

// Handler defines authorization and notification callbacks for MQTT
// session events. Protocol parsers call these methods at appropriate
// points in the packet lifecycle.
//
// Authorization methods (AuthConnect, AuthPublish, AuthSubscribe) are
// called BEFORE forwarding packets to the broker. They can:
// - Return an error to reject the action
// - Modify mutable parameters (topic, payload, topics) via pointers
// - Update the handler context
//
// Notification methods (On*) are called AFTER successful actions for
// relaying, audit logging or metrics. Errors from these methods are
// logged but don't prevent the action.
type Handler interface {
	// AuthConnect authorizes a client connection attempt.
	// Called when a client sends a CONNECT packet.
	// Return an error to reject the connection.
	AuthConnect(ctx context.Context, hctx *Context) error

	// AuthPublish authorizes a PUBLISH packet. The topic and payload
	// can be modified via their pointers before forwarding.
	// Return an error to reject the publish.
	AuthPublish(ctx context.Context, hctx *Context, topic *string, payload *[]byte) error

	// AuthSubscribe authorizes a SUBSCRIBE packet. The topics list can
	// be modified via the pointer to filter subscriptions.
	// Return an error to reject the subscription.
	AuthSubscribe(ctx context.Context, hctx *Context, topics *[]string) error

	// OnConnect is called after a successful connection is established.
	OnConnect(ctx context.Context, hctx *Context) error

	// OnPublish is called after a publish has been authorized and
	// forwarded to the broker. This is where published messages are
	// relayed to the message bus.
	OnPublish(ctx context.Context, hctx *Context, topic string, payload []byte) error

	// OnSubscribe is called after a successful subscription.
	OnSubscribe(ctx context.Context, hctx *Context, topics []string) error

	// OnUnsubscribe is called after a successful unsubscription.
	OnUnsubscribe(ctx context.Context, hctx *Context, topics []string) error

	// OnClientError is called when a session fails with a protocol or
	// I/O error before disconnecting. This is a notification hook;
	// the session is torn down regardless of the return value.
	OnClientError(ctx context.Context, hctx *Context, err error) error

	// OnDisconnect is called when a client disconnects (gracefully or
	// due to error). This is a notification hook for cleanup, audit
	// logging, or metrics.
	OnDisconnect(ctx context.Context, hctx *Context) error
}

// NoopHandler is a Handler implementation that allows all operations.
// Useful for testing or when no authorization is needed.
type NoopHandler struct{}

var _ Handler = (*NoopHandler)(nil)

func (h *NoopHandler) AuthConnect(ctx context.Context, hctx *Context) error {
	return nil
}

func (h *NoopHandler) AuthPublish(ctx context.Context, hctx *Context, topic *string, payload *[]byte) error {
	return nil
}

func (h *NoopHandler) AuthSubscribe(ctx context.Context, hctx *Context, topics *[]string) error {
	return nil
}

func (h *NoopHandler) OnConnect(ctx context.Context, hctx *Context) error {
	return nil
}

func (h *NoopHandler) OnPublish(ctx context.Context, hctx *Context, topic string, payload []byte) error {
	return nil
}

func (h *NoopHandler) OnSubscribe(ctx context.Context, hctx *Context, topics []string) error {
	return nil
}

func (h *NoopHandler) OnUnsubscribe(ctx context.Context, hctx *Context, topics []string) error {
	return nil
}

func (h *NoopHandler) OnClientError(ctx context.Context, hctx *Context, err error) error {
	return nil
}

func (h *NoopHandler) OnDisconnect(ctx context.Context, hctx *Context) error {
	return nil
}
