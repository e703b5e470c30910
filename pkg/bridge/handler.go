// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absmach/mbridge/pkg/errors"
	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/identity"
	"github.com/absmach/mbridge/pkg/messaging"
	"github.com/absmach/mbridge/pkg/topics"
)

// protocol stamped on every envelope the bridge emits. The relay uses
// it to recognize and drop its own traffic coming back from the bus.
const protocol = "mqtt"

// Handler authenticates MQTT sessions against the identity service,
// authorizes every publish and subscribe, and relays authorized
// publishes to the message bus.
type Handler struct {
	identity  identity.Client
	publisher messaging.Publisher
	sessions  *registry
	logger    *slog.Logger
}

var _ handler.Handler = (*Handler)(nil)

// NewHandler returns a bridge session handler.
func NewHandler(idc identity.Client, pub messaging.Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		identity:  idc,
		publisher: pub,
		sessions:  newRegistry(),
		logger:    logger,
	}
}

// AuthConnect resolves the connecting client's key to a thing identity
// and registers the session. A key the identity service does not
// recognize rejects the connection.
func (h *Handler) AuthConnect(ctx context.Context, hctx *handler.Context) error {
	if hctx == nil {
		return errors.ErrProtocolViolation
	}
	if len(hctx.Password) == 0 {
		h.logger.Warn("Connect without credentials",
			slog.String("client_id", hctx.ClientID),
			slog.String("remote_addr", hctx.RemoteAddr),
		)
		return errors.ErrUnauthorized
	}

	h.sessions.add(hctx.SessionID)

	thingID, err := h.identity.Identify(ctx, string(hctx.Password))
	if err != nil {
		h.sessions.remove(hctx.SessionID)
		h.logger.Warn("Connect authentication failed",
			slog.String("client_id", hctx.ClientID),
			slog.String("remote_addr", hctx.RemoteAddr),
			slog.Any("error", err),
		)
		return err
	}

	// The session may have ended while the identity call was in
	// flight. Late results are discarded rather than bound.
	if !h.sessions.bind(hctx.SessionID, thingID) {
		return errors.ErrConnectionClosed
	}
	return nil
}

// AuthPublish validates the topic and asks the identity service
// whether the session's key may publish to the channel. The check is
// performed on every publish; nothing is cached.
func (h *Handler) AuthPublish(ctx context.Context, hctx *handler.Context, topic *string, payload *[]byte) error {
	if hctx == nil || topic == nil {
		return errors.ErrProtocolViolation
	}

	t, err := topics.Parse(*topic)
	if err != nil {
		h.logger.Warn("Publish to malformed topic",
			slog.String("client_id", hctx.ClientID),
			slog.String("topic", *topic),
		)
		return fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}

	if _, err := h.identity.CanAccess(ctx, string(hctx.Password), t.Channel); err != nil {
		return err
	}
	return nil
}

// AuthSubscribe authorizes each requested filter independently and
// narrows the list to the allowed ones. The subscription is rejected
// only when no filter survives.
func (h *Handler) AuthSubscribe(ctx context.Context, hctx *handler.Context, filters *[]string) error {
	if hctx == nil || filters == nil || len(*filters) == 0 {
		return errors.ErrProtocolViolation
	}

	allowed := make([]string, 0, len(*filters))
	for _, f := range *filters {
		t, err := topics.Parse(f)
		if err != nil {
			h.logger.Warn("Subscribe to malformed topic",
				slog.String("client_id", hctx.ClientID),
				slog.String("topic", f),
			)
			continue
		}
		if _, err := h.identity.CanAccess(ctx, string(hctx.Password), t.Channel); err != nil {
			h.logger.Warn("Subscribe denied",
				slog.String("client_id", hctx.ClientID),
				slog.String("topic", f),
				slog.Any("error", err),
			)
			continue
		}
		allowed = append(allowed, f)
	}
	if len(allowed) == 0 {
		return errors.ErrUnauthorized
	}
	*filters = allowed
	return nil
}

// OnConnect logs the established session.
func (h *Handler) OnConnect(ctx context.Context, hctx *handler.Context) error {
	h.logger.Info("Client connected",
		slog.String("client_id", hctx.ClientID),
		slog.String("remote_addr", hctx.RemoteAddr),
		slog.String("protocol", hctx.Protocol),
	)
	return nil
}

// OnPublish wraps the authorized publish in a bus envelope and hands
// it to the publisher. The envelope's publisher field carries the
// thing identity bound at connect time.
func (h *Handler) OnPublish(ctx context.Context, hctx *handler.Context, topic string, payload []byte) error {
	t, err := topics.Parse(topic)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrProtocolViolation, err)
	}

	principal, ok := h.sessions.principal(hctx.SessionID)
	if !ok {
		return errors.ErrConnectionClosed
	}

	msg := &messaging.Message{
		Channel:     t.Channel,
		Subtopic:    t.Subtopic(),
		Publisher:   principal,
		Protocol:    protocol,
		ContentType: t.ContentType(),
		Payload:     payload,
		Created:     time.Now().UnixNano(),
	}
	if err := h.publisher.Publish(ctx, t.Subject(), msg); err != nil {
		h.logger.Error("Failed to relay publish to bus",
			slog.String("client_id", hctx.ClientID),
			slog.String("subject", t.Subject()),
			slog.Any("error", err),
		)
		return err
	}

	h.logger.Debug("Relayed publish",
		slog.String("client_id", hctx.ClientID),
		slog.String("subject", t.Subject()),
	)
	return nil
}

// OnSubscribe logs the accepted filters.
func (h *Handler) OnSubscribe(ctx context.Context, hctx *handler.Context, filters []string) error {
	h.logger.Info("Client subscribed",
		slog.String("client_id", hctx.ClientID),
		slog.Any("topics", filters),
	)
	return nil
}

// OnUnsubscribe logs the removed filters.
func (h *Handler) OnUnsubscribe(ctx context.Context, hctx *handler.Context, filters []string) error {
	h.logger.Info("Client unsubscribed",
		slog.String("client_id", hctx.ClientID),
		slog.Any("topics", filters),
	)
	return nil
}

// OnClientError logs the session failure.
func (h *Handler) OnClientError(ctx context.Context, hctx *handler.Context, err error) error {
	h.logger.Warn("Client session error",
		slog.String("client_id", hctx.ClientID),
		slog.String("remote_addr", hctx.RemoteAddr),
		slog.Any("error", err),
	)
	return nil
}

// OnDisconnect drops the session from the registry.
func (h *Handler) OnDisconnect(ctx context.Context, hctx *handler.Context) error {
	h.sessions.remove(hctx.SessionID)
	h.logger.Info("Client disconnected",
		slog.String("client_id", hctx.ClientID),
		slog.String("remote_addr", hctx.RemoteAddr),
	)
	return nil
}

// ActiveSessions reports the number of registered sessions.
func (h *Handler) ActiveSessions() int {
	return h.sessions.len()
}
