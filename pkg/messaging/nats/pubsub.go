// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package nats provides the NATS implementation of the message bus contract.
package nats

import (
	"context"
	"log/slog"

	"github.com/absmach/mbridge/pkg/messaging"
	broker "github.com/nats-io/nats.go"
)

// Queue group shared by bridge instances so that scaled-out bridges split
// inbound traffic instead of each re-injecting every message.
const queue = "mbridge"

const maxReconnects = -1

var _ messaging.PubSub = (*PubSub)(nil)

// PubSub is a NATS-backed publisher/subscriber.
type PubSub struct {
	conn   *broker.Conn
	logger *slog.Logger
}

// NewPubSub connects to NATS at the given URL and returns a PubSub backed by
// that single connection. The connection reconnects indefinitely; publishes
// issued while disconnected are buffered by the client.
func NewPubSub(url string, logger *slog.Logger) (*PubSub, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ps := &PubSub{logger: logger}

	conn, err := broker.Connect(url,
		broker.MaxReconnects(maxReconnects),
		broker.ErrorHandler(ps.natsErrorHandler),
	)
	if err != nil {
		return nil, err
	}
	ps.conn = conn

	return ps, nil
}

func (ps *PubSub) Publish(ctx context.Context, subject string, msg *messaging.Message) error {
	if subject == "" {
		return messaging.ErrEmptySubject
	}

	data, err := messaging.Encode(msg)
	if err != nil {
		return err
	}

	return ps.conn.Publish(subject, data)
}

func (ps *PubSub) Subscribe(ctx context.Context, subject string, handler messaging.RawHandler) error {
	if subject == "" {
		return messaging.ErrEmptySubject
	}

	_, err := ps.conn.QueueSubscribe(subject, queue, func(m *broker.Msg) {
		handler(m.Subject, m.Data)
	})
	return err
}

// Connected reports whether the NATS connection is currently established.
// Used by the health checker.
func (ps *PubSub) Connected() bool {
	return ps.conn.IsConnected()
}

func (ps *PubSub) Close() error {
	ps.conn.Close()
	return nil
}

func (ps *PubSub) natsErrorHandler(nc *broker.Conn, sub *broker.Subscription, natsErr error) {
	if sub == nil {
		ps.logger.Error("NATS error occurred", slog.String("error", natsErr.Error()))
		return
	}

	ps.logger.Error("NATS error occurred",
		slog.String("error", natsErr.Error()),
		slog.String("subject", sub.Subject))

	if natsErr == broker.ErrSlowConsumer {
		pendingMsgs, pendingBytes, err := sub.Pending()
		if err != nil {
			ps.logger.Error("couldn't get pending messages for slow consumer",
				slog.String("error", err.Error()),
				slog.String("subject", sub.Subject))
			return
		}

		ps.logger.Warn("slow consumer detected",
			slog.String("subject", sub.Subject),
			slog.Int("pending_messages", pendingMsgs),
			slog.Int("pending_bytes", pendingBytes))
	}
}
