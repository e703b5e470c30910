// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/absmach/mbridge/pkg/messaging"
	"github.com/absmach/mbridge/pkg/metrics"
	"github.com/absmach/mbridge/pkg/topics"
)

// BrokerPublisher pushes a payload to the MQTT broker under the given
// topic. The paho forwarder in pkg/messaging/mqtt implements it.
type BrokerPublisher interface {
	Publish(topic string, payload []byte) error
}

// Relay forwards bus traffic to the MQTT broker. It subscribes to the
// channel subject space, unwraps envelopes, translates subjects back
// to MQTT topics and republishes the raw payloads. Envelopes the
// bridge itself produced are dropped to prevent loops.
type Relay struct {
	forwarder BrokerPublisher
	sem       *semaphore.Weighted
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewRelay returns a relay publishing through the given forwarder.
// Concurrency bounds the number of in-flight broker publishes.
// Metrics may be nil.
func NewRelay(fwd BrokerPublisher, concurrency int64, m *metrics.Metrics, logger *slog.Logger) *Relay {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Relay{
		forwarder: fwd,
		sem:       semaphore.NewWeighted(concurrency),
		metrics:   m,
		logger:    logger,
	}
}

func (r *Relay) dropped(reason string) {
	if r.metrics != nil {
		r.metrics.EnvelopesDropped.WithLabelValues(reason).Inc()
	}
}

// Handle processes one raw bus delivery. It is the messaging.RawHandler
// passed to the bus subscriber. Undecodable payloads and the bridge's
// own envelopes are dropped silently except for a log line.
func (r *Relay) Handle(subject string, payload []byte) {
	msg, err := messaging.Decode(payload)
	if err != nil {
		r.dropped("undecodable")
		r.logger.Warn("Dropping undecodable bus message",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return
	}

	// Messages the bridge published to the bus come back on the same
	// subjects. Forwarding them again would echo every publish back
	// to the broker.
	if msg.GetProtocol() == protocol {
		r.dropped("own_traffic")
		return
	}

	t, err := topics.FromParts(msg.GetChannel(), msg.GetSubtopic())
	if err != nil {
		r.dropped("bad_routing")
		r.logger.Warn("Dropping bus message with bad routing fields",
			slog.String("subject", subject),
			slog.String("channel", msg.GetChannel()),
			slog.Any("error", err),
		)
		return
	}
	if ct := msg.GetContentType(); ct != "" {
		t = t.WithContentType(ct)
	}

	if err := r.sem.Acquire(context.Background(), 1); err != nil {
		return
	}
	go func() {
		defer r.sem.Release(1)
		if err := r.forwarder.Publish(t.String(), msg.GetPayload()); err != nil {
			r.dropped("broker_publish_failed")
			r.logger.Error("Failed to forward bus message to broker",
				slog.String("topic", t.String()),
				slog.Any("error", err),
			)
			return
		}
		if r.metrics != nil {
			r.metrics.MessagesRelayed.WithLabelValues("bus_to_mqtt").Inc()
		}
		r.logger.Debug("Forwarded bus message",
			slog.String("subject", subject),
			slog.String("topic", t.String()),
		)
	}()
}
