// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mqtt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/eclipse/paho.mqtt.golang/packets"

	bridgeerrors "github.com/absmach/mbridge/pkg/errors"
	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/parser"
)

var (
	// ErrConnectRefused is returned when a CONNECT is denied. The
	// server answers the client with CONNACK return code 4 (bad user
	// name or password) before closing the connection.
	ErrConnectRefused = errors.New("connection refused")
)

// subackFailure is the SUBACK return code for a rejected filter
// (MQTT 3.1.1, section 3.9.3).
const subackFailure byte = 0x80

// SubscribeRefused is returned when every filter in a SUBSCRIBE is
// denied. The packet is not forwarded; the server answers the client
// with a failure code per requested filter and keeps the session open.
type SubscribeRefused struct {
	MessageID uint16
	Filters   int
	cause     error
}

func (e *SubscribeRefused) Error() string {
	return fmt.Sprintf("subscribe refused: %v", e.cause)
}

func (e *SubscribeRefused) Unwrap() error {
	return e.cause
}

// Ack builds the SUBACK answering the refused SUBSCRIBE.
func (e *SubscribeRefused) Ack() *packets.SubackPacket {
	ack := packets.NewControlPacket(packets.Suback).(*packets.SubackPacket)
	ack.MessageID = e.MessageID
	ack.ReturnCodes = make([]byte, e.Filters)
	for i := range ack.ReturnCodes {
		ack.ReturnCodes[i] = subackFailure
	}
	return ack
}

// Parser implements the parser.Parser interface for MQTT protocol.
type Parser struct{}

var _ parser.Parser = (*Parser)(nil)

// Parse reads one MQTT packet from r, processes it, and writes to w.
// It implements bidirectional packet inspection and modification:
// - Upstream (client→broker): Extracts auth, authorizes, may modify
// - Downstream (broker→client): Usually just forwards
func (p *Parser) Parse(ctx context.Context, r io.Reader, w io.Writer, dir parser.Direction, h handler.Handler, hctx *handler.Context) error {
	pkt, err := packets.ReadPacket(r)
	if err != nil {
		return err
	}

	if dir == parser.Upstream {
		if err := p.handleUpstream(ctx, pkt, h, hctx); err != nil {
			return err
		}
	} else {
		if err := p.handleDownstream(ctx, pkt, h, hctx); err != nil {
			return err
		}
	}

	if err := pkt.Write(w); err != nil {
		return fmt.Errorf("failed to write packet: %w", err)
	}

	return nil
}

// handleUpstream processes upstream (client→broker) packets.
func (p *Parser) handleUpstream(ctx context.Context, pkt packets.ControlPacket, h handler.Handler, hctx *handler.Context) error {
	switch packet := pkt.(type) {
	case *packets.ConnectPacket:
		return p.handleConnect(ctx, packet, h, hctx)

	case *packets.PublishPacket:
		return p.handlePublish(ctx, packet, h, hctx)

	case *packets.SubscribePacket:
		return p.handleSubscribe(ctx, packet, h, hctx)

	case *packets.UnsubscribePacket:
		return p.handleUnsubscribe(ctx, packet, h, hctx)

	case *packets.DisconnectPacket:
		return p.handleDisconnect(ctx, h, hctx)

	default:
		// Other packets (PINGREQ, PUBACK, PUBREC, PUBREL, PUBCOMP, etc.) are forwarded as-is
		return nil
	}
}

// handleDownstream processes downstream (broker→client) packets.
// Broker-initiated publishes are checked against the subscribe
// authorization so a client never receives traffic from a channel it
// lost access to.
func (p *Parser) handleDownstream(ctx context.Context, pkt packets.ControlPacket, h handler.Handler, hctx *handler.Context) error {
	switch packet := pkt.(type) {
	case *packets.PublishPacket:
		topics := []string{packet.TopicName}
		if err := h.AuthSubscribe(ctx, hctx, &topics); err != nil {
			return err
		}
		if len(topics) > 0 {
			packet.TopicName = topics[0]
		}
		return nil

	case *packets.SubackPacket:
		// A narrowed SUBSCRIBE left the broker answering fewer
		// filters than the client requested. Rebuild the codes so
		// every requested filter gets an answer, denied ones with
		// the failure code.
		granted, ok := hctx.TakeSub(packet.MessageID)
		if !ok {
			return nil
		}
		codes := make([]byte, len(granted))
		i := 0
		for j, g := range granted {
			if g && i < len(packet.ReturnCodes) {
				codes[j] = packet.ReturnCodes[i]
				i++
				continue
			}
			codes[j] = subackFailure
		}
		packet.ReturnCodes = codes
		return nil

	default:
		// Other packets are forwarded as-is
		return nil
	}
}

// handleConnect processes MQTT CONNECT packets.
func (p *Parser) handleConnect(ctx context.Context, packet *packets.ConnectPacket, h handler.Handler, hctx *handler.Context) error {
	// Extract credentials from CONNECT packet
	hctx.ClientID = packet.ClientIdentifier
	hctx.Username = packet.Username
	hctx.Password = packet.Password

	if hctx.Protocol == "" {
		hctx.Protocol = "mqtt"
	}

	// Authorize connection
	if err := h.AuthConnect(ctx, hctx); err != nil {
		if errors.Is(err, bridgeerrors.ErrUnauthorized) || errors.Is(err, bridgeerrors.ErrServiceUnavailable) {
			return fmt.Errorf("%w: %v", ErrConnectRefused, err)
		}
		return fmt.Errorf("connection authorization failed: %w", err)
	}

	// Update packet with potentially modified credentials
	packet.ClientIdentifier = hctx.ClientID
	packet.Username = hctx.Username
	packet.Password = hctx.Password

	// Notify successful connection
	if err := h.OnConnect(ctx, hctx); err != nil {
		// Log but don't fail the connection
		return nil
	}

	return nil
}

// handlePublish processes MQTT PUBLISH packets.
func (p *Parser) handlePublish(ctx context.Context, packet *packets.PublishPacket, h handler.Handler, hctx *handler.Context) error {
	topic := packet.TopicName
	payload := packet.Payload

	// Authorize publish (allows modification)
	if err := h.AuthPublish(ctx, hctx, &topic, &payload); err != nil {
		return fmt.Errorf("publish authorization failed: %w", err)
	}

	// Update packet with potentially modified topic/payload
	packet.TopicName = topic
	packet.Payload = payload

	// Notify successful publish (immutable copies)
	if err := h.OnPublish(ctx, hctx, topic, payload); err != nil {
		// Log but don't fail the publish
		return nil
	}

	return nil
}

// handleSubscribe processes MQTT SUBSCRIBE packets. Only authorized
// filters are forwarded to the broker, but every requested filter must
// still be answered in the SUBACK: narrowed requests record a granted
// mask on the session context so the broker's acknowledgment can be
// rebuilt on the way back, and fully denied requests are refused
// without the broker ever seeing them.
func (p *Parser) handleSubscribe(ctx context.Context, packet *packets.SubscribePacket, h handler.Handler, hctx *handler.Context) error {
	requested := make([]string, len(packet.Topics))
	copy(requested, packet.Topics)

	allowed := make([]string, len(packet.Topics))
	copy(allowed, packet.Topics)
	if err := h.AuthSubscribe(ctx, hctx, &allowed); err != nil {
		if errors.Is(err, bridgeerrors.ErrUnauthorized) || errors.Is(err, bridgeerrors.ErrServiceUnavailable) {
			return &SubscribeRefused{MessageID: packet.MessageID, Filters: len(requested), cause: err}
		}
		return fmt.Errorf("subscribe authorization failed: %w", err)
	}

	if len(allowed) != len(requested) {
		// The narrowing preserves request order, so a single walk
		// over both lists yields the granted mask and the QoS list
		// for the forwarded filters.
		granted := make([]bool, len(requested))
		qoss := make([]byte, 0, len(allowed))
		i := 0
		for j, topic := range requested {
			if i < len(allowed) && allowed[i] == topic {
				granted[j] = true
				if j < len(packet.Qoss) {
					qoss = append(qoss, packet.Qoss[j])
				} else {
					qoss = append(qoss, 0)
				}
				i++
			}
		}
		hctx.TrackSub(packet.MessageID, granted)
		packet.Topics = allowed
		packet.Qoss = qoss
	}

	// Notify successful subscription (immutable copy)
	if err := h.OnSubscribe(ctx, hctx, allowed); err != nil {
		// Log but don't fail the subscription
		return nil
	}

	return nil
}

// handleUnsubscribe processes MQTT UNSUBSCRIBE packets.
func (p *Parser) handleUnsubscribe(ctx context.Context, packet *packets.UnsubscribePacket, h handler.Handler, hctx *handler.Context) error {
	topics := make([]string, len(packet.Topics))
	copy(topics, packet.Topics)

	// Notify unsubscription (immutable copy)
	if err := h.OnUnsubscribe(ctx, hctx, topics); err != nil {
		// Log but don't fail the unsubscription
		return nil
	}

	return nil
}

// handleDisconnect processes MQTT DISCONNECT packets.
func (p *Parser) handleDisconnect(ctx context.Context, h handler.Handler, hctx *handler.Context) error {
	if err := h.OnDisconnect(ctx, hctx); err != nil {
		// Log but don't fail the disconnection
		return nil
	}

	return nil
}
