// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"errors"

	"google.golang.org/protobuf/proto"
)

var (
	// ErrEmptySubject is returned on publish or subscribe with no subject.
	ErrEmptySubject = errors.New("empty subject")

	// ErrDecode is returned when bus bytes do not decode to a Message.
	// Consumers treat this as "not a bridge message" and skip the payload.
	ErrDecode = errors.New("failed to decode message")
)

// RawHandler is invoked for every message delivered on a subscribed subject.
// The payload is handed over undecoded so the consumer decides what a decode
// failure means for its own traffic.
type RawHandler func(subject string, payload []byte)

// Publisher publishes envelopes to the message bus.
type Publisher interface {
	// Publish encodes msg and submits it under the given subject.
	Publish(ctx context.Context, subject string, msg *Message) error

	// Close releases the underlying bus connection.
	Close() error
}

// Subscriber consumes raw payloads from the message bus.
type Subscriber interface {
	// Subscribe registers handler for all messages matching subject.
	Subscribe(ctx context.Context, subject string, handler RawHandler) error

	// Close releases the underlying bus connection.
	Close() error
}

// PubSub unifies Publisher and Subscriber over one bus connection.
type PubSub interface {
	Publisher
	Subscriber
}

// Encode serializes an envelope to its bus wire format.
func Encode(msg *Message) ([]byte, error) {
	return proto.Marshal(msg)
}

// Decode deserializes bus bytes into an envelope. A failure means the bytes
// were not produced by a bridge and the caller should skip them.
func Decode(payload []byte) (*Message, error) {
	var msg Message
	if err := proto.Unmarshal(payload, &msg); err != nil {
		return nil, ErrDecode
	}
	return &msg, nil
}
