// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestEncodeDecode(t *testing.T) {
	msg := &Message{
		Channel:     "42",
		Subtopic:    "bedroom.temp",
		Publisher:   "thing-1",
		Protocol:    "mqtt",
		ContentType: "application/senml+json",
		Payload:     []byte(`[{"n":"temp","v":21.5}]`),
		Created:     time.Now().UnixNano(),
	}

	encoded, err := Encode(msg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if decoded.Channel != msg.Channel {
		t.Errorf("Channel = %q, want %q", decoded.Channel, msg.Channel)
	}
	if decoded.Subtopic != msg.Subtopic {
		t.Errorf("Subtopic = %q, want %q", decoded.Subtopic, msg.Subtopic)
	}
	if decoded.Publisher != msg.Publisher {
		t.Errorf("Publisher = %q, want %q", decoded.Publisher, msg.Publisher)
	}
	if decoded.Protocol != msg.Protocol {
		t.Errorf("Protocol = %q, want %q", decoded.Protocol, msg.Protocol)
	}
	if decoded.ContentType != msg.ContentType {
		t.Errorf("ContentType = %q, want %q", decoded.ContentType, msg.ContentType)
	}
	if !bytes.Equal(decoded.Payload, msg.Payload) {
		t.Errorf("Payload = %q, want %q", decoded.Payload, msg.Payload)
	}
	if decoded.Created != msg.Created {
		t.Errorf("Created = %d, want %d", decoded.Created, msg.Created)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xfe, 0x01}); !errors.Is(err, ErrDecode) {
		t.Errorf("Decode() error = %v, want %v", err, ErrDecode)
	}
}

func TestDecodeEmpty(t *testing.T) {
	// An empty protobuf is a valid zero-value envelope.
	msg, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) error = %v", err)
	}
	if msg.Channel != "" || len(msg.Payload) != 0 {
		t.Errorf("Decode(nil) = %+v, want zero envelope", msg)
	}
}
