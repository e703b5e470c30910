// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package topics

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    Topic
		wantErr error
	}{
		{
			name:  "bare channel topic",
			topic: "channels/42/messages",
			want:  Topic{Channel: "42"},
		},
		{
			name:  "single subtopic",
			topic: "channels/42/messages/bedroom",
			want:  Topic{Channel: "42", Subtopics: []string{"bedroom"}},
		},
		{
			name:  "nested subtopics",
			topic: "channels/42/messages/bedroom/temp/raw",
			want:  Topic{Channel: "42", Subtopics: []string{"bedroom", "temp", "raw"}},
		},
		{
			name:  "uuid channel",
			topic: "channels/3b2ccec0-6b3f-4f5f-b8a7-0f05fbe3c2a5/messages",
			want:  Topic{Channel: "3b2ccec0-6b3f-4f5f-b8a7-0f05fbe3c2a5"},
		},
		{
			name:    "missing messages segment",
			topic:   "channels/42",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "wrong prefix",
			topic:   "things/42/messages",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "wrong infix",
			topic:   "channels/42/events",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "empty channel",
			topic:   "channels//messages",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "dot in channel",
			topic:   "channels/4.2/messages",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "dot in subtopic",
			topic:   "channels/42/messages/bed.room",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "trailing separator",
			topic:   "channels/42/messages/",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "doubled separator",
			topic:   "channels/42/messages/bedroom//temp",
			wantErr: ErrMalformedTopic,
		},
		{
			name:    "empty topic",
			topic:   "",
			wantErr: ErrMalformedTopic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.topic)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.topic, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.topic, got, tt.want)
			}
		})
	}
}

func TestFromSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    Topic
		wantErr error
	}{
		{
			name:    "bare channel subject",
			subject: "channel.42",
			want:    Topic{Channel: "42"},
		},
		{
			name:    "nested subject",
			subject: "channel.42.bedroom.temp",
			want:    Topic{Channel: "42", Subtopics: []string{"bedroom", "temp"}},
		},
		{
			name:    "wrong prefix",
			subject: "channels.42",
			wantErr: ErrMalformedSubject,
		},
		{
			name:    "empty channel",
			subject: "channel.",
			wantErr: ErrMalformedSubject,
		},
		{
			name:    "empty segment",
			subject: "channel.42..temp",
			wantErr: ErrMalformedSubject,
		},
		{
			name:    "slash in channel",
			subject: "channel.4/2",
			wantErr: ErrMalformedSubject,
		},
		{
			name:    "slash in segment",
			subject: "channel.7.a/b",
			wantErr: ErrMalformedSubject,
		},
		{
			name:    "no prefix",
			subject: "42.bedroom",
			wantErr: ErrMalformedSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromSubject(tt.subject)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FromSubject(%q) error = %v, want %v", tt.subject, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromSubject(%q) = %+v, want %+v", tt.subject, got, tt.want)
			}
		})
	}
}

func TestFromParts(t *testing.T) {
	got, err := FromParts("42", "bedroom.temp")
	if err != nil {
		t.Fatalf("FromParts() error = %v", err)
	}
	want := Topic{Channel: "42", Subtopics: []string{"bedroom", "temp"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromParts() = %+v, want %+v", got, want)
	}

	got, err = FromParts("42", "")
	if err != nil {
		t.Fatalf("FromParts() error = %v", err)
	}
	if got.Channel != "42" || len(got.Subtopics) != 0 {
		t.Errorf("FromParts() = %+v, want bare channel", got)
	}

	if _, err := FromParts("", "bedroom"); !errors.Is(err, ErrMalformedSubject) {
		t.Errorf("FromParts() with empty channel error = %v, want %v", err, ErrMalformedSubject)
	}

	// Envelope fields holding slashes would render a topic whose path
	// no longer maps back to the same subject.
	if _, err := FromParts("7", "a/b"); !errors.Is(err, ErrMalformedSubject) {
		t.Errorf("FromParts() with slash in subtopic error = %v, want %v", err, ErrMalformedSubject)
	}
	if _, err := FromParts("4/2", ""); !errors.Is(err, ErrMalformedSubject) {
		t.Errorf("FromParts() with slash in channel error = %v, want %v", err, ErrMalformedSubject)
	}
}

func TestRoundTrip(t *testing.T) {
	topics := []string{
		"channels/42/messages",
		"channels/42/messages/bedroom",
		"channels/42/messages/bedroom/temp/raw",
	}
	for _, topic := range topics {
		parsed, err := Parse(topic)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", topic, err)
		}
		back, err := FromSubject(parsed.Subject())
		if err != nil {
			t.Fatalf("FromSubject(%q) error = %v", parsed.Subject(), err)
		}
		if back.String() != topic {
			t.Errorf("round trip of %q = %q", topic, back.String())
		}
	}
}

func TestRendering(t *testing.T) {
	tp := Topic{Channel: "42", Subtopics: []string{"bedroom", "temp"}}
	if got := tp.String(); got != "channels/42/messages/bedroom/temp" {
		t.Errorf("String() = %q", got)
	}
	if got := tp.Subject(); got != "channel.42.bedroom.temp" {
		t.Errorf("Subject() = %q", got)
	}
	if got := tp.Subtopic(); got != "bedroom.temp" {
		t.Errorf("Subtopic() = %q", got)
	}

	bare := Topic{Channel: "42"}
	if got := bare.Subtopic(); got != "" {
		t.Errorf("Subtopic() of bare topic = %q, want empty", got)
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"channels/42/messages/senml-json", "application/senml+json"},
		{"channels/42/messages/bedroom/senml-cbor", "application/senml+cbor"},
		{"channels/42/messages/json", "application/json"},
		{"channels/42/messages/bedroom", ""},
		{"channels/42/messages", ""},
	}

	for _, tt := range tests {
		parsed, err := Parse(tt.topic)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.topic, err)
		}
		if got := parsed.ContentType(); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestWithContentType(t *testing.T) {
	tp := Topic{Channel: "42", Subtopics: []string{"bedroom"}}

	got := tp.WithContentType("application/senml+json")
	if want := "channels/42/messages/bedroom/senml-json"; got.String() != want {
		t.Errorf("WithContentType() = %q, want %q", got.String(), want)
	}
	// Original must stay untouched.
	if tp.String() != "channels/42/messages/bedroom" {
		t.Errorf("receiver mutated: %q", tp.String())
	}

	// Already encoded: no duplicate segment.
	again := got.WithContentType("application/senml+json")
	if again.String() != got.String() {
		t.Errorf("WithContentType() repeated = %q", again.String())
	}

	// Unknown type: unchanged.
	same := tp.WithContentType("text/plain")
	if same.String() != tp.String() {
		t.Errorf("WithContentType() with unknown type = %q", same.String())
	}
}

func TestContentToken(t *testing.T) {
	if got := ContentToken("application/senml+json"); got != "senml-json" {
		t.Errorf("ContentToken() = %q", got)
	}
	if got := ContentToken("text/plain"); got != "" {
		t.Errorf("ContentToken() of unknown type = %q, want empty", got)
	}
}
