// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package topics

import (
	"errors"
	"strings"
)

const (
	topicPrefix   = "channels"
	topicInfix    = "messages"
	subjectPrefix = "channel."

	// SubjectWildcard matches every bridge subject on the bus.
	SubjectWildcard = subjectPrefix + ">"
)

var (
	// ErrMalformedTopic indicates a topic outside the bridge grammar.
	ErrMalformedTopic = errors.New("malformed topic")

	// ErrMalformedSubject indicates a bus subject outside the bridge grammar.
	ErrMalformedSubject = errors.New("malformed subject")
)

// Topic is the parsed form of a bridge address. MQTT-side it reads
// channels/<channel>/messages(/<segment>)*, bus-side channel.<channel>(.<segment>)*.
// Values are immutable once parsed; construct a new one per message.
type Topic struct {
	Channel   string
	Subtopics []string
}

// Parse validates an MQTT topic string against the bridge grammar and splits
// it into channel and subtopic segments. Channel ids are opaque tokens: a
// channel containing the subject separator would make the subject-to-topic
// direction ambiguous, so it is rejected here rather than guessed at later.
func Parse(topic string) (Topic, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 || parts[0] != topicPrefix || parts[2] != topicInfix {
		return Topic{}, ErrMalformedTopic
	}

	channel := parts[1]
	if channel == "" || strings.Contains(channel, ".") {
		return Topic{}, ErrMalformedTopic
	}

	subtopics := parts[3:]
	for _, segment := range subtopics {
		// Empty segment means a doubled or trailing separator; a dot would
		// collide with the subject-side separator and break the round trip.
		if segment == "" || strings.Contains(segment, ".") {
			return Topic{}, ErrMalformedTopic
		}
	}

	t := Topic{Channel: channel}
	if len(subtopics) > 0 {
		t.Subtopics = append([]string(nil), subtopics...)
	}
	return t, nil
}

// FromSubject is the inverse of Topic.Subject.
func FromSubject(subject string) (Topic, error) {
	rest, ok := strings.CutPrefix(subject, subjectPrefix)
	if !ok {
		return Topic{}, ErrMalformedSubject
	}

	parts := strings.Split(rest, ".")
	// A slash inside a subject token would render a topic with extra
	// path segments that parses back to a different subject.
	if parts[0] == "" || strings.Contains(parts[0], "/") {
		return Topic{}, ErrMalformedSubject
	}
	for _, segment := range parts[1:] {
		if segment == "" || strings.Contains(segment, "/") {
			return Topic{}, ErrMalformedSubject
		}
	}

	t := Topic{Channel: parts[0]}
	if len(parts) > 1 {
		t.Subtopics = append([]string(nil), parts[1:]...)
	}
	return t, nil
}

// FromParts reassembles a Topic from the channel and dotted subtopic carried
// in an envelope. The same validation as FromSubject applies.
func FromParts(channel, subtopic string) (Topic, error) {
	subject := subjectPrefix + channel
	if subtopic != "" {
		subject += "." + subtopic
	}
	return FromSubject(subject)
}

// String renders the MQTT topic form, never with a trailing separator.
func (t Topic) String() string {
	topic := topicPrefix + "/" + t.Channel + "/" + topicInfix
	if len(t.Subtopics) > 0 {
		topic += "/" + strings.Join(t.Subtopics, "/")
	}
	return topic
}

// Subject renders the bus subject form.
func (t Topic) Subject() string {
	subject := subjectPrefix + t.Channel
	if len(t.Subtopics) > 0 {
		subject += "." + strings.Join(t.Subtopics, ".")
	}
	return subject
}

// Subtopic renders the dotted subtopic form carried inside envelopes, empty
// for a bare channel topic.
func (t Topic) Subtopic() string {
	return strings.Join(t.Subtopics, ".")
}
