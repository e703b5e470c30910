// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package topics

// Canonical MIME strings keyed by their topic-safe tokens. The mapping is
// applied symmetrically: outbound the trailing segment expands into the
// envelope content type, inbound a known content type maps back to the same
// token, so a message that round-trips through the bus keeps its topic intact.
var contentTypes = map[string]string{
	"senml-json":   "application/senml+json",
	"senml-cbor":   "application/senml+cbor",
	"json":         "application/json",
	"cbor":         "application/cbor",
	"octet-stream": "application/octet-stream",
}

var contentTokens = invert(contentTypes)

func invert(m map[string]string) map[string]string {
	inv := make(map[string]string, len(m))
	for k, v := range m {
		inv[v] = k
	}
	return inv
}

// ContentType returns the MIME content type encoded by the topic's trailing
// segment, or empty when the segment is not a known token.
func (t Topic) ContentType() string {
	if len(t.Subtopics) == 0 {
		return ""
	}
	return contentTypes[t.Subtopics[len(t.Subtopics)-1]]
}

// ContentToken returns the topic-safe token for a MIME content type, or
// empty when the type has no token.
func ContentToken(contentType string) string {
	return contentTokens[contentType]
}

// WithContentType returns a topic whose trailing segment encodes contentType.
// If the topic already encodes it, or the type has no token, t is returned
// unchanged; Topic values are never mutated in place.
func (t Topic) WithContentType(contentType string) Topic {
	token := ContentToken(contentType)
	if token == "" || t.ContentType() == contentType {
		return t
	}

	subtopics := make([]string, 0, len(t.Subtopics)+1)
	subtopics = append(subtopics, t.Subtopics...)
	subtopics = append(subtopics, token)
	return Topic{Channel: t.Channel, Subtopics: subtopics}
}
