// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connect

import (
	"encoding/binary"
	"strings"
)

// Decode status for a credential extraction attempt. Incomplete is reported
// separately so a streaming caller can retry once more bytes arrive instead
// of treating a short read as a hard reject.
type status int

const (
	complete status = iota
	incomplete
	notConnect
	noCredentials
)

// Password extracts the password bytes from a raw MQTT CONNECT frame. It
// returns nil when the buffer is not a CONNECT packet, when the username and
// password flags are not both set, or when the frame is truncated. The
// decoder walks the buffer by offset only and never reads past its end.
func Password(buf []byte) []byte {
	pass, st := password(buf)
	if st != complete {
		return nil
	}
	return pass
}

func password(buf []byte) ([]byte, status) {
	if len(buf) == 0 {
		return nil, incomplete
	}

	// CONNECT control byte: message type 1 in the high nibble, low-nibble
	// flags are irrelevant, so anything in [16, 31] qualifies.
	if buf[0] < 16 || buf[0] > 31 {
		return nil, notConnect
	}

	// Remaining length is a varint of up to 4 bytes, 7 bits each, the top
	// bit marking continuation. Only its size matters here.
	lenSize := 1
	for i := 1; i < 5; i++ {
		if i >= len(buf) {
			return nil, incomplete
		}
		if buf[i]&0x80 != 0 {
			lenSize++
			continue
		}
		break
	}

	// CONTROL(1) + REM_LEN(lenSize) + PROTO_NAME_LEN(2) + PROTO_NAME(4) + PROTO_LEVEL(1).
	flagsPos := 1 + lenSize + 2 + 4 + 1
	if flagsPos >= len(buf) {
		return nil, incomplete
	}

	// Username and password flags are the two top bits of the connect flags.
	if buf[flagsPos] < 0xC0 {
		return nil, noCredentials
	}

	// FLAGS(1) + KEEP_ALIVE(2), then three 16-bit big-endian length-prefixed
	// fields: client id and username are skipped, password is returned.
	offset := flagsPos + 1 + 2
	for i := 0; i < 2; i++ {
		n, next, ok := fieldLen(buf, offset)
		if !ok {
			return nil, incomplete
		}
		offset = next + n
	}

	n, next, ok := fieldLen(buf, offset)
	if !ok || next+n > len(buf) {
		return nil, incomplete
	}
	return buf[next : next+n], complete
}

func fieldLen(buf []byte, offset int) (int, int, bool) {
	if offset < 0 || offset+2 > len(buf) {
		return 0, 0, false
	}
	return int(binary.BigEndian.Uint16(buf[offset:])), offset + 2, true
}

// CN extracts the CN attribute value from a comma-separated KEY=VALUE
// certificate subject string. The key comparison is case-insensitive and the
// first match wins; a missing or malformed subject yields empty.
func CN(subject string) string {
	if subject == "" {
		return ""
	}

	for _, pair := range strings.Split(subject, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "CN") {
			return value
		}
	}

	return ""
}
