// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"testing"
)

func TestBridgeErrorMessage(t *testing.T) {
	cases := []struct {
		desc string
		err  error
		msg  string
	}{
		{
			desc: "with session",
			err:  New("stream", "mqtt", "sess-1", "10.0.0.7:51234", ErrUnauthorized),
			msg:  "mqtt stream [sess-1] 10.0.0.7:51234: unauthorized",
		},
		{
			desc: "without session",
			err:  New("dial", "ws", "", "10.0.0.7:51234", ErrConnectionClosed),
			msg:  "ws dial 10.0.0.7:51234: connection closed",
		},
	}

	for _, tc := range cases {
		if tc.err.Error() != tc.msg {
			t.Errorf("%s: expected %q, got %q", tc.desc, tc.msg, tc.err.Error())
		}
	}
}

func TestBridgeErrorUnwrap(t *testing.T) {
	err := New("stream", "mqtt", "sess-1", "10.0.0.7:51234", ErrRateLimited)

	if !errors.Is(err, ErrRateLimited) {
		t.Error("expected errors.Is to see through BridgeError")
	}

	var berr *BridgeError
	if !errors.As(err, &berr) {
		t.Fatal("expected errors.As to recover the BridgeError")
	}
	if berr.Op != "stream" || berr.SessionID != "sess-1" {
		t.Errorf("unexpected context: op %q session %q", berr.Op, berr.SessionID)
	}
}

func TestNewNil(t *testing.T) {
	if err := New("stream", "mqtt", "sess-1", "10.0.0.7:51234", nil); err != nil {
		t.Errorf("expected nil for nil cause, got %v", err)
	}
}

func TestWrap(t *testing.T) {
	if err := Wrap(nil, "dial broker"); err != nil {
		t.Errorf("expected nil for nil cause, got %v", err)
	}

	err := Wrap(ErrServiceUnavailable, "dial broker")
	if err == nil {
		t.Fatal("expected a wrapped error")
	}
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Error("expected errors.Is to see through Wrap")
	}
	if err.Error() != "dial broker: identity service unavailable" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
