// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/metrics"
)

// Metrics register on the default Prometheus registry, so the test
// binary builds them once under a namespace of its own.
var testMetrics = metrics.New("mbridge_cmd_test")

type nopHandler struct{}

func (nopHandler) AuthConnect(ctx context.Context, hctx *handler.Context) error {
	return nil
}

func (nopHandler) AuthPublish(ctx context.Context, hctx *handler.Context, topic *string, payload *[]byte) error {
	return nil
}

func (nopHandler) AuthSubscribe(ctx context.Context, hctx *handler.Context, topics *[]string) error {
	return nil
}

func (nopHandler) OnConnect(ctx context.Context, hctx *handler.Context) error {
	return nil
}

func (nopHandler) OnPublish(ctx context.Context, hctx *handler.Context, topic string, payload []byte) error {
	return nil
}

func (nopHandler) OnSubscribe(ctx context.Context, hctx *handler.Context, topics []string) error {
	return nil
}

func (nopHandler) OnUnsubscribe(ctx context.Context, hctx *handler.Context, topics []string) error {
	return nil
}

func (nopHandler) OnClientError(ctx context.Context, hctx *handler.Context, err error) error {
	return nil
}

func (nopHandler) OnDisconnect(ctx context.Context, hctx *handler.Context) error {
	return nil
}

func activeConnections(protocol string) float64 {
	return testutil.ToFloat64(testMetrics.ActiveConnections.WithLabelValues(protocol))
}

func TestInstrumentedHandlerGaugeRoundTrip(t *testing.T) {
	h := newInstrumentedHandler(nopHandler{}, testMetrics)
	hctx := &handler.Context{SessionID: "session-1", Protocol: "mqtt"}

	before := activeConnections("mqtt")
	if err := h.OnConnect(context.Background(), hctx); err != nil {
		t.Fatalf("OnConnect() error: %v", err)
	}
	if got := activeConnections("mqtt"); got != before+1 {
		t.Errorf("gauge after connect = %v, want %v", got, before+1)
	}

	if err := h.OnDisconnect(context.Background(), hctx); err != nil {
		t.Fatalf("OnDisconnect() error: %v", err)
	}
	if got := activeConnections("mqtt"); got != before {
		t.Errorf("gauge after disconnect = %v, want %v", got, before)
	}
}

func TestInstrumentedHandlerRefusedConnectLeavesGauge(t *testing.T) {
	h := newInstrumentedHandler(nopHandler{}, testMetrics)
	hctx := &handler.Context{SessionID: "refused-session", Protocol: "mqtt"}

	// Teardown fires for every connection, including ones that never
	// passed AuthConnect. Those must not move the gauge.
	before := activeConnections("mqtt")
	if err := h.OnDisconnect(context.Background(), hctx); err != nil {
		t.Fatalf("OnDisconnect() error: %v", err)
	}
	if err := h.OnDisconnect(context.Background(), hctx); err != nil {
		t.Fatalf("OnDisconnect() error: %v", err)
	}
	if got := activeConnections("mqtt"); got != before {
		t.Errorf("gauge after refused teardown = %v, want %v", got, before)
	}
}

func TestInstrumentedHandlerDoubleDisconnect(t *testing.T) {
	h := newInstrumentedHandler(nopHandler{}, testMetrics)
	hctx := &handler.Context{SessionID: "session-2", Protocol: "ws"}

	before := activeConnections("ws")
	if err := h.OnConnect(context.Background(), hctx); err != nil {
		t.Fatalf("OnConnect() error: %v", err)
	}
	if err := h.OnDisconnect(context.Background(), hctx); err != nil {
		t.Fatalf("OnDisconnect() error: %v", err)
	}
	if err := h.OnDisconnect(context.Background(), hctx); err != nil {
		t.Fatalf("OnDisconnect() error: %v", err)
	}
	if got := activeConnections("ws"); got != before {
		t.Errorf("gauge after double disconnect = %v, want %v", got, before)
	}
}

type stubIdentity struct {
	id  string
	err error
}

func (s *stubIdentity) Identify(ctx context.Context, key string) (string, error) {
	return s.id, s.err
}

func (s *stubIdentity) CanAccess(ctx context.Context, key, chanID string) (string, error) {
	return s.id, s.err
}

func TestInstrumentedIdentityRecordsCalls(t *testing.T) {
	idc := newInstrumentedIdentity(&stubIdentity{id: "thing-1"}, testMetrics)

	success := testMetrics.IdentityCalls.WithLabelValues("identify", "success")
	before := testutil.ToFloat64(success)

	id, err := idc.Identify(context.Background(), "key")
	if err != nil {
		t.Fatalf("Identify() error: %v", err)
	}
	if id != "thing-1" {
		t.Errorf("Identify() = %q, want thing-1", id)
	}
	if got := testutil.ToFloat64(success); got != before+1 {
		t.Errorf("identify success count = %v, want %v", got, before+1)
	}
}

func TestInstrumentedIdentityRecordsFailures(t *testing.T) {
	denied := errors.New("unauthorized")
	idc := newInstrumentedIdentity(&stubIdentity{err: denied}, testMetrics)

	failure := testMetrics.IdentityCalls.WithLabelValues("can_access", "error")
	before := testutil.ToFloat64(failure)

	if _, err := idc.CanAccess(context.Background(), "key", "chan-1"); !errors.Is(err, denied) {
		t.Fatalf("CanAccess() error = %v, want %v", err, denied)
	}
	if got := testutil.ToFloat64(failure); got != before+1 {
		t.Errorf("can_access error count = %v, want %v", got, before+1)
	}
}
