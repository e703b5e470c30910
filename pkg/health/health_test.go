// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var errUnreachable = errors.New("connection refused")

func up(context.Context) error   { return nil }
func down(context.Context) error { return errUnreachable }

func TestCheckerRun(t *testing.T) {
	cases := []struct {
		desc   string
		checks map[string]CheckFunc
		status Status
	}{
		{
			desc:   "no checks",
			checks: map[string]CheckFunc{},
			status: StatusUp,
		},
		{
			desc:   "all up",
			checks: map[string]CheckFunc{"nats": up, "broker": up},
			status: StatusUp,
		},
		{
			desc:   "one down",
			checks: map[string]CheckFunc{"nats": up, "broker": down},
			status: StatusDegraded,
		},
		{
			desc:   "all down",
			checks: map[string]CheckFunc{"nats": down, "broker": down},
			status: StatusDown,
		},
	}

	for _, tc := range cases {
		c := NewChecker("bridge", "test-0", 0)
		for name, fn := range tc.checks {
			c.Register(name, fn)
		}

		status, checks := c.Run(context.Background())
		if status != tc.status {
			t.Errorf("%s: expected status %s, got %s", tc.desc, tc.status, status)
		}
		if len(checks) != len(tc.checks) {
			t.Errorf("%s: expected %d checks, got %d", tc.desc, len(tc.checks), len(checks))
		}
	}
}

func TestCheckerRunRecordsFailure(t *testing.T) {
	c := NewChecker("bridge", "test-0", 0)
	c.Register("broker", down)

	_, checks := c.Run(context.Background())
	if len(checks) != 1 {
		t.Fatalf("expected 1 check, got %d", len(checks))
	}
	if checks[0].Status != StatusDown {
		t.Errorf("expected status %s, got %s", StatusDown, checks[0].Status)
	}
	if checks[0].Error != errUnreachable.Error() {
		t.Errorf("expected error %q, got %q", errUnreachable.Error(), checks[0].Error)
	}
	if checks[0].CheckedAt.IsZero() {
		t.Error("expected checked_at to be set")
	}
}

func TestCheckerRunPreservesOrder(t *testing.T) {
	c := NewChecker("bridge", "test-0", 0)
	names := []string{"nats", "broker", "identity"}
	for _, name := range names {
		c.Register(name, up)
	}

	_, checks := c.Run(context.Background())
	for i, name := range names {
		if checks[i].Name != name {
			t.Errorf("check %d: expected %s, got %s", i, name, checks[i].Name)
		}
	}
}

func TestCheckerRunCachesResults(t *testing.T) {
	calls := 0
	c := NewChecker("bridge", "test-0", time.Minute)
	c.Register("nats", func(context.Context) error {
		calls++
		return nil
	})

	c.Run(context.Background())
	c.Run(context.Background())
	if calls != 1 {
		t.Errorf("expected a single probe call within the cache interval, got %d", calls)
	}
}

func TestHandlerStatusCodes(t *testing.T) {
	cases := []struct {
		desc  string
		check CheckFunc
		code  int
	}{
		{desc: "dependency up", check: up, code: http.StatusOK},
		{desc: "dependency down", check: down, code: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		c := NewChecker("bridge", "test-0", 0)
		c.Register("broker", tc.check)

		rec := httptest.NewRecorder()
		c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != tc.code {
			t.Errorf("%s: expected status code %d, got %d", tc.desc, tc.code, rec.Code)
		}
	}
}

func TestHandlerDegradedStaysServing(t *testing.T) {
	c := NewChecker("bridge", "test-0", 0)
	c.Register("nats", up)
	c.Register("broker", down)

	rec := httptest.NewRecorder()
	c.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status code %d, got %d", http.StatusOK, rec.Code)
	}

	var rep struct {
		Service string  `json:"service"`
		Status  Status  `json:"status"`
		Checks  []Check `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatalf("unexpected decode error: %s", err)
	}
	if rep.Service != "bridge" {
		t.Errorf("expected service bridge, got %s", rep.Service)
	}
	if rep.Status != StatusDegraded {
		t.Errorf("expected status %s, got %s", StatusDegraded, rep.Status)
	}
	if len(rep.Checks) != 2 {
		t.Errorf("expected 2 checks, got %d", len(rep.Checks))
	}
}

func TestReadinessHandlerRejectsDegraded(t *testing.T) {
	c := NewChecker("bridge", "test-0", 0)
	c.Register("nats", up)
	c.Register("broker", down)

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status code %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestLivenessHandlerSkipsProbes(t *testing.T) {
	calls := 0
	c := NewChecker("bridge", "test-0", 0)
	c.Register("broker", func(context.Context) error {
		calls++
		return errUnreachable
	})

	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status code %d, got %d", http.StatusOK, rec.Code)
	}
	if calls != 0 {
		t.Errorf("expected no probe calls, got %d", calls)
	}
}
