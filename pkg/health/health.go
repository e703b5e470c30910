// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package health exposes liveness and readiness probes for the bridge
// process. A Checker runs registered dependency probes on demand,
// caches the outcomes, and serves them as JSON.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status classifies a probe outcome.
type Status string

const (
	StatusUp       Status = "up"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

const (
	defaultCacheTTL = 10 * time.Second
	probeTimeout    = 5 * time.Second
)

// Check is the recorded outcome of a single dependency probe.
type Check struct {
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
	LatencyMs int64     `json:"latency_ms"`
}

// CheckFunc reports whether a dependency is reachable. A nil return
// marks the dependency up.
type CheckFunc func(ctx context.Context) error

type report struct {
	Service  string  `json:"service"`
	Instance string  `json:"instance,omitempty"`
	Status   Status  `json:"status"`
	Checks   []Check `json:"checks,omitempty"`
}

// Checker runs dependency probes and caches their results for a short
// interval so probe endpoints cannot hammer the dependencies.
type Checker struct {
	service  string
	instance string
	ttl      time.Duration

	mu      sync.Mutex
	order   []string
	checks  map[string]CheckFunc
	results map[string]Check
}

// NewChecker creates a checker for the named service instance. A zero
// ttl selects the default cache interval.
func NewChecker(service, instance string, ttl time.Duration) *Checker {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Checker{
		service:  service,
		instance: instance,
		ttl:      ttl,
		checks:   make(map[string]CheckFunc),
		results:  make(map[string]Check),
	}
}

// Register adds a named dependency probe. Probes run in registration
// order. Registering the same name again replaces the probe.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.checks[name]; !ok {
		c.order = append(c.order, name)
	}
	c.checks[name] = fn
}

// Run executes every registered probe, reusing cached outcomes that
// are still fresh, and returns the aggregate status. The aggregate is
// down when every probe failed, degraded when some did.
func (c *Checker) Run(ctx context.Context) (Status, []Check) {
	c.mu.Lock()
	defer c.mu.Unlock()

	checks := make([]Check, 0, len(c.order))
	failed := 0
	for _, name := range c.order {
		res, ok := c.results[name]
		if !ok || time.Since(res.CheckedAt) >= c.ttl {
			res = c.probe(ctx, name)
			c.results[name] = res
		}
		if res.Status != StatusUp {
			failed++
		}
		checks = append(checks, res)
	}

	switch {
	case len(checks) == 0 || failed == 0:
		return StatusUp, checks
	case failed == len(checks):
		return StatusDown, checks
	default:
		return StatusDegraded, checks
	}
}

func (c *Checker) probe(ctx context.Context, name string) Check {
	start := time.Now()
	err := c.checks[name](ctx)

	res := Check{
		Name:      name,
		Status:    StatusUp,
		CheckedAt: time.Now(),
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		res.Status = StatusDown
		res.Error = err.Error()
	}
	return res
}

// Handler serves the full health report. It answers 200 unless every
// dependency is down, so a single failed dependency keeps the
// instance visible while marking it degraded.
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		status, checks := c.Run(ctx)
		code := http.StatusOK
		if status == StatusDown {
			code = http.StatusServiceUnavailable
		}
		c.write(w, code, report{
			Service:  c.service,
			Instance: c.instance,
			Status:   status,
			Checks:   checks,
		})
	}
}

// ReadinessHandler answers 200 only when every dependency is up, so
// load balancers stop routing to an instance that lost its broker or
// message bus.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		status, checks := c.Run(ctx)
		code := http.StatusOK
		if status != StatusUp {
			code = http.StatusServiceUnavailable
		}
		c.write(w, code, report{
			Service:  c.service,
			Instance: c.instance,
			Status:   status,
			Checks:   checks,
		})
	}
}

// LivenessHandler answers 200 as long as the process can serve HTTP.
// It runs no dependency probes.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.write(w, http.StatusOK, report{
			Service:  c.service,
			Instance: c.instance,
			Status:   StatusUp,
		})
	}
}

func (c *Checker) write(w http.ResponseWriter, code int, rep report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(rep)
}
