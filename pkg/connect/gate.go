// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connect

import "sync"

// Verdict is the outcome of a gate evaluation.
type Verdict int

const (
	// Pending means the CONNECT frame is incomplete; feed more bytes.
	Pending Verdict = iota

	// Allow means the CONNECT password matched the certificate identity.
	Allow

	// Deny means the connection must be refused before any MQTT handling.
	Deny
)

// Gate is the connection-scoped transport pre-filter: it compares the
// password carried in the client's CONNECT frame against the CN of its
// verified certificate. The expected identity is computed once per
// connection and the verdict is cached, so neither the certificate subject
// nor the frame is ever parsed twice.
type Gate struct {
	subject string

	idOnce   sync.Once
	identity string

	mu      sync.Mutex
	decided bool
	verdict Verdict
}

// NewGate creates a gate for the given certificate subject string.
func NewGate(subject string) *Gate {
	return &Gate{subject: subject}
}

// Identity returns the certificate-derived expected identity, computing it
// on first use. Empty when the subject carries no CN.
func (g *Gate) Identity() string {
	g.idOnce.Do(func() {
		g.identity = CN(g.subject)
	})
	return g.identity
}

// Check evaluates the accumulated initial bytes of the connection. Pending
// verdicts are not cached; the first Allow or Deny is final for the
// connection's lifetime.
func (g *Gate) Check(buf []byte) Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.decided {
		return g.verdict
	}

	identity := g.Identity()

	pass, st := password(buf)
	if st == incomplete {
		return Pending
	}

	g.decided = true
	g.verdict = Deny
	// A certificate without a CN never matches, whatever the password.
	if identity != "" && st == complete && string(pass) == identity {
		g.verdict = Allow
	}
	return g.verdict
}
