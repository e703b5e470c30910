// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package bridge

import "sync"

// registry tracks live sessions and the principal identity bound to
// each. A session is added when its connection is authorized and
// removed on disconnect. Identity results that arrive after the
// session is gone are discarded by bind.
type registry struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]string)}
}

// add registers a session with no principal bound yet. Idempotent.
func (r *registry) add(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		r.sessions[sessionID] = ""
	}
}

// bind attaches a principal identity to a live session. It reports
// false when the session has already been removed, in which case the
// identity is dropped.
func (r *registry) bind(sessionID, principal string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return false
	}
	r.sessions[sessionID] = principal
	return true
}

// principal returns the identity bound to the session, if any.
func (r *registry) principal(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.sessions[sessionID]
	if !ok || p == "" {
		return "", false
	}
	return p, true
}

// remove drops the session. Idempotent.
func (r *registry) remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// len reports the number of live sessions.
func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
