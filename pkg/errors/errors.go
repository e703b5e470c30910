// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package errors provides structured error handling for mbridge.
package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// ErrUnauthorized indicates authentication or authorization failure.
	// Every denial surfaces to the client through this single error so the
	// wire level cannot distinguish policy from transport trouble.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable indicates the identity service could not be
	// reached. Always treated as a denial (fail-closed).
	ErrServiceUnavailable = errors.New("identity service unavailable")

	// ErrConnectionClosed indicates the connection was closed.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrProtocolViolation indicates a protocol-level error.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrRateLimited indicates rate limit exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// BridgeError wraps an error with connection context.
type BridgeError struct {
	Op         string // Operation that failed
	Protocol   string // Protocol (mqtt, websocket)
	SessionID  string // Session identifier
	RemoteAddr string // Client address
	Err        error  // Underlying error
}

// Error implements the error interface.
func (e *BridgeError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s %s [%s] %s: %v", e.Protocol, e.Op, e.SessionID, e.RemoteAddr, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Protocol, e.Op, e.RemoteAddr, e.Err)
}

// Unwrap returns the underlying error.
func (e *BridgeError) Unwrap() error {
	return e.Err
}

// New creates a new BridgeError.
func New(op, protocol, sessionID, remoteAddr string, err error) error {
	if err == nil {
		return nil
	}
	return &BridgeError{
		Op:         op,
		Protocol:   protocol,
		SessionID:  sessionID,
		RemoteAddr: remoteAddr,
		Err:        err,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
