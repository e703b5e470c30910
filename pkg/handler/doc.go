// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package handler provides the core interface that links protocol parsers to business logic.
//
// # Architecture Overview
//
// The Handler interface sits between the protocol-specific parsers and
// the bridge's authorization and relaying logic. When a parser (MQTT
// over TCP or WebSocket) extracts credentials or operations from
// packets, it calls the corresponding Handler methods.
//
// # Data Flow
//
//	Client → Parser (extracts auth) → Handler (authorizes) → Server → Broker
//	Broker → Server → Parser → Handler (notifies) → Client
//
// # Handler Methods
//
// Authorization methods (Auth*) are called before forwarding packets:
//   - AuthConnect: Verifies client credentials during connection
//   - AuthPublish: Authorizes message publication
//   - AuthSubscribe: Authorizes topic subscriptions
//
// Notification methods (On*) are called after the corresponding event:
//   - OnConnect: Notifies successful connection
//   - OnPublish: Notifies message publication (relay point)
//   - OnSubscribe: Notifies subscription
//   - OnUnsubscribe: Notifies unsubscription
//   - OnClientError: Notifies a session error before teardown
//   - OnDisconnect: Notifies disconnection
//
// # Context
//
// The Context struct carries session metadata across all handler calls:
//   - SessionID: Unique identifier for this connection/session
//   - Username, Password: Extracted credentials
//   - ClientID: MQTT client identifier
//   - RemoteAddr: Client's network address
//   - Protocol: Front name (mqtt, ws)
//   - Cert: Client certificate for TLS connections
//
// # Implementation
//
// The bridge's own implementation lives in the bridge package; it
// authenticates sessions against the identity service and relays
// published messages to the message bus. The NoopHandler provides a
// pass-through implementation for testing.
package handler
