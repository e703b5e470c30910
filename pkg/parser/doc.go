// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package parser defines the interface for protocol-specific packet inspection and modification.
//
// # Architecture Overview
//
// Parsers are the core protocol-handling components of the bridge. They sit between
// the transport layer (TCP and WebSocket servers) and the business logic layer
// (handlers), inspecting MQTT packets to extract authentication credentials and
// authorize operations.
//
// # Parser Interface
//
// The Parser interface has a single method:
//
//	Parse(ctx context.Context, r io.Reader, w io.Writer, dir Direction, h handler.Handler, hctx *handler.Context) error
//
// This method is called by servers for each packet/message in both directions:
//   - Upstream (Client → Broker): Extracts auth, calls handler.Auth* methods
//   - Downstream (Broker → Client): Can modify responses, calls handler.On* methods
//
// # Bidirectional Flow
//
// Parsers handle packets flowing in both directions:
//
//	Upstream (Client → Broker):
//	  1. Read packet from client (r io.Reader)
//	  2. Parse and extract auth credentials
//	  3. Call handler.Auth* methods
//	  4. If authorized, write packet to broker (w io.Writer)
//	  5. May modify packet (e.g., update credentials)
//
//	Downstream (Broker → Client):
//	  1. Read packet from broker (r io.Reader)
//	  2. Parse packet
//	  3. Call handler.On* notification methods
//	  4. Write packet to client (w io.Writer)
//	  5. May modify packet if needed
//
// # Direction
//
// The Direction type indicates packet flow:
//   - Upstream: Client → Broker (requests, publishes, subscribes)
//   - Downstream: Broker → Client (responses, messages from broker)
//
// # Protocol-Specific Parsers
//
// Each front has its own parser implementation:
//   - parser/mqtt: MQTT over TCP
//   - parser/websocket: MQTT over WebSocket
//
// # Integration with Servers
//
// Servers call Parse() for each packet/message. The TCP server runs two
// goroutines per connection (upstream, downstream), each calling Parse()
// continuously until the connection closes.
package parser
