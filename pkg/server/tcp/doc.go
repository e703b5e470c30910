// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package tcp implements the bridge's TCP front.
//
// # Overview
//
// The TCP server accepts MQTT connections and uses a pluggable parser to
// handle packet inspection and authorization before proxying to the
// broker. It supports TLS and mTLS, graceful shutdown, and bidirectional
// streaming.
//
// # Architecture
//
//	┌─────────┐         ┌─────────┐         ┌─────────┐
//	│ Client  │ ←─TCP─→ │  Server │ ←─TCP─→ │ Broker  │
//	└─────────┘         └─────────┘         └─────────┘
//	                         ↓
//	                    ┌─────────┐
//	                    │ Parser  │
//	                    └─────────┘
//	                         ↓
//	                    ┌─────────┐
//	                    │ Handler │
//	                    └─────────┘
//
// # Connection Flow
//
//  1. Client connects to server
//  2. Server accepts connection, completes TLS handshake when configured
//  3. When the client presented a certificate, the certificate gate
//     inspects the raw CONNECT bytes before any MQTT parsing
//  4. Server dials the broker
//  5. Server spawns two goroutines:
//     - Upstream: Client → Broker (calls parser.Parse(Upstream))
//     - Downstream: Broker → Client (calls parser.Parse(Downstream))
//  6. Both goroutines run until connection closes
//  7. Server calls handler.OnDisconnect()
//  8. Both connections closed
//
// # Certificate Gate
//
// On mTLS listeners the server buffers the connection's initial bytes
// and feeds them to the connect gate, which compares the CONNECT
// password with the CN of the verified client certificate. A mismatch
// is answered with CONNACK return code 4 and the connection closes
// before the broker or the identity service is involved. On a match
// the buffered bytes are replayed into the parser, so the CONNECT is
// processed exactly once.
//
// # Graceful Shutdown
//
// When context is canceled:
//
//  1. Server stops accepting new connections
//  2. Server waits for existing connections (with timeout)
//  3. After ShutdownTimeout, forcefully closes remaining connections
//  4. Returns ErrShutdownTimeout if timeout exceeded
//
// # Configuration
//
//   - Address: Server listen address (e.g., ":8883")
//   - TargetAddress: Broker address (e.g., "broker:1883")
//   - TLSConfig: Optional TLS configuration
//   - ShutdownTimeout: Max wait time for graceful shutdown (default: 30s)
//   - Logger: Structured logger
//
// # Error Handling
//
//   - Connection errors: Logged and connection closed
//   - Parser errors: OnClientError and OnDisconnect called, connection closed
//   - Denied CONNECT: CONNACK return code 4 written, connection closed
//   - Broker dial errors: Logged and client connection closed
//   - Shutdown timeout: Returns ErrShutdownTimeout
package tcp
