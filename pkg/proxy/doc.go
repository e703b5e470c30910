// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package proxy wires the bridge fronts together: a transport server,
// a packet parser, and the session handler chain.
//
// Two fronts are available. MQTT serves plain TCP with optional TLS
// or mTLS termination; with mTLS the certificate gate checks that the
// CONNECT password matches the certificate CN before any MQTT
// handling. WebSocket serves MQTT over WebSocket upgrades. Both
// terminate encryption at the bridge and forward plain traffic to the
// broker.
//
// A front is constructed from its config plus a handler and runs
// until its context is cancelled:
//
//	front, err := proxy.NewMQTT(cfg, h)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := front.Listen(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// The same handler is shared across fronts; the
// handler.Context.Protocol field distinguishes them in audit logs.
package proxy
