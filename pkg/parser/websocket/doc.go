// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package websocket implements the WebSocket front of the bridge.
//
// The parser upgrades HTTP requests with gorilla/websocket, dials the
// broker's WebSocket endpoint, and adapts both sockets to net.Conn so
// the MQTT parser can stream packets over them unchanged. MQTT
// packets may span WebSocket message boundaries; the adapter drains
// binary messages in order and writes one message per packet.
//
// Authentication is handled by the MQTT parser: the CONNECT packet
// carries the thing key in the password field. A denied CONNECT is
// answered with CONNACK return code 4 before the socket closes.
//
// The parser sets hctx.Protocol = "ws" so audit logs distinguish the
// WebSocket front from plain TCP sessions.
package websocket
