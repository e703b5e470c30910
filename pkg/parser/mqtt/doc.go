// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mqtt implements the MQTT protocol parser.
//
// # Overview
//
// The MQTT parser inspects MQTT packets to extract authentication credentials
// and authorize protocol operations. It uses the eclipse/paho.mqtt.golang library
// for packet parsing and supports MQTT 3.1.1 protocol.
//
// # Packet Handling
//
// Upstream (Client → Broker):
//   - CONNECT: Extracts username/password, calls AuthConnect
//   - PUBLISH: Extracts topic/payload, calls AuthPublish
//   - SUBSCRIBE: Extracts topics, calls AuthSubscribe
//   - UNSUBSCRIBE: Calls OnUnsubscribe
//   - DISCONNECT: Calls OnDisconnect
//   - PINGREQ: Forwarded without modification
//
// Downstream (Broker → Client):
//   - PUBLISH: re-checked against AuthSubscribe before delivery
//   - All other packets forwarded without modification
//
// # Authentication Flow
//
//  1. Client sends CONNECT packet
//  2. Parser extracts ClientID, Username, Password
//  3. Parser calls handler.AuthConnect()
//  4. If authorized, CONNECT is forwarded to the broker
//  5. Broker sends CONNACK, forwarded to client
//
// A denied CONNECT makes Parse return ErrConnectRefused; the server
// answers the client with CONNACK return code 4 (bad user name or
// password) and closes the connection.
//
// # Publish Authorization
//
//  1. Client sends PUBLISH packet
//  2. Parser extracts topic and payload
//  3. Parser calls handler.AuthPublish()
//  4. If authorized, PUBLISH forwarded to the broker
//  5. handler.OnPublish() relays the message to the bus
//
// A denied publish closes the connection; MQTT 3.1.1 has no negative
// acknowledgement for PUBLISH.
//
// # Subscribe Authorization
//
//  1. Client sends SUBSCRIBE packet
//  2. Parser extracts topic filters
//  3. Parser calls handler.AuthSubscribe(), which may narrow the list
//  4. Surviving filters are forwarded to the broker
//
// # Protocol Field
//
// The parser sets hctx.Protocol = "mqtt" unless the transport already
// named itself (the WebSocket front sets "ws").
package mqtt
