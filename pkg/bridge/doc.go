// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package bridge implements the session handler and the relay that
// together connect MQTT clients to the message bus.
//
// The Handler plugs into the proxy fronts: it authenticates CONNECT
// credentials against the identity service, authorizes every PUBLISH
// and SUBSCRIBE on its channel, and republishes authorized publishes
// to the bus as protobuf envelopes.
//
// The Relay runs in the opposite direction: subscribed to the bus
// channel subject space, it unwraps envelopes and forwards the
// payloads to the MQTT broker, skipping envelopes the bridge itself
// produced.
package bridge
