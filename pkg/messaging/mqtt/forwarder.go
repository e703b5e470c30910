// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mqtt injects bus traffic into the MQTT broker fan-out through a
// regular client connection, since the broker owns subscription dispatch.
package mqtt

import (
	"errors"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// QoS 1 gives at-least-once delivery into the broker; anything stronger is
// the broker's own business.
const qos = 1

var (
	// ErrConnect indicates the broker connection could not be established.
	ErrConnect = errors.New("failed to connect to MQTT broker")

	// ErrPublishTimeout indicates a publish was not acknowledged in time.
	ErrPublishTimeout = errors.New("failed to publish due to timeout reached")
)

// Forwarder publishes messages into the broker with at-least-once semantics.
type Forwarder struct {
	client  mqtt.Client
	timeout time.Duration
}

// NewForwarder connects to the broker at address (e.g. tcp://localhost:1884)
// with the given client id. The connection reconnects automatically.
func NewForwarder(address, id string, timeout time.Duration) (*Forwarder, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(address).
		SetClientID(id).
		SetAutoReconnect(true).
		SetConnectTimeout(timeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, ErrConnect
	}
	if token.Error() != nil {
		return nil, token.Error()
	}

	return &Forwarder{client: client, timeout: timeout}, nil
}

// Publish submits payload under topic and waits for the broker ack.
func (f *Forwarder) Publish(topic string, payload []byte) error {
	token := f.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(f.timeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}

// Connected reports whether the broker connection is currently up.
func (f *Forwarder) Connected() bool {
	return f.client.IsConnectionOpen()
}

// Close disconnects from the broker, allowing in-flight work to finish.
func (f *Forwarder) Close() {
	f.client.Disconnect(uint(f.timeout.Milliseconds()))
}
