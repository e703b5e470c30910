// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package proxy

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/parser/mqtt"
	"github.com/absmach/mbridge/pkg/server/tcp"
)

// MQTTConfig configures one TCP front of the bridge.
type MQTTConfig struct {
	Host            string
	Port            string
	TargetHost      string
	TargetPort      string
	TLSConfig       *tls.Config
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// MQTT fronts the broker's TCP listener. It terminates optional TLS
// or mTLS, runs the MQTT parser over the session, and forwards
// allowed packets to the broker.
type MQTT struct {
	server *tcp.Server
}

// NewMQTT wires a TCP server and the MQTT parser into a front driven
// by the given session handler.
func NewMQTT(cfg MQTTConfig, h handler.Handler) (*MQTT, error) {
	if cfg.TargetHost == "" || cfg.TargetPort == "" {
		return nil, errors.New("broker target address is required")
	}

	serverCfg := tcp.Config{
		Address:         net.JoinHostPort(cfg.Host, cfg.Port),
		TargetAddress:   net.JoinHostPort(cfg.TargetHost, cfg.TargetPort),
		TLSConfig:       cfg.TLSConfig,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          cfg.Logger,
	}

	return &MQTT{server: tcp.New(serverCfg, &mqtt.Parser{}, h)}, nil
}

// Listen serves until ctx is cancelled, then drains open sessions.
func (p *MQTT) Listen(ctx context.Context) error {
	return p.server.Listen(ctx)
}
