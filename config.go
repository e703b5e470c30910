// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mbridge holds the environment-driven configuration of the
// bridge service and its listeners.
package mbridge

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the configuration of a single listener (TCP or
// WebSocket front). A listener with no port configured is disabled.
type Config struct {
	Host           string `env:"HOST"            envDefault:""`
	Port           string `env:"PORT"            envDefault:""`
	TargetHost     string `env:"TARGET_HOST"     envDefault:"localhost"`
	TargetPort     string `env:"TARGET_PORT"     envDefault:"1884"`
	TargetProtocol string `env:"TARGET_PROTOCOL" envDefault:""`
	TargetPath     string `env:"TARGET_PATH"     envDefault:""`

	CertFile     string `env:"CERT_FILE"      envDefault:""`
	KeyFile      string `env:"KEY_FILE"       envDefault:""`
	ClientCAFile string `env:"CLIENT_CA_FILE" envDefault:""`

	// TLSConfig is built from the file fields above; nil when the
	// listener is plaintext.
	TLSConfig *tls.Config
}

// NewConfig parses a listener configuration from the environment using
// the given options (typically a prefix per listener).
func NewConfig(opts env.Options) (Config, error) {
	c := Config{}
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, err
	}
	if err := c.loadTLS(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// loadTLS builds the listener TLS configuration. A client CA file
// turns on mTLS with required client certificate verification.
func (c *Config) loadTLS() error {
	if c.CertFile == "" || c.KeyFile == "" {
		return nil
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to load server certificate: %w", err)
	}
	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if c.ClientCAFile != "" {
		ca, err := os.ReadFile(c.ClientCAFile)
		if err != nil {
			return fmt.Errorf("failed to read client CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(ca) {
			return fmt.Errorf("failed to parse client CA %s", c.ClientCAFile)
		}
		tlsCfg.ClientCAs = pool
		tlsCfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	c.TLSConfig = tlsCfg
	return nil
}

// ServiceConfig holds the service-wide configuration shared by all
// listeners: broker and bus endpoints, the identity service and the
// operational HTTP surface.
type ServiceConfig struct {
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	InstanceID string `env:"INSTANCE_ID" envDefault:""`

	// BrokerURL is the paho address of the MQTT broker for the
	// bus-to-broker forwarder.
	BrokerURL string `env:"BROKER_URL" envDefault:"tcp://localhost:1884"`

	// NATSURL is the message bus address.
	NATSURL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`

	IdentityGRPCURL string        `env:"IDENTITY_GRPC_URL" envDefault:"localhost:8181"`
	IdentityTimeout time.Duration `env:"IDENTITY_TIMEOUT"  envDefault:"10s"`
	IdentityCAFile  string        `env:"IDENTITY_CA_FILE"  envDefault:""`

	ForwarderTimeout time.Duration `env:"FORWARDER_TIMEOUT"  envDefault:"30s"`
	RelayConcurrency int64         `env:"RELAY_CONCURRENCY"  envDefault:"100"`

	// OpsPort serves /health, /live, /ready and /metrics. Empty
	// disables the operational server.
	OpsPort string `env:"OPS_PORT" envDefault:"8191"`

	// RateLimitCapacity of 0 disables per-client publish rate
	// limiting.
	RateLimitCapacity int64 `env:"RATE_LIMIT_CAPACITY" envDefault:"0"`
	RateLimitRefill   int64 `env:"RATE_LIMIT_REFILL"   envDefault:"100"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// NewServiceConfig parses the service-wide configuration from the
// environment.
func NewServiceConfig(opts env.Options) (ServiceConfig, error) {
	c := ServiceConfig{}
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return ServiceConfig{}, err
	}
	return c, nil
}

// IdentityTLS loads the CA used to verify the identity service, when
// one is configured.
func (c ServiceConfig) IdentityTLS() (*tls.Config, error) {
	if c.IdentityCAFile == "" {
		return nil, nil
	}
	ca, err := os.ReadFile(c.IdentityCAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity CA: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("failed to parse identity CA %s", c.IdentityCAFile)
	}
	return &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}
