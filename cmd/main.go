// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/absmach/mbridge"
	"github.com/absmach/mbridge/pkg/bridge"
	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/health"
	"github.com/absmach/mbridge/pkg/identity"
	"github.com/absmach/mbridge/pkg/messaging/mqtt"
	"github.com/absmach/mbridge/pkg/messaging/nats"
	"github.com/absmach/mbridge/pkg/metrics"
	mqttparser "github.com/absmach/mbridge/pkg/parser/mqtt"
	"github.com/absmach/mbridge/pkg/proxy"
	"github.com/absmach/mbridge/pkg/ratelimit"
	"github.com/absmach/mbridge/pkg/topics"
)

const (
	svcName   = "mbridge"
	svcPrefix = "MBRIDGE_"

	mqttWithoutTLS = "MBRIDGE_MQTT_"
	mqttWithTLS    = "MBRIDGE_MQTT_TLS_"
	mqttWithmTLS   = "MBRIDGE_MQTT_MTLS_"

	mqttWSWithoutTLS = "MBRIDGE_WS_"
	mqttWSWithTLS    = "MBRIDGE_WS_TLS_"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	// Load .env file
	if err := godotenv.Load(); err == nil {
		fmt.Println("loaded configuration from .env")
	}

	cfg, err := mbridge.NewServiceConfig(env.Options{Prefix: svcPrefix})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load service configuration: %s\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.New().String()
	}

	// Message bus
	pubsub, err := nats.NewPubSub(cfg.NATSURL, logger)
	if err != nil {
		logger.Error("failed to connect to message bus", slog.String("url", cfg.NATSURL), slog.Any("error", err))
		os.Exit(1)
	}
	defer pubsub.Close()

	// Identity service
	identityTLS, err := cfg.IdentityTLS()
	if err != nil {
		logger.Error("failed to load identity CA", slog.Any("error", err))
		os.Exit(1)
	}
	idc, idconn, err := identity.Connect(cfg.IdentityGRPCURL, identityTLS, cfg.IdentityTimeout)
	if err != nil {
		logger.Error("failed to connect to identity service", slog.String("url", cfg.IdentityGRPCURL), slog.Any("error", err))
		os.Exit(1)
	}
	defer idconn.Close()

	// Broker forwarder for bus-to-MQTT traffic
	forwarder, err := mqtt.NewForwarder(cfg.BrokerURL, svcName+"-"+cfg.InstanceID, cfg.ForwarderTimeout)
	if err != nil {
		logger.Error("failed to connect to broker", slog.String("url", cfg.BrokerURL), slog.Any("error", err))
		os.Exit(1)
	}
	defer forwarder.Close()

	m := metrics.New(svcName)

	// Session handler chain
	var h handler.Handler = bridge.NewHandler(newInstrumentedIdentity(idc, m), pubsub, logger)
	h = newInstrumentedHandler(h, m)
	var limiter *ratelimit.Limiter
	if cfg.RateLimitCapacity > 0 {
		limiter = ratelimit.NewLimiter(cfg.RateLimitCapacity, cfg.RateLimitRefill, 0)
		defer limiter.Close()
		h = newRateLimitedHandler(h, limiter, m)
	}

	// Bus-to-broker relay
	relay := bridge.NewRelay(forwarder, cfg.RelayConcurrency, m, logger)
	if err := pubsub.Subscribe(ctx, topics.SubjectWildcard, relay.Handle); err != nil {
		logger.Error("failed to subscribe to message bus", slog.Any("error", err))
		os.Exit(1)
	}

	// Front listeners
	for _, prefix := range []string{mqttWithoutTLS, mqttWithTLS, mqttWithmTLS} {
		if err := startMQTTProxy(g, ctx, prefix, cfg.ShutdownTimeout, h, logger); err != nil {
			logger.Error("failed to start MQTT listener", slog.String("prefix", prefix), slog.Any("error", err))
			os.Exit(1)
		}
	}
	for _, prefix := range []string{mqttWSWithoutTLS, mqttWSWithTLS} {
		if err := startWebSocketProxy(g, ctx, prefix, cfg.ShutdownTimeout, h, logger); err != nil {
			logger.Error("failed to start WebSocket listener", slog.String("prefix", prefix), slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Operational HTTP surface
	if cfg.OpsPort != "" {
		checker := health.NewChecker(svcName, cfg.InstanceID, 0)
		checker.Register("nats", func(context.Context) error {
			if !pubsub.Connected() {
				return fmt.Errorf("not connected to %s", cfg.NATSURL)
			}
			return nil
		})
		checker.Register("broker", func(context.Context) error {
			if !forwarder.Connected() {
				return fmt.Errorf("not connected to %s", cfg.BrokerURL)
			}
			return nil
		})
		g.Go(func() error {
			return serveOps(ctx, cfg.OpsPort, checker, logger)
		})
	}

	// Signal handler
	g.Go(func() error {
		return stopSignalHandler(ctx, cancel, logger)
	})

	logger.Info("bridge started",
		slog.String("instance", cfg.InstanceID),
		slog.String("broker", cfg.BrokerURL),
		slog.String("bus", cfg.NATSURL),
	)

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("bridge service terminated with error: %s", err))
	} else {
		logger.Info("bridge service stopped")
	}
}

func startMQTTProxy(g *errgroup.Group, ctx context.Context, envPrefix string, shutdownTimeout time.Duration, h handler.Handler, logger *slog.Logger) error {
	cfg, err := mbridge.NewConfig(env.Options{Prefix: envPrefix})
	if err != nil {
		return err
	}

	// Listener disabled
	if cfg.Port == "" {
		return nil
	}

	mqttCfg := proxy.MQTTConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		TargetHost:      cfg.TargetHost,
		TargetPort:      cfg.TargetPort,
		TLSConfig:       cfg.TLSConfig,
		ShutdownTimeout: shutdownTimeout,
		Logger:          logger,
	}

	mqttProxy, err := proxy.NewMQTT(mqttCfg, h)
	if err != nil {
		return err
	}

	g.Go(func() error {
		return mqttProxy.Listen(ctx)
	})

	logger.Info("MQTT listener started", slog.String("prefix", envPrefix), slog.String("port", cfg.Port))
	return nil
}

func startWebSocketProxy(g *errgroup.Group, ctx context.Context, envPrefix string, shutdownTimeout time.Duration, h handler.Handler, logger *slog.Logger) error {
	cfg, err := mbridge.NewConfig(env.Options{Prefix: envPrefix})
	if err != nil {
		return err
	}

	// Listener disabled
	if cfg.Port == "" {
		return nil
	}

	// Build broker WebSocket URL
	protocol := cfg.TargetProtocol
	if protocol == "" {
		protocol = "ws"
	}
	targetURL := fmt.Sprintf("%s://%s:%s%s", protocol, cfg.TargetHost, cfg.TargetPort, cfg.TargetPath)

	wsCfg := proxy.WebSocketConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		TargetURL:       targetURL,
		Parser:          &mqttparser.Parser{},
		TLSConfig:       cfg.TLSConfig,
		ShutdownTimeout: shutdownTimeout,
		Logger:          logger,
	}

	wsProxy, err := proxy.NewWebSocket(wsCfg, h)
	if err != nil {
		return err
	}

	g.Go(func() error {
		return wsProxy.Listen(ctx)
	})

	logger.Info("WebSocket listener started", slog.String("prefix", envPrefix), slog.String("port", cfg.Port))
	return nil
}

func serveOps(ctx context.Context, port string, checker *health.Checker, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", checker.Handler())
	mux.HandleFunc("/live", checker.LivenessHandler())
	mux.HandleFunc("/ready", checker.ReadinessHandler())

	server := &http.Server{Addr: ":" + port, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	logger.Info("operational server started", slog.String("port", port))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func stopSignalHandler(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger) error {
	c := make(chan os.Signal, 2)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-c:
		logger.Info("received shutdown signal")
		cancel()
		return nil
	case <-ctx.Done():
		return nil
	}
}
