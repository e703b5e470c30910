// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package proxy

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/parser"
	"github.com/absmach/mbridge/pkg/parser/websocket"
)

const defaultShutdownTimeout = 30 * time.Second

// WebSocketConfig configures the WebSocket front of the bridge.
type WebSocketConfig struct {
	Host            string
	Port            string
	TargetURL       string
	Parser          parser.Parser // packet parser run after the upgrade
	TLSConfig       *tls.Config
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// WebSocket fronts the broker's WebSocket listener. Upgraded sessions
// are handed to the configured packet parser.
type WebSocket struct {
	server   *http.Server
	shutdown time.Duration
	logger   *slog.Logger
}

// NewWebSocket wires an HTTP server and the WebSocket parser into a
// front driven by the given session handler.
func NewWebSocket(cfg WebSocketConfig, h handler.Handler) (*WebSocket, error) {
	if cfg.TargetURL == "" {
		return nil, errors.New("broker target URL is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return &WebSocket{
		server: &http.Server{
			Addr:      net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:   websocket.NewParser(cfg.TargetURL, cfg.Parser, h, cfg.Logger),
			TLSConfig: cfg.TLSConfig,
		},
		shutdown: cfg.ShutdownTimeout,
		logger:   cfg.Logger,
	}, nil
}

// Listen serves until ctx is cancelled, then shuts the server down
// within the configured shutdown timeout.
func (p *WebSocket) Listen(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if p.server.TLSConfig != nil {
			errCh <- p.server.ListenAndServeTLS("", "")
			return
		}
		errCh <- p.server.ListenAndServe()
	}()

	p.logger.Info("WebSocket server started", slog.String("address", p.server.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), p.shutdown)
		defer cancel()

		if err := p.server.Shutdown(shutdownCtx); err != nil {
			p.logger.Error("error during shutdown", slog.String("error", err.Error()))
			return err
		}
		p.logger.Info("WebSocket server shutdown complete", slog.String("address", p.server.Addr))
		return nil

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
