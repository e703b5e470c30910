// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package websocket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/eclipse/paho.mqtt.golang/packets"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/parser"
	"github.com/absmach/mbridge/pkg/parser/mqtt"
)

// Parser implements WebSocket protocol handling.
// It upgrades HTTP connections to WebSocket and then delegates to an
// underlying protocol parser (MQTT over WebSocket).
type Parser struct {
	upgrader         websocket.Upgrader
	targetURL        string
	underlyingParser parser.Parser
	handler          handler.Handler
	logger           *slog.Logger
}

var _ http.Handler = (*Parser)(nil)

// NewParser creates a new WebSocket parser.
// underlyingParser is the protocol parser to use after WebSocket upgrade (the MQTT parser).
func NewParser(targetURL string, underlyingParser parser.Parser, h handler.Handler, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	return &Parser{
		upgrader: websocket.Upgrader{
			Subprotocols: []string{"mqtt"},
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		targetURL:        targetURL,
		underlyingParser: underlyingParser,
		handler:          h,
		logger:           logger,
	}
}

// ServeHTTP implements http.Handler interface.
// It handles WebSocket upgrade and proxies the connection.
func (p *Parser) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Upgrade client connection to WebSocket
	clientConn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.logger.Error("failed to upgrade client connection",
			slog.String("remote", r.RemoteAddr),
			slog.String("error", err.Error()))
		return
	}
	defer clientConn.Close()

	p.logger.Debug("websocket connection upgraded",
		slog.String("remote", r.RemoteAddr))

	// Build broker WebSocket URL
	targetURL, err := p.buildTargetURL(r)
	if err != nil {
		p.logger.Error("failed to build target URL",
			slog.String("error", err.Error()))
		return
	}

	// Dial broker WebSocket
	serverConn, _, err := websocket.DefaultDialer.Dial(targetURL, nil)
	if err != nil {
		p.logger.Error("failed to dial broker WebSocket",
			slog.String("target", targetURL),
			slog.String("error", err.Error()))
		return
	}
	defer serverConn.Close()

	p.logger.Debug("connected to broker WebSocket",
		slog.String("target", targetURL))

	// Wrap connections as net.Conn
	clientNetConn := newConn(clientConn)
	serverNetConn := newConn(serverConn)

	// Create handler context
	sessionID := uuid.New().String()
	hctx := &handler.Context{
		SessionID:  sessionID,
		RemoteAddr: r.RemoteAddr,
		Protocol:   "ws",
	}

	// Create context for this session
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start bidirectional streaming with underlying protocol parser
	errCh := make(chan error, 2)

	// Upstream: client → broker
	go func() {
		err := p.stream(ctx, clientNetConn, serverNetConn, parser.Upstream, hctx)
		if errors.Is(err, mqtt.ErrConnectRefused) {
			// The broker never saw the CONNECT, so the refusal has
			// to be answered here.
			connack := packets.NewControlPacket(packets.Connack).(*packets.ConnackPacket)
			connack.ReturnCode = packets.ErrRefusedBadUsernameOrPassword
			if werr := connack.Write(clientNetConn); werr != nil {
				p.logger.Debug("failed to write CONNACK refusal",
					slog.String("session", sessionID),
					slog.String("error", werr.Error()))
			}
		}
		errCh <- err
	}()

	// Downstream: broker → client
	go func() {
		err := p.stream(ctx, serverNetConn, clientNetConn, parser.Downstream, hctx)
		errCh <- err
	}()

	// Wait for either direction to complete
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil && err != io.EOF {
			p.logger.Debug("stream error",
				slog.String("session", sessionID),
				slog.String("error", err.Error()))
			if nerr := p.handler.OnClientError(context.Background(), hctx, err); nerr != nil {
				p.logger.Error("client error handler failed",
					slog.String("session", sessionID),
					slog.String("error", nerr.Error()))
			}
		}
	}

	// Notify disconnect
	if err := p.handler.OnDisconnect(context.Background(), hctx); err != nil {
		p.logger.Error("disconnect handler error",
			slog.String("session", sessionID),
			slog.String("error", err.Error()))
	}

	p.logger.Debug("websocket connection closed",
		slog.String("session", sessionID))
}

// stream continuously parses packets in one direction.
func (p *Parser) stream(ctx context.Context, r, w io.ReadWriter, dir parser.Direction, hctx *handler.Context) error {
	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Parse one packet using the underlying protocol parser
		err := p.underlyingParser.Parse(ctx, r, w, dir, p.handler, hctx)
		if err == nil {
			continue
		}

		// A fully denied SUBSCRIBE never reached the broker; answer
		// the client on the upstream side's socket and keep going.
		var refused *mqtt.SubscribeRefused
		if dir == parser.Upstream && errors.As(err, &refused) {
			if werr := refused.Ack().Write(r); werr != nil {
				return werr
			}
			continue
		}
		return err
	}
}

// buildTargetURL constructs the broker WebSocket URL from the request.
func (p *Parser) buildTargetURL(r *http.Request) (string, error) {
	target, err := url.Parse(p.targetURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse target URL: %w", err)
	}

	// Preserve the request path
	target.Path = r.URL.Path
	target.RawQuery = r.URL.RawQuery

	return target.String(), nil
}

// Parse implements parser.Parser interface but is not used for WebSocket.
// WebSocket uses ServeHTTP instead since it requires HTTP upgrade.
func (p *Parser) Parse(ctx context.Context, r io.Reader, w io.Writer, dir parser.Direction, h handler.Handler, hctx *handler.Context) error {
	// Not used for WebSocket - WebSocket uses ServeHTTP instead
	return fmt.Errorf("Parse not supported for WebSocket parser, use ServeHTTP")
}
