// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package tcp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/eclipse/paho.mqtt.golang/packets"
	"github.com/google/uuid"

	"github.com/absmach/mbridge/pkg/connect"
	bridgeerrors "github.com/absmach/mbridge/pkg/errors"
	"github.com/absmach/mbridge/pkg/handler"
	"github.com/absmach/mbridge/pkg/parser"
	"github.com/absmach/mbridge/pkg/parser/mqtt"
)

var (
	// ErrShutdownTimeout is returned when graceful shutdown exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timeout exceeded")
)

// maxConnectBytes bounds how much of a connection's initial traffic the
// certificate gate will buffer while waiting for a complete CONNECT.
const maxConnectBytes = 8192

// Config holds the TCP server configuration.
type Config struct {
	// Address is the listen address (host:port)
	Address string

	// TargetAddress is the MQTT broker address to proxy to (host:port)
	TargetAddress string

	// TLSConfig is optional TLS configuration for the listener
	TLSConfig *tls.Config

	// ShutdownTimeout is the maximum time to wait for active connections to drain
	// during graceful shutdown. After this timeout, remaining connections are
	// forcefully closed.
	ShutdownTimeout time.Duration

	// Logger for server events
	Logger *slog.Logger
}

// Server is a TCP server that accepts MQTT connections and proxies them
// to the broker using a pluggable parser. On mTLS listeners it runs the
// certificate gate over the raw CONNECT bytes before any MQTT parsing.
type Server struct {
	config  Config
	parser  parser.Parser
	handler handler.Handler
	wg      sync.WaitGroup
	mu      sync.Mutex
}

// New creates a new TCP server with the given configuration, parser, and handler.
func New(cfg Config, p parser.Parser, h handler.Handler) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	return &Server{
		config:  cfg,
		parser:  p,
		handler: h,
	}
}

// Listen starts the TCP server and blocks until the context is cancelled.
// It implements graceful shutdown with connection draining.
func (s *Server) Listen(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address, err)
	}

	// Wrap with TLS if configured
	if s.config.TLSConfig != nil {
		listener = tls.NewListener(listener, s.config.TLSConfig)
		s.config.Logger.Info("TLS enabled", slog.String("address", s.config.Address))
	}

	s.config.Logger.Info("TCP server started", slog.String("address", s.config.Address))

	// Create a separate context for active connections
	// This allows us to control when to forcefully close connections
	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	// Accept loop
	acceptDone := make(chan struct{})
	go func() {
		defer close(acceptDone)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					// Expected error during shutdown
					return
				default:
					s.config.Logger.Error("failed to accept connection", slog.String("error", err.Error()))
					continue
				}
			}

			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				if err := s.handleConn(connCtx, conn); err != nil && !errors.Is(err, io.EOF) {
					s.config.Logger.Debug("connection handler error",
						slog.String("remote", conn.RemoteAddr().String()),
						slog.String("error", err.Error()))
				}
			}()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	s.config.Logger.Info("shutdown signal received, closing listener")

	// Close the listener to stop accepting new connections
	if err := listener.Close(); err != nil {
		s.config.Logger.Error("error closing listener", slog.String("error", err.Error()))
	}

	// Wait for accept loop to finish
	<-acceptDone

	// Wait for active connections to drain with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.config.Logger.Info("all connections closed gracefully")
		return nil
	case <-time.After(s.config.ShutdownTimeout):
		s.config.Logger.Warn("shutdown timeout exceeded, forcing connection closure")
		// Cancel context to force close remaining connections
		connCancel()
		// Give a little more time for forced closure
		select {
		case <-done:
			return ErrShutdownTimeout
		case <-time.After(1 * time.Second):
			return ErrShutdownTimeout
		}
	}
}

// handleConn processes a single client connection by:
// 1. Creating a handler context with connection metadata
// 2. Running the certificate gate over the raw CONNECT bytes (mTLS only)
// 3. Dialing the broker
// 4. Starting bidirectional streaming with the parser
// 5. Cleaning up both connections when done
func (s *Server) handleConn(ctx context.Context, inbound net.Conn) error {
	defer inbound.Close()

	sessionID := uuid.New().String()

	// Create handler context
	hctx := &handler.Context{
		SessionID:  sessionID,
		RemoteAddr: inbound.RemoteAddr().String(),
		Protocol:   "mqtt",
	}

	// Extract client certificate if using TLS
	if tlsConn, ok := inbound.(*tls.Conn); ok {
		if err := tlsConn.Handshake(); err != nil {
			return bridgeerrors.Wrap(err, "TLS handshake failed")
		}
		state := tlsConn.ConnectionState()
		if len(state.PeerCertificates) > 0 {
			hctx.Cert = state.PeerCertificates[0]
		}
	}

	// Clients that present a certificate must carry the certificate
	// identity in the CONNECT password. The gate works on the raw
	// bytes, so a mismatch is refused before any MQTT parsing and
	// before the broker sees the connection.
	var upstream io.Reader = inbound
	if hctx.Cert != nil {
		peeked, err := s.gate(inbound, hctx)
		if err != nil {
			return err
		}
		upstream = io.MultiReader(bytes.NewReader(peeked), inbound)
	}

	// Dial broker
	outbound, err := net.Dial("tcp", s.config.TargetAddress)
	if err != nil {
		return bridgeerrors.Wrap(err, "failed to dial broker "+s.config.TargetAddress)
	}
	defer outbound.Close()

	s.config.Logger.Debug("connection established",
		slog.String("session", sessionID),
		slog.String("client", hctx.RemoteAddr),
		slog.String("broker", s.config.TargetAddress))

	// Start bidirectional streaming
	errCh := make(chan error, 2)

	// Upstream: client → broker
	go func() {
		err := s.stream(ctx, upstream, outbound, inbound, parser.Upstream, hctx)
		if errors.Is(err, mqtt.ErrConnectRefused) {
			// The broker never saw the CONNECT; answer the client here.
			s.refuse(inbound, sessionID)
		}
		errCh <- err
	}()

	// Downstream: broker → client
	go func() {
		err := s.stream(ctx, outbound, inbound, inbound, parser.Downstream, hctx)
		errCh <- err
	}()

	// Wait for either direction to complete
	var streamErr error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil && !errors.Is(err, io.EOF) {
			if streamErr == nil {
				streamErr = err
			}
		}
	}

	if streamErr != nil {
		// Attach session context so the error is attributable wherever
		// it surfaces, while errors.Is/As still see the cause.
		streamErr = bridgeerrors.New("stream", hctx.Protocol, sessionID, hctx.RemoteAddr, streamErr)
		if err := s.handler.OnClientError(context.Background(), hctx, streamErr); err != nil {
			s.config.Logger.Error("client error handler error",
				slog.String("session", sessionID),
				slog.String("error", err.Error()))
		}
	}

	// Notify disconnect
	if err := s.handler.OnDisconnect(context.Background(), hctx); err != nil {
		s.config.Logger.Error("disconnect handler error",
			slog.String("session", sessionID),
			slog.String("error", err.Error()))
	}

	s.config.Logger.Debug("connection closed",
		slog.String("session", sessionID))

	return streamErr
}

// gate buffers the connection's initial bytes until the certificate
// gate reaches a verdict. On Allow it returns the buffered bytes so
// the parser can replay them; on Deny it refuses the connection.
func (s *Server) gate(inbound net.Conn, hctx *handler.Context) ([]byte, error) {
	g := connect.NewGate(hctx.Cert.Subject.String())

	buf := make([]byte, 0, 512)
	chunk := make([]byte, 512)
	for {
		n, err := inbound.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			switch g.Check(buf) {
			case connect.Allow:
				return buf, nil
			case connect.Deny:
				s.refuse(inbound, hctx.SessionID)
				s.config.Logger.Warn("certificate gate refused connection",
					slog.String("session", hctx.SessionID),
					slog.String("remote", hctx.RemoteAddr),
					slog.String("identity", g.Identity()))
				return nil, bridgeerrors.ErrUnauthorized
			}
		}
		if err != nil {
			return nil, err
		}
		if len(buf) > maxConnectBytes {
			return nil, bridgeerrors.ErrProtocolViolation
		}
	}
}

// refuse answers a denied CONNECT with return code 4 (bad user name or
// password) so well-behaved clients stop retrying with the same
// credentials.
func (s *Server) refuse(conn net.Conn, sessionID string) {
	connack := packets.NewControlPacket(packets.Connack).(*packets.ConnackPacket)
	connack.ReturnCode = packets.ErrRefusedBadUsernameOrPassword
	if err := connack.Write(conn); err != nil {
		s.config.Logger.Debug("failed to write CONNACK refusal",
			slog.String("session", sessionID),
			slog.String("error", err.Error()))
	}
}

// stream continuously parses packets in one direction until an error or
// context cancellation. client is the writer back to the MQTT client,
// used to answer refusals that must not end the session.
func (s *Server) stream(ctx context.Context, r io.Reader, w, client io.Writer, dir parser.Direction, hctx *handler.Context) error {
	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Parse one packet
		err := s.parser.Parse(ctx, r, w, dir, s.handler, hctx)
		if err == nil {
			continue
		}

		// A fully denied SUBSCRIBE is not forwarded; the client gets
		// a SUBACK with a failure code per filter and the session
		// stays open.
		var refused *mqtt.SubscribeRefused
		if errors.As(err, &refused) {
			if werr := refused.Ack().Write(client); werr != nil {
				return werr
			}
			continue
		}
		return err
	}
}
