// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package websocket

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// conn adapts a message-framed websocket connection to net.Conn so
// the byte-stream MQTT parser can run over it unchanged. Writes emit
// one binary message per call; reads drain binary messages in order.
type conn struct {
	ws *websocket.Conn

	readMu  sync.Mutex
	writeMu sync.Mutex
	frame   io.Reader
}

func newConn(ws *websocket.Conn) net.Conn {
	return &conn{ws: ws}
}

// Read returns bytes from the current message, advancing to the next
// one when the current message is drained. MQTT packets may span
// message boundaries, so an exhausted frame is not an error.
func (c *conn) Read(p []byte) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	for {
		if c.frame == nil {
			_, frame, err := c.ws.NextReader()
			if err != nil {
				return 0, err
			}
			c.frame = frame
		}

		n, err := c.frame.Read(p)
		if err == io.EOF {
			c.frame = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Write sends p as a single binary message.
func (c *conn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *conn) Close() error {
	return c.ws.Close()
}

func (c *conn) LocalAddr() net.Addr {
	return c.ws.LocalAddr()
}

func (c *conn) RemoteAddr() net.Addr {
	return c.ws.RemoteAddr()
}

func (c *conn) SetDeadline(t time.Time) error {
	if err := c.ws.SetReadDeadline(t); err != nil {
		return err
	}
	return c.ws.SetWriteDeadline(t)
}

func (c *conn) SetReadDeadline(t time.Time) error {
	return c.ws.SetReadDeadline(t)
}

func (c *conn) SetWriteDeadline(t time.Time) error {
	return c.ws.SetWriteDeadline(t)
}
