// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package parser defines the packet pump contract shared by the
// bridge fronts. A front runs one Parser per direction of a session
// and relays whatever the parser lets through.
package parser

import (
	"context"
	"io"

	"github.com/absmach/mbridge/pkg/handler"
)

// Direction tells a Parser which side of the session it is pumping.
type Direction int

const (
	// Upstream pumps client packets toward the broker.
	Upstream Direction = iota

	// Downstream pumps broker packets back to the client.
	Downstream
)

func (d Direction) String() string {
	switch d {
	case Upstream:
		return "upstream"
	case Downstream:
		return "downstream"
	default:
		return "unknown"
	}
}

// Parser reads one packet from r, runs it through the session handler
// for authorization (upstream) or rewriting (downstream), and writes
// the result to w. Fronts call Parse in a loop until it returns an
// error; io.EOF means the peer closed cleanly. Credentials extracted
// from packets are recorded on hctx, which is shared by both
// directions of a session.
type Parser interface {
	Parse(ctx context.Context, r io.Reader, w io.Writer, dir Direction, h handler.Handler, hctx *handler.Context) error
}
