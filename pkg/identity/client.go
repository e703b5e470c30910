// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package identity wraps the gRPC identity service used to authenticate
// clients and authorize channel access.
package identity

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/absmach/mbridge/pkg/errors"
	v1 "github.com/absmach/mbridge/pkg/identity/v1"
)

// Client resolves credentials to principal identities and answers
// channel access questions. Implementations must be safe for
// concurrent use.
type Client interface {
	// Identify resolves a client key to the ID of the thing it
	// belongs to. It returns errors.ErrUnauthorized when the key is
	// not recognized.
	Identify(ctx context.Context, key string) (string, error)

	// CanAccess checks whether the key may exchange messages over
	// the given channel. It returns the thing ID on success and
	// errors.ErrUnauthorized on denial.
	CanAccess(ctx context.Context, key, chanID string) (string, error)
}

type client struct {
	svc     v1.IdentityServiceClient
	timeout time.Duration
}

var _ Client = (*client)(nil)

// Connect dials the identity service and returns a Client bound to the
// connection. When tlsCfg is nil the connection is plaintext.
func Connect(address string, tlsCfg *tls.Config, timeout time.Duration) (Client, *grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if tlsCfg != nil {
		creds = credentials.NewTLS(tlsCfg)
	}
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, nil, err
	}
	return NewClient(v1.NewIdentityServiceClient(conn), timeout), conn, nil
}

// NewClient wraps a generated gRPC client with per-call timeouts and
// error translation.
func NewClient(svc v1.IdentityServiceClient, timeout time.Duration) Client {
	return &client{svc: svc, timeout: timeout}
}

func (c *client) Identify(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.svc.Identify(ctx, &v1.Token{Value: key})
	if err != nil {
		return "", translate(err)
	}
	return res.GetValue(), nil
}

func (c *client) CanAccess(ctx context.Context, key, chanID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.svc.CanAccess(ctx, &v1.AccessReq{Token: key, ChanId: chanID})
	if err != nil {
		return "", translate(err)
	}
	return res.GetValue(), nil
}

// translate maps gRPC failures to bridge errors. Anything that is not
// an explicit denial is treated as the service being unavailable, and
// callers deny access in that case as well.
func translate(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", errors.ErrServiceUnavailable, err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied, codes.NotFound, codes.InvalidArgument:
		return fmt.Errorf("%w: %s", errors.ErrUnauthorized, st.Message())
	default:
		return fmt.Errorf("%w: %s", errors.ErrServiceUnavailable, st.Message())
	}
}
