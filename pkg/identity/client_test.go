// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	bridgeerrors "github.com/absmach/mbridge/pkg/errors"
	v1 "github.com/absmach/mbridge/pkg/identity/v1"
)

type stubService struct {
	identify  func(*v1.Token) (*v1.ThingID, error)
	canAccess func(*v1.AccessReq) (*v1.ThingID, error)
}

func (s *stubService) Identify(_ context.Context, in *v1.Token, _ ...grpc.CallOption) (*v1.ThingID, error) {
	return s.identify(in)
}

func (s *stubService) CanAccess(_ context.Context, in *v1.AccessReq, _ ...grpc.CallOption) (*v1.ThingID, error) {
	return s.canAccess(in)
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		name    string
		resp    *v1.ThingID
		err     error
		wantID  string
		wantErr error
	}{
		{
			name:   "known key",
			resp:   &v1.ThingID{Value: "thing-1"},
			wantID: "thing-1",
		},
		{
			name:    "unknown key",
			err:     status.Error(codes.Unauthenticated, "invalid key"),
			wantErr: bridgeerrors.ErrUnauthorized,
		},
		{
			name:    "service down",
			err:     status.Error(codes.Unavailable, "connection refused"),
			wantErr: bridgeerrors.ErrServiceUnavailable,
		},
		{
			name:    "deadline exceeded",
			err:     status.Error(codes.DeadlineExceeded, "timeout"),
			wantErr: bridgeerrors.ErrServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				identify: func(in *v1.Token) (*v1.ThingID, error) {
					if in.GetValue() != "key" {
						t.Errorf("Identify() sent token %q, want %q", in.GetValue(), "key")
					}
					return tt.resp, tt.err
				},
			}
			c := NewClient(svc, time.Second)

			id, err := c.Identify(context.Background(), "key")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Identify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Identify() unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("Identify() = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name    string
		resp    *v1.ThingID
		err     error
		wantID  string
		wantErr error
	}{
		{
			name:   "allowed",
			resp:   &v1.ThingID{Value: "thing-1"},
			wantID: "thing-1",
		},
		{
			name:    "denied",
			err:     status.Error(codes.PermissionDenied, "no access"),
			wantErr: bridgeerrors.ErrUnauthorized,
		},
		{
			name:    "unknown channel",
			err:     status.Error(codes.NotFound, "no such channel"),
			wantErr: bridgeerrors.ErrUnauthorized,
		},
		{
			name:    "service down",
			err:     status.Error(codes.Unavailable, "connection refused"),
			wantErr: bridgeerrors.ErrServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				canAccess: func(in *v1.AccessReq) (*v1.ThingID, error) {
					if in.GetToken() != "key" || in.GetChanId() != "42" {
						t.Errorf("CanAccess() sent (%q, %q), want (%q, %q)", in.GetToken(), in.GetChanId(), "key", "42")
					}
					return tt.resp, tt.err
				},
			}
			c := NewClient(svc, time.Second)

			id, err := c.CanAccess(context.Background(), "key", "42")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CanAccess() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CanAccess() unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("CanAccess() = %q, want %q", id, tt.wantID)
			}
		})
	}
}
