// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connect

import (
	"bytes"
	"testing"

	"github.com/eclipse/paho.mqtt.golang/packets"
)

// connectFrame builds a serialized CONNECT packet with the given credentials.
func connectFrame(t *testing.T, clientID, username string, password []byte) []byte {
	t.Helper()

	pkt := packets.NewControlPacket(packets.Connect).(*packets.ConnectPacket)
	pkt.ClientIdentifier = clientID
	pkt.ProtocolName = "MQTT"
	pkt.ProtocolVersion = 4
	if username != "" {
		pkt.UsernameFlag = true
		pkt.Username = username
	}
	if password != nil {
		pkt.PasswordFlag = true
		pkt.Password = password
	}

	var buf bytes.Buffer
	if err := pkt.Write(&buf); err != nil {
		t.Fatalf("failed to serialize CONNECT: %v", err)
	}
	return buf.Bytes()
}

func TestPassword(t *testing.T) {
	frame := connectFrame(t, "client-1", "thing-1", []byte("secret"))
	if got := Password(frame); !bytes.Equal(got, []byte("secret")) {
		t.Errorf("Password() = %q, want %q", got, "secret")
	}
}

func TestPasswordBinary(t *testing.T) {
	// Passwords are raw bytes on the wire, not text.
	secret := []byte{0x00, 0xff, 0x10, 0x80}
	frame := connectFrame(t, "client-1", "thing-1", secret)
	if got := Password(frame); !bytes.Equal(got, secret) {
		t.Errorf("Password() = %x, want %x", got, secret)
	}
}

func TestPasswordNoCredentials(t *testing.T) {
	frame := connectFrame(t, "client-1", "", nil)
	if got := Password(frame); got != nil {
		t.Errorf("Password() = %q, want nil", got)
	}
}

func TestPasswordUsernameOnly(t *testing.T) {
	frame := connectFrame(t, "client-1", "thing-1", nil)
	if got := Password(frame); got != nil {
		t.Errorf("Password() = %q, want nil", got)
	}
}

func TestPasswordNotConnect(t *testing.T) {
	pkt := packets.NewControlPacket(packets.Pingreq)
	var buf bytes.Buffer
	if err := pkt.Write(&buf); err != nil {
		t.Fatalf("failed to serialize PINGREQ: %v", err)
	}
	if got := Password(buf.Bytes()); got != nil {
		t.Errorf("Password() = %q, want nil", got)
	}
}

func TestPasswordTruncated(t *testing.T) {
	frame := connectFrame(t, "client-1", "thing-1", []byte("secret"))

	// Every strict prefix of the frame must report incomplete, never a
	// wrong password and never a read past the buffer end.
	for i := 0; i < len(frame); i++ {
		if _, st := password(frame[:i]); st != incomplete {
			t.Fatalf("password(frame[:%d]) status = %v, want incomplete", i, st)
		}
	}
	if _, st := password(frame); st != complete {
		t.Fatalf("password(full frame) status = %v, want complete", st)
	}
}

func TestCN(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{"plain", "CN=thing-1", "thing-1"},
		{"with other attributes", "O=Abstract Machines,OU=devices,CN=thing-1", "thing-1"},
		{"spaced keys", " O=Abstract Machines, CN=thing-1", "thing-1"},
		{"lowercase key", "cn=thing-1", "thing-1"},
		{"missing", "O=Abstract Machines,OU=devices", ""},
		{"empty", "", ""},
		{"bare token", "thing-1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CN(tt.subject); got != tt.want {
				t.Errorf("CN(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestGateAllow(t *testing.T) {
	g := NewGate("CN=thing-1,O=Abstract Machines")
	frame := connectFrame(t, "client-1", "thing-1", []byte("thing-1"))

	if v := g.Check(frame); v != Allow {
		t.Fatalf("Check() = %v, want Allow", v)
	}
	// Verdict is final: even garbage afterwards keeps the decision.
	if v := g.Check([]byte{0xff}); v != Allow {
		t.Errorf("Check() after decision = %v, want Allow", v)
	}
}

func TestGateDeny(t *testing.T) {
	g := NewGate("CN=thing-1")
	frame := connectFrame(t, "client-1", "thing-1", []byte("someone-else"))

	if v := g.Check(frame); v != Deny {
		t.Fatalf("Check() = %v, want Deny", v)
	}
	// A later matching frame cannot overturn a denial.
	match := connectFrame(t, "client-1", "thing-1", []byte("thing-1"))
	if v := g.Check(match); v != Deny {
		t.Errorf("Check() after denial = %v, want Deny", v)
	}
}

func TestGatePendingThenAllow(t *testing.T) {
	g := NewGate("CN=thing-1")
	frame := connectFrame(t, "client-1", "thing-1", []byte("thing-1"))

	if v := g.Check(frame[:4]); v != Pending {
		t.Fatalf("Check() on partial frame = %v, want Pending", v)
	}
	if v := g.Check(frame); v != Allow {
		t.Fatalf("Check() on full frame = %v, want Allow", v)
	}
}

func TestGateNoCredentials(t *testing.T) {
	g := NewGate("CN=thing-1")
	frame := connectFrame(t, "client-1", "", nil)

	if v := g.Check(frame); v != Deny {
		t.Errorf("Check() without credentials = %v, want Deny", v)
	}
}

func TestGateNoCN(t *testing.T) {
	// A verified certificate with no CN can never match any password.
	g := NewGate("O=Abstract Machines")
	frame := connectFrame(t, "client-1", "thing-1", []byte("thing-1"))

	if v := g.Check(frame); v != Deny {
		t.Errorf("Check() with CN-less subject = %v, want Deny", v)
	}
}

func TestGateIdentity(t *testing.T) {
	g := NewGate("CN=thing-1,O=Abstract Machines")
	if got := g.Identity(); got != "thing-1" {
		t.Errorf("Identity() = %q, want %q", got, "thing-1")
	}
}
