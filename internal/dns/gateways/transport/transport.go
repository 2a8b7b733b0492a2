// Package transport implements the client-side DNS transports: single
// datagram exchanges over UDP and length-prefixed message streams over TCP.
// Both take deadlines from the caller's context and release their sockets on
// every exit path.
package transport

import (
	"context"
	"net"

	"github.com/haukened/rr-dig/internal/dns/common/log"
)

// DialFunc defines a function type for establishing a network connection.
// It takes a context for cancellation, the network type (e.g., "tcp", "udp"),
// and the address to connect to, returning a net.Conn and an error if any occurs.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Set bundles the transports a resolution engine may use for one client.
type Set struct {
	UDP *UDP
	TCP *TCP
}

// NewSet builds both transports over a shared dialer. A nil dial falls back
// to net.Dialer.
func NewSet(logger log.Logger, dial DialFunc) Set {
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}
	return Set{
		UDP: &UDP{dial: dial, logger: logger},
		TCP: &TCP{dial: dial, logger: logger},
	}
}
