package resolver

import (
	"context"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// MessageCodec converts between domain messages and wire bytes. Satisfied by
// the wire gateway; the engine never touches raw framing beyond this.
type MessageCodec interface {
	Encode(msg domain.Message) ([]byte, error)
	Decode(data []byte) (domain.Message, error)
}

// PacketTransport performs one datagram exchange: send the query, read
// datagrams until one passes accept or the context expires.
type PacketTransport interface {
	Exchange(ctx context.Context, server string, packet []byte, maxSize int, accept func([]byte) bool) ([]byte, error)
}

// StreamTransport opens a framed message stream to a server. One stream
// carries a query and every continuation frame of its response.
type StreamTransport interface {
	Open(ctx context.Context, server string) (Stream, error)
}

// Stream is a single framed conversation. Receive returns io.EOF on orderly
// end of stream. Close must be safe on every exit path.
type Stream interface {
	Send(ctx context.Context, packet []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}
