package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/haukened/rr-dig/internal/dns/common/log"
)

// TCP opens framed DNS sessions per RFC 1035 §4.2.2: every message travels
// behind a 16-bit big-endian length prefix.
type TCP struct {
	dial   DialFunc
	logger log.Logger
}

// Open establishes a connection to server. One session carries a query and
// the whole continuation stream of its response; the caller owns Close.
func (t *TCP) Open(ctx context.Context, server string) (*Session, error) {
	conn, err := t.dial(ctx, "tcp", server)
	if err != nil {
		return nil, fmt.Errorf("tcp connect to %s: %w", server, err)
	}
	return &Session{conn: conn, server: server, logger: t.logger}, nil
}

// Session is one TCP conversation with a server.
type Session struct {
	conn   net.Conn
	server string
	logger log.Logger
}

// Send writes one length-prefixed message.
func (s *Session) Send(ctx context.Context, packet []byte) error {
	if len(packet) > 65535 {
		return fmt.Errorf("message is %d bytes (max 65535 over tcp)", len(packet))
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.conn.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("tcp deadline: %w", err)
		}
	}

	framed := make([]byte, 2+len(packet))
	binary.BigEndian.PutUint16(framed, uint16(len(packet)))
	copy(framed[2:], packet)

	errChan := make(chan error, 1)
	go func() {
		_, err := s.conn.Write(framed)
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("tcp write to %s: %w", s.server, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive reads the next framed message: two length bytes, then that many
// bytes of payload. io.EOF reports an orderly end of stream.
func (s *Session) Receive(ctx context.Context) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.conn.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("tcp deadline: %w", err)
		}
	}

	type result struct {
		data []byte
		err  error
	}
	resultChan := make(chan result, 1)

	go func() {
		var prefix [2]byte
		if _, err := io.ReadFull(s.conn, prefix[:]); err != nil {
			resultChan <- result{err: err}
			return
		}
		length := binary.BigEndian.Uint16(prefix[:])
		payload := make([]byte, length)
		if _, err := io.ReadFull(s.conn, payload); err != nil {
			resultChan <- result{err: fmt.Errorf("tcp read from %s: %w", s.server, err)}
			return
		}
		s.logger.Debug(map[string]any{
			"server": s.server,
			"size":   length,
		}, "Received TCP frame")
		resultChan <- result{data: payload}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close releases the connection. Safe to call on every exit path.
func (s *Session) Close() error {
	return s.conn.Close()
}
