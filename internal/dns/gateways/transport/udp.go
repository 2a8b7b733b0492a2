package transport

import (
	"context"
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/common/log"
)

// UDP performs single-datagram DNS exchanges. Each exchange binds an
// ephemeral socket, sends the query, and reads datagrams until one passes
// the caller's accept check or the deadline expires.
type UDP struct {
	dial   DialFunc
	logger log.Logger
}

// Exchange sends packet to server and returns the first acceptable response
// datagram. maxSize caps the receive buffer (512 octets for non-EDNS
// queries; the engine passes the effective cap). accept filters out
// datagrams whose transaction ID or question does not match the query;
// rejected datagrams are discarded and reading continues within the
// remaining budget.
func (t *UDP) Exchange(ctx context.Context, server string, packet []byte, maxSize int, accept func([]byte) bool) ([]byte, error) {
	conn, err := t.dial(ctx, "udp", server)
	if err != nil {
		return nil, fmt.Errorf("udp connect to %s: %w", server, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("udp deadline: %w", err)
		}
	}

	type result struct {
		data []byte
		err  error
	}
	resultChan := make(chan result, 1)

	// The closed socket unblocks the reader when ctx wins the select below.
	go func() {
		if _, err := conn.Write(packet); err != nil {
			resultChan <- result{err: fmt.Errorf("udp write: %w", err)}
			return
		}
		buffer := make([]byte, maxSize)
		for {
			n, err := conn.Read(buffer)
			if err != nil {
				resultChan <- result{err: fmt.Errorf("udp read: %w", err)}
				return
			}
			datagram := make([]byte, n)
			copy(datagram, buffer[:n])
			if accept(datagram) {
				resultChan <- result{data: datagram}
				return
			}
			t.logger.Debug(map[string]any{
				"server": server,
				"size":   n,
			}, "Discarded non-matching datagram")
		}
	}()

	select {
	case res := <-resultChan:
		// A conn deadline derived from the context reports an I/O error;
		// surface the context's verdict instead.
		if res.err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
