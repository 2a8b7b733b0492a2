// Package resolver implements the resolution engine: ordered server
// iteration with per-server time budgets, UDP with TCP fallback on
// truncation, and multi-message TCP response streams.
package resolver

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

const (
	defaultTimeout = 5 * time.Second
	defaultUDPSize = 512
)

// Resolver drives one query across an ordered server list. It owns no
// sockets itself; transports are injected and each attempt's connections are
// closed before the attempt returns.
type Resolver struct {
	servers    []string
	timeout    time.Duration
	udpEnabled bool
	tcpEnabled bool
	udpSize    int
	codec      MessageCodec
	packet     PacketTransport
	stream     StreamTransport
	clock      clock.Clock
	entropy    io.Reader
	logger     log.Logger
}

// Options configures a Resolver. Servers and Codec are required; transports
// may be left nil only when the corresponding protocol is disabled.
type Options struct {
	Servers    []string
	Timeout    time.Duration
	UDPEnabled bool
	TCPEnabled bool
	UDPSize    int
	Codec      MessageCodec
	Packet     PacketTransport
	Stream     StreamTransport

	// options to inject for testing purposes
	Clock   clock.Clock
	Entropy io.Reader
	Logger  log.Logger
}

// New creates a resolution engine with the specified options.
func New(opts Options) (*Resolver, error) {
	if len(opts.Servers) == 0 {
		return nil, fmt.Errorf("%w: no upstream DNS servers provided", domain.ErrInvalidArgument)
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("%w: message codec is required", domain.ErrInvalidArgument)
	}
	if !opts.UDPEnabled && !opts.TCPEnabled {
		return nil, fmt.Errorf("%w: at least one transport must be enabled", domain.ErrInvalidArgument)
	}
	if opts.UDPEnabled && opts.Packet == nil {
		return nil, fmt.Errorf("%w: udp enabled without a packet transport", domain.ErrInvalidArgument)
	}
	if opts.TCPEnabled && opts.Stream == nil {
		return nil, fmt.Errorf("%w: tcp enabled without a stream transport", domain.ErrInvalidArgument)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UDPSize <= 0 {
		opts.UDPSize = defaultUDPSize
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Entropy == nil {
		opts.Entropy = rand.Reader
	}
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	return &Resolver{
		servers:    opts.Servers,
		timeout:    opts.Timeout,
		udpEnabled: opts.UDPEnabled,
		tcpEnabled: opts.TCPEnabled,
		udpSize:    opts.UDPSize,
		codec:      opts.Codec,
		packet:     opts.Packet,
		stream:     opts.Stream,
		clock:      opts.Clock,
		entropy:    opts.Entropy,
		logger:     opts.Logger,
	}, nil
}

// Resolve sends the query to each configured server in order until one
// produces a usable response. Each server attempt receives a fair slice of
// the remaining budget. Transport and format failures demote to the next
// server; cancellation and caller errors propagate immediately. DNS-level
// RCODEs are returned in the message, never as errors.
func (r *Resolver) Resolve(ctx context.Context, query domain.Message) (domain.Message, error) {
	if err := query.Validate(); err != nil {
		return domain.Message{}, err
	}

	ctx, cancel := r.ensureContextDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}
	deadline, _ := ctx.Deadline()

	packet, err := r.codec.Encode(query)
	if err != nil {
		return domain.Message{}, err
	}

	var lastErr error
	for i, server := range r.servers {
		if err := ctx.Err(); err != nil {
			return domain.Message{}, err
		}
		remaining := deadline.Sub(r.clock.Now())
		if remaining <= 0 {
			return domain.Message{}, context.DeadlineExceeded
		}
		share := remaining / time.Duration(len(r.servers)-i)

		attemptCtx, attemptCancel := context.WithTimeout(ctx, share)
		resp, err := r.attempt(attemptCtx, server, query, packet)
		attemptCancel()

		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			// The global budget or the caller's cancellation tripped, not
			// just this attempt's slice.
			return domain.Message{}, ctx.Err()
		}
		if errors.Is(err, domain.ErrInvalidArgument) {
			return domain.Message{}, err
		}
		lastErr = err
		r.logger.Warn(map[string]any{
			"server": server,
			"error":  err.Error(),
		}, "Server attempt failed, trying next")
	}
	return domain.Message{}, fmt.Errorf("%w: %d servers tried: %w", domain.ErrNoResponse, len(r.servers), lastErr)
}

// attempt runs one server's UDP-then-TCP sequence. A fresh transaction ID is
// stamped per attempt so stale datagrams from earlier servers cannot match.
func (r *Resolver) attempt(ctx context.Context, server string, query domain.Message, packet []byte) (domain.Message, error) {
	id, err := r.transactionID()
	if err != nil {
		return domain.Message{}, err
	}
	query.ID = id
	binary.BigEndian.PutUint16(packet[0:2], id)

	if r.udpEnabled && len(packet) <= r.udpSize {
		resp, err := r.exchangeUDP(ctx, server, query, packet)
		switch {
		case err != nil && !r.tcpEnabled:
			return domain.Message{}, err
		case err != nil:
			// fall through to TCP
		case resp.Truncated && r.tcpEnabled:
			// Partial contents are discarded; the TCP retry below gets the
			// full answer from the same server.
			r.logger.Debug(map[string]any{
				"server": server,
				"id":     id,
			}, "UDP response truncated, retrying over TCP")
		case resp.Truncated:
			// TC with TCP disabled: hand back the truncated message as-is.
			return resp, nil
		default:
			return resp, nil
		}
	}

	if !r.tcpEnabled {
		return domain.Message{}, fmt.Errorf("%w: query is %d bytes, exceeds the %d-byte UDP limit with tcp disabled",
			domain.ErrInvalidArgument, len(packet), r.udpSize)
	}
	return r.exchangeTCP(ctx, server, query, packet)
}

// exchangeUDP performs the datagram exchange, accepting only responses whose
// transaction ID and first question match the query.
func (r *Resolver) exchangeUDP(ctx context.Context, server string, query domain.Message, packet []byte) (domain.Message, error) {
	var matched domain.Message
	accept := func(datagram []byte) bool {
		resp, err := r.codec.Decode(datagram)
		if err != nil {
			return false
		}
		if !resp.Response || resp.ID != query.ID {
			return false
		}
		if len(resp.Questions) == 0 || !resp.Questions[0].Equal(query.Questions[0]) {
			return false
		}
		matched = resp
		return true
	}

	if _, err := r.packet.Exchange(ctx, server, packet, r.udpSize, accept); err != nil {
		return domain.Message{}, err
	}
	return matched, nil
}

// exchangeTCP sends the query over one framed session and reads continuation
// frames until the response reports the stream complete or the server closes
// it. Section contents accumulate across frames.
func (r *Resolver) exchangeTCP(ctx context.Context, server string, query domain.Message, packet []byte) (domain.Message, error) {
	sess, err := r.stream.Open(ctx, server)
	if err != nil {
		return domain.Message{}, err
	}
	defer sess.Close()

	if err := sess.Send(ctx, packet); err != nil {
		return domain.Message{}, err
	}

	frame, err := sess.Receive(ctx)
	if err != nil {
		return domain.Message{}, err
	}
	combined, err := r.codec.Decode(frame)
	if err != nil {
		return domain.Message{}, err
	}
	if combined.ID != query.ID {
		return domain.Message{}, fmt.Errorf("%w: response ID %d does not match query ID %d",
			domain.ErrFormat, combined.ID, query.ID)
	}

	for combined.IsNextMessageWaiting() {
		frame, err := sess.Receive(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Message{}, err
		}
		next, err := r.codec.Decode(frame)
		if err != nil {
			return domain.Message{}, err
		}
		combined.Absorb(next)
	}
	return combined, nil
}

// transactionID draws a 16-bit ID from the cryptographic entropy source so
// off-path spoofing cannot predict it.
func (r *Resolver) transactionID() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r.entropy, buf[:]); err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ensureContextDeadline ensures the context has a deadline, adding the
// resolver's default timeout if needed. Returns the context (potentially with
// added timeout) and a cancel function if one was created.
func (r *Resolver) ensureContextDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, r.timeout)
	}
	return ctx, nil
}
