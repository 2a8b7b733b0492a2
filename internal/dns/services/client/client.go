// Package client is the user-facing facade: it turns (name, type, class,
// options) into a query message and hands it to the resolution engine.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/domain"
	"github.com/haukened/rr-dig/internal/dns/gateways/transport"
	"github.com/haukened/rr-dig/internal/dns/gateways/wire"
	"github.com/haukened/rr-dig/internal/dns/services/resolver"
)

// Client issues DNS queries against a fixed server list. It holds no mutable
// cross-query state; concurrent use is safe.
type Client struct {
	engine *resolver.Resolver
	logger log.Logger
}

// Options configures a Client. The zero value of the transport switches
// leaves both UDP and TCP enabled.
type Options struct {
	// Servers is the ordered list of resolver endpoints in host:port form.
	Servers []string

	// Timeout is the total budget for one query across all servers.
	Timeout time.Duration

	// DisableUDP and DisableTCP switch off a transport. At most one may be
	// set.
	DisableUDP bool
	DisableTCP bool

	// UDPSize overrides the 512-octet datagram cap for servers known to
	// accept more.
	UDPSize int

	// options to inject for testing purposes
	Dial   transport.DialFunc
	Logger log.Logger
}

// New creates a client for the given resolver endpoints.
func New(opts Options) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	codec := wire.NewMessageCodec(opts.Logger)
	set := transport.NewSet(opts.Logger, opts.Dial)

	engine, err := resolver.New(resolver.Options{
		Servers:    opts.Servers,
		Timeout:    opts.Timeout,
		UDPEnabled: !opts.DisableUDP,
		TCPEnabled: !opts.DisableTCP,
		UDPSize:    opts.UDPSize,
		Codec:      codec,
		Packet:     set.UDP,
		Stream:     streamOpener{tcp: set.TCP},
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Client{engine: engine, logger: opts.Logger}, nil
}

// Resolve performs a blocking lookup with the client's configured timeout.
func (c *Client) Resolve(name string, rrtype domain.RRType, class domain.RRClass, qopts *domain.QueryOptions) (domain.Message, error) {
	return c.ResolveContext(context.Background(), name, rrtype, class, qopts)
}

// ResolveContext performs a lookup under the caller's context. The context's
// cancellation and deadline propagate into every network operation; the
// client's timeout applies only when the context carries no deadline.
func (c *Client) ResolveContext(ctx context.Context, name string, rrtype domain.RRType, class domain.RRClass, qopts *domain.QueryOptions) (domain.Message, error) {
	query, err := BuildQuery(name, rrtype, class, qopts)
	if err != nil {
		return domain.Message{}, err
	}
	return c.engine.Resolve(ctx, query)
}

// SendMessage submits a prebuilt message with the client's configured timeout.
func (c *Client) SendMessage(msg domain.Message) (domain.Message, error) {
	return c.SendMessageContext(context.Background(), msg)
}

// SendMessageContext submits a prebuilt message under the caller's context.
// The engine stamps a fresh transaction ID per server attempt.
func (c *Client) SendMessageContext(ctx context.Context, msg domain.Message) (domain.Message, error) {
	return c.engine.Resolve(ctx, msg)
}

// BuildQuery assembles a standard query message: QR=0, OpCode QUERY, one
// question, RD and CD from the options (nil selects the defaults).
func BuildQuery(name string, rrtype domain.RRType, class domain.RRClass, qopts *domain.QueryOptions) (domain.Message, error) {
	if name == "" {
		return domain.Message{}, fmt.Errorf("%w: query name is required", domain.ErrInvalidArgument)
	}
	parsed, err := domain.ParseName(name)
	if err != nil {
		return domain.Message{}, err
	}
	question, err := domain.NewQuestion(parsed, rrtype, class)
	if err != nil {
		return domain.Message{}, err
	}

	options := domain.DefaultQueryOptions()
	if qopts != nil {
		options = *qopts
	}
	return domain.Message{
		OpCode:           domain.OpCodeQuery,
		RecursionDesired: options.RecursionDesired,
		CheckingDisabled: options.CheckingDisabled,
		Questions:        []domain.Question{question},
	}, nil
}

// streamOpener adapts the concrete TCP transport to the engine's stream
// interface.
type streamOpener struct {
	tcp *transport.TCP
}

func (o streamOpener) Open(ctx context.Context, server string) (resolver.Stream, error) {
	return o.tcp.Open(ctx, server)
}
