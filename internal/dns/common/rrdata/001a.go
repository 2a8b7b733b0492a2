package rrdata

import (
	"fmt"
	"net"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// A is the IPv4 host address payload (RFC 1035 §3.4.1).
type A struct {
	Addr net.IP
}

func (a A) RRType() domain.RRType { return domain.RRTypeA }
func (a A) MaxLength() int        { return net.IPv4len }
func (a A) String() string        { return a.Addr.String() }

// NewA builds an A payload from a dotted-quad string.
func NewA(s string) (A, error) {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return A{}, fmt.Errorf("%w: invalid A record IP: %s", domain.ErrInvalidArgument, s)
	}
	return A{Addr: ip.To4()}, nil
}

func decodeA(r *reader) (domain.RData, error) {
	b, err := r.bytes(net.IPv4len)
	if err != nil {
		return nil, err
	}
	return A{Addr: net.IP(b)}, nil
}

func encodeA(rd domain.RData, b Builder) error {
	a, ok := rd.(A)
	if !ok {
		return wrongType(domain.RRTypeA, rd)
	}
	v4 := a.Addr.To4()
	if v4 == nil {
		return fmt.Errorf("%w: A record holds a non-IPv4 address", domain.ErrInvalidArgument)
	}
	b.WriteBytes(v4)
	return nil
}
