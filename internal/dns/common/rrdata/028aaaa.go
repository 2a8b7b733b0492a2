package rrdata

import (
	"fmt"
	"net"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// AAAA is the IPv6 host address payload (RFC 3596).
type AAAA struct {
	Addr net.IP
}

func (a AAAA) RRType() domain.RRType { return domain.RRTypeAAAA }
func (a AAAA) MaxLength() int        { return net.IPv6len }
func (a AAAA) String() string        { return a.Addr.String() }

// NewAAAA builds an AAAA payload from an IPv6 address string.
func NewAAAA(s string) (AAAA, error) {
	ip := net.ParseIP(s)
	if ip == nil || ip.To16() == nil || ip.To4() != nil {
		return AAAA{}, fmt.Errorf("%w: invalid AAAA record IP: %s", domain.ErrInvalidArgument, s)
	}
	return AAAA{Addr: ip.To16()}, nil
}

func decodeAAAA(r *reader) (domain.RData, error) {
	b, err := r.bytes(net.IPv6len)
	if err != nil {
		return nil, err
	}
	return AAAA{Addr: net.IP(b)}, nil
}

func encodeAAAA(rd domain.RData, b Builder) error {
	a, ok := rd.(AAAA)
	if !ok {
		return wrongType(domain.RRTypeAAAA, rd)
	}
	v16 := a.Addr.To16()
	if v16 == nil || a.Addr.To4() != nil {
		return fmt.Errorf("%w: AAAA record holds a non-IPv6 address", domain.ErrInvalidArgument)
	}
	b.WriteBytes(v16)
	return nil
}
