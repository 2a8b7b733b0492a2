package rrdata

import (
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// NS is the authoritative name server payload (RFC 1035 §3.3.11).
type NS struct {
	Host domain.Name
}

func (ns NS) RRType() domain.RRType { return domain.RRTypeNS }
func (ns NS) MaxLength() int        { return ns.Host.MaxEncodedLength() }
func (ns NS) String() string        { return ns.Host.String() }

func decodeNS(r *reader) (domain.RData, error) {
	host, err := r.name()
	if err != nil {
		return nil, err
	}
	return NS{Host: host}, nil
}

func encodeNS(rd domain.RData, b Builder) error {
	ns, ok := rd.(NS)
	if !ok {
		return wrongType(domain.RRTypeNS, rd)
	}
	// NSDNAME is one of the RFC 1035 well-known names and may compress.
	return b.WriteName(ns.Host, true)
}
