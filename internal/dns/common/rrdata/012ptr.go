package rrdata

import (
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// PTR is the reverse-lookup pointer payload (RFC 1035 §3.3.12).
type PTR struct {
	Target domain.Name
}

func (p PTR) RRType() domain.RRType { return domain.RRTypePTR }
func (p PTR) MaxLength() int        { return p.Target.MaxEncodedLength() }
func (p PTR) String() string        { return p.Target.String() }

func decodePTR(r *reader) (domain.RData, error) {
	target, err := r.name()
	if err != nil {
		return nil, err
	}
	return PTR{Target: target}, nil
}

func encodePTR(rd domain.RData, b Builder) error {
	p, ok := rd.(PTR)
	if !ok {
		return wrongType(domain.RRTypePTR, rd)
	}
	return b.WriteName(p.Target, true)
}
