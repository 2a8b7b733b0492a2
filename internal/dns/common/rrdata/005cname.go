package rrdata

import (
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// CNAME is the canonical-name alias payload (RFC 1035 §3.3.1).
type CNAME struct {
	Target domain.Name
}

func (c CNAME) RRType() domain.RRType { return domain.RRTypeCNAME }
func (c CNAME) MaxLength() int        { return c.Target.MaxEncodedLength() }
func (c CNAME) String() string        { return c.Target.String() }

func decodeCNAME(r *reader) (domain.RData, error) {
	target, err := r.name()
	if err != nil {
		return nil, err
	}
	return CNAME{Target: target}, nil
}

func encodeCNAME(rd domain.RData, b Builder) error {
	c, ok := rd.(CNAME)
	if !ok {
		return wrongType(domain.RRTypeCNAME, rd)
	}
	return b.WriteName(c.Target, true)
}
