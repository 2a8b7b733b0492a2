package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// SRV is the service-location payload (RFC 2782).
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   domain.Name
}

func (s SRV) RRType() domain.RRType { return domain.RRTypeSRV }
func (s SRV) MaxLength() int        { return 6 + s.Target.MaxEncodedLength() }

func (s SRV) String() string {
	return fmt.Sprintf("%d %d %d %s", s.Priority, s.Weight, s.Port, s.Target)
}

func decodeSRV(r *reader) (domain.RData, error) {
	priority, err := r.uint16()
	if err != nil {
		return nil, err
	}
	weight, err := r.uint16()
	if err != nil {
		return nil, err
	}
	port, err := r.uint16()
	if err != nil {
		return nil, err
	}
	target, err := r.name()
	if err != nil {
		return nil, err
	}
	return SRV{Priority: priority, Weight: weight, Port: port, Target: target}, nil
}

func encodeSRV(rd domain.RData, b Builder) error {
	s, ok := rd.(SRV)
	if !ok {
		return wrongType(domain.RRTypeSRV, rd)
	}
	b.WriteUint16(s.Priority)
	b.WriteUint16(s.Weight)
	b.WriteUint16(s.Port)
	// RFC 2782 forbids compressing the target name.
	return b.WriteName(s.Target, false)
}
