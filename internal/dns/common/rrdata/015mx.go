package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// MX is the mail exchange payload (RFC 1035 §3.3.9).
type MX struct {
	Preference uint16
	Exchange   domain.Name
}

func (m MX) RRType() domain.RRType { return domain.RRTypeMX }
func (m MX) MaxLength() int        { return 2 + m.Exchange.MaxEncodedLength() }

func (m MX) String() string {
	return fmt.Sprintf("%d %s", m.Preference, m.Exchange)
}

func decodeMX(r *reader) (domain.RData, error) {
	pref, err := r.uint16()
	if err != nil {
		return nil, err
	}
	exchange, err := r.name()
	if err != nil {
		return nil, err
	}
	return MX{Preference: pref, Exchange: exchange}, nil
}

func encodeMX(rd domain.RData, b Builder) error {
	m, ok := rd.(MX)
	if !ok {
		return wrongType(domain.RRTypeMX, rd)
	}
	b.WriteUint16(m.Preference)
	return b.WriteName(m.Exchange, true)
}
