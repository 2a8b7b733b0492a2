package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// SOA is the start-of-authority payload (RFC 1035 §3.3.13). MName is the
// primary name server; RName is the responsible mailbox with the local part
// as its first label.
type SOA struct {
	MName   domain.Name
	RName   domain.Name
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (s SOA) RRType() domain.RRType { return domain.RRTypeSOA }

func (s SOA) MaxLength() int {
	return s.MName.MaxEncodedLength() + s.RName.MaxEncodedLength() + 20
}

func (s SOA) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d",
		s.MName, s.RName, s.Serial, s.Refresh, s.Retry, s.Expire, s.Minimum)
}

func decodeSOA(r *reader) (domain.RData, error) {
	mname, err := r.name()
	if err != nil {
		return nil, err
	}
	rname, err := r.name()
	if err != nil {
		return nil, err
	}
	var fields [5]uint32
	for i := range fields {
		fields[i], err = r.uint32()
		if err != nil {
			return nil, err
		}
	}
	return SOA{
		MName:   mname,
		RName:   rname,
		Serial:  fields[0],
		Refresh: fields[1],
		Retry:   fields[2],
		Expire:  fields[3],
		Minimum: fields[4],
	}, nil
}

func encodeSOA(rd domain.RData, b Builder) error {
	s, ok := rd.(SOA)
	if !ok {
		return wrongType(domain.RRTypeSOA, rd)
	}
	if err := b.WriteName(s.MName, true); err != nil {
		return err
	}
	if err := b.WriteName(s.RName, true); err != nil {
		return err
	}
	b.WriteUint32(s.Serial)
	b.WriteUint32(s.Refresh)
	b.WriteUint32(s.Retry)
	b.WriteUint32(s.Expire)
	b.WriteUint32(s.Minimum)
	return nil
}
