package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// CAA is the certification-authority-authorization payload (RFC 8659).
type CAA struct {
	Flags uint8
	Tag   string
	Value string
}

func (c CAA) RRType() domain.RRType { return domain.RRTypeCAA }
func (c CAA) MaxLength() int        { return 2 + len(c.Tag) + len(c.Value) }

func (c CAA) String() string {
	return fmt.Sprintf("%d %s %q", c.Flags, c.Tag, c.Value)
}

func decodeCAA(r *reader) (domain.RData, error) {
	flags, err := r.uint8()
	if err != nil {
		return nil, err
	}
	tagLen, err := r.uint8()
	if err != nil {
		return nil, err
	}
	if tagLen == 0 {
		return nil, fmt.Errorf("%w: CAA tag must not be empty", domain.ErrFormat)
	}
	tag, err := r.bytes(int(tagLen))
	if err != nil {
		return nil, err
	}
	value, err := r.bytes(r.remaining())
	if err != nil {
		return nil, err
	}
	return CAA{Flags: flags, Tag: string(tag), Value: string(value)}, nil
}

func encodeCAA(rd domain.RData, b Builder) error {
	c, ok := rd.(CAA)
	if !ok {
		return wrongType(domain.RRTypeCAA, rd)
	}
	if len(c.Tag) == 0 || len(c.Tag) > 255 {
		return fmt.Errorf("%w: CAA tag length %d out of range", domain.ErrInvalidArgument, len(c.Tag))
	}
	b.WriteUint8(c.Flags)
	b.WriteUint8(uint8(len(c.Tag)))
	b.WriteBytes([]byte(c.Tag))
	b.WriteBytes([]byte(c.Value))
	return nil
}
