// Package rrdata implements the typed record-data payloads and the registry
// that maps record types to their wire parsers and serializers. Unknown types
// fall through to an opaque byte payload so they survive round-trips.
package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// NameResolver reads a possibly compressed domain name out of the enclosing
// message buffer. Implemented by the wire codec, which owns the pointer
// chasing and loop protection.
type NameResolver interface {
	// ResolveName decodes the name starting at off and returns it together
	// with the offset of the first byte after the name's in-place portion.
	ResolveName(off int) (domain.Name, int, error)
}

// Builder is the serializer surface offered to record-data encoders.
// Implemented by the wire codec, which owns the compression table.
type Builder interface {
	WriteUint8(v uint8)
	WriteUint16(v uint16)
	WriteUint32(v uint32)
	WriteBytes(b []byte)

	// WriteName appends a domain name. Compression is applied only when both
	// the message context and the record type permit it.
	WriteName(n domain.Name, compressible bool) error
}

// codec bundles the parse and encode halves for one record type.
type codec struct {
	decode func(r *reader) (domain.RData, error)
	encode func(rd domain.RData, b Builder) error
}

var registry = map[domain.RRType]codec{
	domain.RRTypeA:     {decodeA, encodeA},
	domain.RRTypeNS:    {decodeNS, encodeNS},
	domain.RRTypeCNAME: {decodeCNAME, encodeCNAME},
	domain.RRTypeSOA:   {decodeSOA, encodeSOA},
	domain.RRTypePTR:   {decodePTR, encodePTR},
	domain.RRTypeMX:    {decodeMX, encodeMX},
	domain.RRTypeTXT:   {decodeTXT, encodeTXT},
	domain.RRTypeAAAA:  {decodeAAAA, encodeAAAA},
	domain.RRTypeSRV:   {decodeSRV, encodeSRV},
	domain.RRTypeCAA:   {decodeCAA, encodeCAA},
}

// Decode parses the RDLENGTH bytes at msg[off:off+length] into the typed
// payload for rrtype. Parsers must consume the payload exactly; leftover or
// missing bytes are a format error.
func Decode(rrtype domain.RRType, msg []byte, off, length int, names NameResolver) (domain.RData, error) {
	if off < 0 || length < 0 || off+length > len(msg) {
		return nil, fmt.Errorf("%w: record data exceeds message bounds", domain.ErrFormat)
	}
	c, ok := registry[rrtype]
	if !ok {
		data := make([]byte, length)
		copy(data, msg[off:off+length])
		return Opaque{Type: rrtype, Data: data}, nil
	}
	r := &reader{msg: msg, off: off, end: off + length, names: names}
	rd, err := c.decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s record data: %w", rrtype, err)
	}
	if err := r.expectDone(); err != nil {
		return nil, fmt.Errorf("%s record data: %w", rrtype, err)
	}
	return rd, nil
}

// Encode serializes rd through the builder. The builder's enclosing record
// header owns the RDLENGTH bookkeeping.
func Encode(rd domain.RData, b Builder) error {
	if op, ok := rd.(Opaque); ok {
		b.WriteBytes(op.Data)
		return nil
	}
	c, ok := registry[rd.RRType()]
	if !ok {
		return fmt.Errorf("%w: no encoder for %s record data", domain.ErrInvalidArgument, rd.RRType())
	}
	return c.encode(rd, b)
}

// Opaque carries the raw payload of a record type the registry does not
// model. Round-trips byte for byte.
type Opaque struct {
	Type domain.RRType
	Data []byte
}

func (o Opaque) RRType() domain.RRType { return o.Type }
func (o Opaque) MaxLength() int        { return len(o.Data) }

// String renders the payload in the RFC 3597 unknown-data form.
func (o Opaque) String() string {
	return fmt.Sprintf(`\# %d %x`, len(o.Data), o.Data)
}

// reader is a bounds-checked cursor over one record's payload slice of the
// message buffer.
type reader struct {
	msg   []byte
	off   int
	end   int
	names NameResolver
}

func (r *reader) remaining() int {
	return r.end - r.off
}

func (r *reader) uint8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, fmt.Errorf("%w: truncated record data", domain.ErrFormat)
	}
	v := r.msg[r.off]
	r.off++
	return v, nil
}

func (r *reader) uint16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, fmt.Errorf("%w: truncated record data", domain.ErrFormat)
	}
	v := uint16(r.msg[r.off])<<8 | uint16(r.msg[r.off+1])
	r.off += 2
	return v, nil
}

func (r *reader) uint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("%w: truncated record data", domain.ErrFormat)
	}
	v := uint32(r.msg[r.off])<<24 | uint32(r.msg[r.off+1])<<16 | uint32(r.msg[r.off+2])<<8 | uint32(r.msg[r.off+3])
	r.off += 4
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: truncated record data", domain.ErrFormat)
	}
	out := make([]byte, n)
	copy(out, r.msg[r.off:r.off+n])
	r.off += n
	return out, nil
}

// name reads an embedded domain name, which may point anywhere in the
// enclosing message.
func (r *reader) name() (domain.Name, error) {
	n, next, err := r.names.ResolveName(r.off)
	if err != nil {
		return domain.Name{}, err
	}
	if next > r.end {
		return domain.Name{}, fmt.Errorf("%w: name overruns record data", domain.ErrFormat)
	}
	r.off = next
	return n, nil
}

// expectDone enforces the exact-RDLENGTH invariant after a parse.
func (r *reader) expectDone() error {
	if r.off != r.end {
		return fmt.Errorf("%w: %d unconsumed payload bytes", domain.ErrFormat, r.end-r.off)
	}
	return nil
}

// wrongType is the uniform error for an encoder handed a mismatched variant.
func wrongType(want domain.RRType, got domain.RData) error {
	return fmt.Errorf("%w: %s encoder received %T", domain.ErrInvalidArgument, want, got)
}
