package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/common/rrdata"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// messageCodec implements MessageCodec.
type messageCodec struct {
	logger log.Logger
}

// NewMessageCodec creates a codec using the provided logger for debug-level
// wire tracing.
func NewMessageCodec(logger log.Logger) *messageCodec {
	return &messageCodec{
		logger: logger,
	}
}

// Encode serializes a message with name compression enabled.
func (c *messageCodec) Encode(msg domain.Message) ([]byte, error) {
	return c.encode(msg, false)
}

// EncodeCanonical serializes a message with compression off and labels
// lowercased, the deterministic form used for signature computation.
func (c *messageCodec) EncodeCanonical(msg domain.Message) ([]byte, error) {
	return c.encode(msg, true)
}

func (c *messageCodec) encode(msg domain.Message, canonical bool) ([]byte, error) {
	for _, counted := range [][]domain.ResourceRecord{msg.Answers, msg.Authority, msg.Additional} {
		if len(counted) > 65535 {
			return nil, fmt.Errorf("%w: section holds %d records (max 65535)", domain.ErrInvalidArgument, len(counted))
		}
		// Buffer sizing below asks every record for its payload bound.
		for _, rr := range counted {
			if rr.Data == nil {
				return nil, fmt.Errorf("%w: record %s has no data", domain.ErrInvalidArgument, rr.Name)
			}
		}
	}
	if len(msg.Questions) > 65535 {
		return nil, fmt.Errorf("%w: message holds %d questions (max 65535)", domain.ErrInvalidArgument, len(msg.Questions))
	}

	b := &builder{
		buf:       make([]byte, 0, msg.MaxLength()),
		comp:      newCompressor(),
		canonical: canonical,
	}

	// Header
	b.WriteUint16(msg.ID)
	b.WriteUint16(msg.PackFlags())
	b.WriteUint16(uint16(len(msg.Questions)))
	b.WriteUint16(uint16(len(msg.Answers)))
	b.WriteUint16(uint16(len(msg.Authority)))
	b.WriteUint16(uint16(len(msg.Additional)))

	for _, q := range msg.Questions {
		if err := b.WriteName(q.Name, true); err != nil {
			return nil, err
		}
		b.WriteUint16(uint16(q.Type))
		b.WriteUint16(uint16(q.Class))
	}

	for _, section := range [][]domain.ResourceRecord{msg.Answers, msg.Authority, msg.Additional} {
		for _, rr := range section {
			if err := c.encodeRecord(b, rr); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Debug(map[string]any{
		"id":   msg.ID,
		"size": len(b.buf),
		"raw":  fmt.Sprintf("%x", b.buf),
	}, "Encoded DNS message")

	return b.buf, nil
}

// encodeRecord writes one resource record: owner name, the 10 fixed octets
// with a RDLENGTH placeholder, the payload, then the patched length.
func (c *messageCodec) encodeRecord(b *builder, rr domain.ResourceRecord) error {
	if rr.Data == nil {
		return fmt.Errorf("%w: record %s has no data", domain.ErrInvalidArgument, rr.Name)
	}
	if err := b.WriteName(rr.Name, true); err != nil {
		return err
	}
	b.WriteUint16(uint16(rr.Type))
	b.WriteUint16(uint16(rr.Class))
	b.WriteUint32(rr.TTL)

	lengthAt := len(b.buf)
	b.WriteUint16(0)
	if err := rrdata.Encode(rr.Data, b); err != nil {
		return err
	}
	written := len(b.buf) - lengthAt - 2
	if written > 65535 {
		return fmt.Errorf("%w: record data is %d bytes (max 65535)", domain.ErrInvalidArgument, written)
	}
	b.patchUint16(lengthAt, uint16(written))
	return nil
}

// Decode parses a wire-format message into its domain form. Record data is
// decoded through the registry over the full buffer so embedded names can
// follow compression pointers.
func (c *messageCodec) Decode(data []byte) (domain.Message, error) {
	if len(data) < 12 {
		return domain.Message{}, fmt.Errorf("%w: message shorter than header", domain.ErrFormat)
	}

	var msg domain.Message
	msg.ID = binary.BigEndian.Uint16(data[0:2])
	msg.UnpackFlags(binary.BigEndian.Uint16(data[2:4]))
	qdCount := binary.BigEndian.Uint16(data[4:6])
	anCount := binary.BigEndian.Uint16(data[6:8])
	nsCount := binary.BigEndian.Uint16(data[8:10])
	arCount := binary.BigEndian.Uint16(data[10:12])

	offset := 12
	for i := 0; i < int(qdCount); i++ {
		q, next, err := decodeQuestion(data, offset)
		if err != nil {
			return domain.Message{}, fmt.Errorf("question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
		offset = next
	}

	sections := []struct {
		count uint16
		out   *[]domain.ResourceRecord
		name  string
	}{
		{anCount, &msg.Answers, "answer"},
		{nsCount, &msg.Authority, "authority"},
		{arCount, &msg.Additional, "additional"},
	}
	for _, section := range sections {
		for i := 0; i < int(section.count); i++ {
			rr, next, err := decodeRecord(data, offset)
			if err != nil {
				return domain.Message{}, fmt.Errorf("%s record %d: %w", section.name, i, err)
			}
			*section.out = append(*section.out, rr)
			offset = next
		}
	}

	c.logger.Debug(map[string]any{
		"id":      msg.ID,
		"rcode":   msg.RCode.String(),
		"answers": len(msg.Answers),
		"size":    len(data),
	}, "Decoded DNS message")

	return msg, nil
}

// decodeQuestion parses one question entry at offset.
func decodeQuestion(data []byte, offset int) (domain.Question, int, error) {
	name, next, err := decodeName(data, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if next+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("%w: truncated question", domain.ErrFormat)
	}
	q := domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[next : next+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4])),
	}
	return q, next + 4, nil
}

// decodeRecord parses one resource record at offset, consuming exactly
// RDLENGTH payload bytes through the registry.
func decodeRecord(data []byte, offset int) (domain.ResourceRecord, int, error) {
	name, next, err := decodeName(data, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if next+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: truncated record header", domain.ErrFormat)
	}
	rrtype := domain.RRType(binary.BigEndian.Uint16(data[next : next+2]))
	class := domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4]))
	ttl := binary.BigEndian.Uint32(data[next+4 : next+8])
	rdLength := int(binary.BigEndian.Uint16(data[next+8 : next+10]))
	next += 10

	if next+rdLength > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record data overruns message", domain.ErrFormat)
	}
	rd, err := rrdata.Decode(rrtype, data, next, rdLength, nameResolver{msg: data})
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}

	rr := domain.ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  rd,
	}
	return rr, next + rdLength, nil
}

// nameResolver adapts decodeName to the registry's embedded-name interface.
type nameResolver struct {
	msg []byte
}

func (r nameResolver) ResolveName(off int) (domain.Name, int, error) {
	return decodeName(r.msg, off)
}

var _ MessageCodec = &messageCodec{}
