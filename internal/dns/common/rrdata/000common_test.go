package rrdata

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// testResolver walks plain uncompressed labels, enough for payload tests
// that embed names. Pointer chasing is the wire codec's concern.
type testResolver struct {
	msg []byte
}

func (r testResolver) ResolveName(off int) (domain.Name, int, error) {
	var labels []string
	for {
		if off >= len(r.msg) {
			return domain.Name{}, 0, fmt.Errorf("%w: unterminated name", domain.ErrFormat)
		}
		length := int(r.msg[off])
		if length == 0 {
			return domain.NameFromLabels(labels), off + 1, nil
		}
		if off+1+length > len(r.msg) {
			return domain.Name{}, 0, fmt.Errorf("%w: label overrun", domain.ErrFormat)
		}
		labels = append(labels, string(r.msg[off+1:off+1+length]))
		off += 1 + length
	}
}

// testBuilder collects encoder output, writing names uncompressed.
type testBuilder struct {
	buf []byte
}

func (b *testBuilder) WriteUint8(v uint8)   { b.buf = append(b.buf, v) }
func (b *testBuilder) WriteUint16(v uint16) { b.buf = append(b.buf, byte(v>>8), byte(v)) }
func (b *testBuilder) WriteUint32(v uint32) {
	b.buf = append(b.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
func (b *testBuilder) WriteBytes(p []byte) { b.buf = append(b.buf, p...) }

func (b *testBuilder) WriteName(n domain.Name, _ bool) error {
	for _, label := range n.Labels() {
		b.buf = append(b.buf, byte(len(label)))
		b.buf = append(b.buf, label...)
	}
	b.buf = append(b.buf, 0)
	return nil
}

// wireName encodes a presentation-form name as plain labels for test input.
func wireName(s string) []byte {
	var out []byte
	for _, label := range strings.Split(strings.TrimSuffix(s, "."), ".") {
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0)
}

// decodeAll is the test entry for one standalone payload buffer.
func decodeAll(t *testing.T, rrtype domain.RRType, payload []byte) (domain.RData, error) {
	t.Helper()
	return Decode(rrtype, payload, 0, len(payload), testResolver{msg: payload})
}

func TestDecodeUnknownTypeFallsBackToOpaque(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	rd, err := decodeAll(t, domain.RRType(4242), payload)
	require.NoError(t, err)

	op, ok := rd.(Opaque)
	require.True(t, ok)
	assert.Equal(t, domain.RRType(4242), op.RRType())
	assert.Equal(t, payload, op.Data)
	assert.Equal(t, 4, op.MaxLength())
	assert.Equal(t, `\# 4 deadbeef`, op.String())
}

func TestOpaqueRoundTrip(t *testing.T) {
	op := Opaque{Type: domain.RRType(4242), Data: []byte{1, 2, 3}}
	b := &testBuilder{}
	require.NoError(t, Encode(op, b))
	assert.Equal(t, op.Data, b.buf)
}

func TestDecodeRejectsLeftoverBytes(t *testing.T) {
	// an A record payload with a trailing byte must not parse
	payload := []byte{192, 0, 2, 1, 0xFF}
	_, err := decodeAll(t, domain.RRTypeA, payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestDecodeRejectsOutOfBoundsSlice(t *testing.T) {
	msg := []byte{1, 2, 3}
	_, err := Decode(domain.RRTypeA, msg, 2, 4, testResolver{msg: msg})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestEncodeRejectsMismatchedVariant(t *testing.T) {
	b := &testBuilder{}
	err := encodeA(TXT{Strings: []string{"x"}}, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
