package rrdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

func soaPayload() []byte {
	payload := wireName("ns1.example.com")
	payload = append(payload, wireName("hostmaster.example.com")...)
	payload = append(payload,
		0x78, 0x4A, 0x3B, 0x2D, // serial 2018130733
		0x00, 0x00, 0x1C, 0x20, // refresh 7200
		0x00, 0x00, 0x0E, 0x10, // retry 3600
		0x00, 0x12, 0x75, 0x00, // expire 1209600
		0x00, 0x00, 0x01, 0x2C, // minimum 300
	)
	return payload
}

func TestDecodeSOA(t *testing.T) {
	rd, err := decodeAll(t, domain.RRTypeSOA, soaPayload())
	require.NoError(t, err)

	soa, ok := rd.(SOA)
	require.True(t, ok)
	assert.Equal(t, "ns1.example.com.", soa.MName.String())
	assert.Equal(t, "hostmaster.example.com.", soa.RName.String())
	assert.Equal(t, uint32(2018130733), soa.Serial)
	assert.Equal(t, uint32(7200), soa.Refresh)
	assert.Equal(t, uint32(3600), soa.Retry)
	assert.Equal(t, uint32(1209600), soa.Expire)
	assert.Equal(t, uint32(300), soa.Minimum)
}

func TestDecodeSOATruncatedCounters(t *testing.T) {
	payload := wireName("ns1.example.com")
	payload = append(payload, wireName("hostmaster.example.com")...)
	payload = append(payload, 0x00, 0x01)
	_, err := decodeAll(t, domain.RRTypeSOA, payload)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestEncodeSOARoundTrip(t *testing.T) {
	rd, err := decodeAll(t, domain.RRTypeSOA, soaPayload())
	require.NoError(t, err)

	b := &testBuilder{}
	require.NoError(t, Encode(rd, b))
	assert.Equal(t, soaPayload(), b.buf)
}

func TestSOAString(t *testing.T) {
	rd, err := decodeAll(t, domain.RRTypeSOA, soaPayload())
	require.NoError(t, err)
	assert.Equal(t,
		"ns1.example.com. hostmaster.example.com. 2018130733 7200 3600 1209600 300",
		rd.String())
}
