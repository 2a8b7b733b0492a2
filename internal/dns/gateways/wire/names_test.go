package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

func TestDecodeNamePlainLabels(t *testing.T) {
	msg := []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	name, next, err := decodeName(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, "example.com.", name.String())
	assert.Equal(t, 13, next)
}

func TestDecodeNameRoot(t *testing.T) {
	name, next, err := decodeName([]byte{0}, 0)
	require.NoError(t, err)
	assert.True(t, name.IsRoot())
	assert.Equal(t, 1, next)
}

func TestDecodeNameFollowsPointer(t *testing.T) {
	// "example.com" at offset 0, "www" + pointer to 0 at offset 13
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
		3, 'w', 'w', 'w', 0xC0, 0x00,
	}
	name, next, err := decodeName(msg, 13)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", name.String())
	// the caller's cursor stops two bytes past the pointer
	assert.Equal(t, 19, next)
}

func TestDecodeNameBinaryLabel(t *testing.T) {
	// historical binary label followed by the root
	msg := []byte{0x41, 0x20, 0xC0, 0x00, 0x02, 0x01, 0x00}
	name, next, err := decodeName(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, next)
	require.Equal(t, 1, name.LabelCount())
	assert.Equal(t, `\[xc0000201/32]`, name.Labels()[0])
}

func TestDecodeNameBinaryLabelMasksUnusedBits(t *testing.T) {
	// 12 significant bits: the low nibble of the second octet must read as 0
	msg := []byte{0x41, 0x0C, 0xAB, 0xCF, 0x00}
	name, _, err := decodeName(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, `\[xabc0/12]`, name.Labels()[0])
}

func TestDecodeNameBinaryLabelZeroCountMeans256(t *testing.T) {
	msg := []byte{0x41, 0x00}
	msg = append(msg, make([]byte, 32)...)
	msg = append(msg, 0x00)
	name, next, err := decodeName(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, len(msg), next)
	assert.Contains(t, name.Labels()[0], "/256]")
}

func TestDecodeNameErrors(t *testing.T) {
	tests := []struct {
		name    string
		msg     []byte
		off     int
		wantErr error
	}{
		{
			name:    "offset out of bounds",
			msg:     []byte{0},
			off:     5,
			wantErr: domain.ErrFormat,
		},
		{
			name:    "unterminated name",
			msg:     []byte{3, 'w', 'w', 'w'},
			off:     0,
			wantErr: domain.ErrFormat,
		},
		{
			name:    "label overruns buffer",
			msg:     []byte{7, 'w', 'w'},
			off:     0,
			wantErr: domain.ErrFormat,
		},
		{
			name:    "truncated pointer",
			msg:     []byte{0xC0},
			off:     0,
			wantErr: domain.ErrFormat,
		},
		{
			name:    "forward pointer",
			msg:     []byte{0xC0, 0x04, 0, 0, 3, 'w', 'w', 'w', 0},
			off:     0,
			wantErr: domain.ErrFormat,
		},
		{
			name:    "self pointer",
			msg:     []byte{0, 0, 0xC0, 0x02},
			off:     2,
			wantErr: domain.ErrFormat,
		},
		{
			name:    "unsupported extended label",
			msg:     []byte{0x7F, 0x00},
			off:     0,
			wantErr: domain.ErrUnsupportedLabel,
		},
		{
			name:    "truncated binary label",
			msg:     []byte{0x41, 0x20, 0xC0},
			off:     0,
			wantErr: domain.ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeName(tt.msg, tt.off)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeNameRejectsTooManyLabels(t *testing.T) {
	var msg []byte
	for i := 0; i < domain.MaxLabelCount+1; i++ {
		msg = append(msg, 1, 'a')
	}
	msg = append(msg, 0)
	_, _, err := decodeName(msg, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestWriteNameCompression(t *testing.T) {
	b := &builder{buf: make([]byte, 0, 64), comp: newCompressor()}
	name, err := domain.ParseName("www.example.com")
	require.NoError(t, err)

	require.NoError(t, b.WriteName(name, true))
	firstLen := len(b.buf)

	// the second occurrence collapses to a single pointer
	require.NoError(t, b.WriteName(name, true))
	assert.Equal(t, firstLen+2, len(b.buf))
	assert.Equal(t, byte(0xC0), b.buf[firstLen]&0xC0)

	// a sibling shares the registered suffix
	sibling, err := domain.ParseName("mail.example.com")
	require.NoError(t, err)
	require.NoError(t, b.WriteName(sibling, true))
	// 1+4 label bytes plus a 2-byte pointer to "example.com"
	assert.Equal(t, firstLen+2+5+2, len(b.buf))

	// everything decodes back out
	decoded, _, err := decodeName(b.buf, firstLen)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", decoded.String())
	decoded, _, err = decodeName(b.buf, firstLen+2)
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com.", decoded.String())
}

func TestWriteNameCanonicalLowercasesAndNeverCompresses(t *testing.T) {
	b := &builder{buf: make([]byte, 0, 64), comp: newCompressor(), canonical: true}
	name, err := domain.ParseName("WWW.Example.COM")
	require.NoError(t, err)

	require.NoError(t, b.WriteName(name, true))
	firstLen := len(b.buf)
	require.NoError(t, b.WriteName(name, true))
	assert.Equal(t, 2*firstLen, len(b.buf))

	decoded, _, err := decodeName(b.buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", decoded.String())
}

func TestBinaryLabelRoundTrip(t *testing.T) {
	wireForm, err := encodeBinaryLabel(`\[xc0000201/32]`)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x20, 0xC0, 0x00, 0x02, 0x01}, wireForm)

	_, err = encodeBinaryLabel(`\[xzz/8]`)
	require.Error(t, err)
	_, err = encodeBinaryLabel(`\[xff/9]`)
	require.Error(t, err)
	_, err = encodeBinaryLabel(`not-a-binary-label`)
	require.Error(t, err)
}
