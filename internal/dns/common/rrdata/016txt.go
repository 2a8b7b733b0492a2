package rrdata

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// TXT is the descriptive-text payload (RFC 1035 §3.3.14): one or more
// character-strings of up to 255 octets each.
type TXT struct {
	Strings []string
}

func (t TXT) RRType() domain.RRType { return domain.RRTypeTXT }

func (t TXT) MaxLength() int {
	size := 0
	for _, s := range t.Strings {
		size += 1 + len(s)
	}
	return size
}

func (t TXT) String() string {
	quoted := make([]string, len(t.Strings))
	for i, s := range t.Strings {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, " ")
}

// Text returns the character-strings concatenated, the form most consumers
// of TXT payloads (SPF, DKIM) expect.
func (t TXT) Text() string {
	return strings.Join(t.Strings, "")
}

// NewTXT builds a TXT payload, validating the per-string length cap.
func NewTXT(strings ...string) (TXT, error) {
	if len(strings) == 0 {
		return TXT{}, fmt.Errorf("%w: TXT record requires at least one string", domain.ErrInvalidArgument)
	}
	for _, s := range strings {
		if len(s) > 255 {
			return TXT{}, fmt.Errorf("%w: TXT string exceeds 255 octets", domain.ErrInvalidArgument)
		}
	}
	return TXT{Strings: strings}, nil
}

func decodeTXT(r *reader) (domain.RData, error) {
	var out []string
	for r.remaining() > 0 {
		n, err := r.uint8()
		if err != nil {
			return nil, err
		}
		s, err := r.bytes(int(n))
		if err != nil {
			return nil, err
		}
		out = append(out, string(s))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty TXT record data", domain.ErrFormat)
	}
	return TXT{Strings: out}, nil
}

func encodeTXT(rd domain.RData, b Builder) error {
	t, ok := rd.(TXT)
	if !ok {
		return wrongType(domain.RRTypeTXT, rd)
	}
	for _, s := range t.Strings {
		if len(s) > 255 {
			return fmt.Errorf("%w: TXT string exceeds 255 octets", domain.ErrInvalidArgument)
		}
		b.WriteUint8(uint8(len(s)))
		b.WriteBytes([]byte(s))
	}
	return nil
}
