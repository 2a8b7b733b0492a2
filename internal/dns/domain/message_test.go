package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustName(t *testing.T, s string) Name {
	t.Helper()
	n, err := ParseName(s)
	require.NoError(t, err)
	return n
}

// fakeRData keeps message tests independent of the rrdata package.
type fakeRData struct {
	rrtype RRType
	size   int
}

func (f fakeRData) RRType() RRType { return f.rrtype }
func (f fakeRData) String() string { return "fake" }
func (f fakeRData) MaxLength() int { return f.size }

func TestPackUnpackFlagsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{
			name: "standard query",
			msg:  Message{OpCode: OpCodeQuery, RecursionDesired: true},
		},
		{
			name: "authoritative response",
			msg:  Message{Response: true, Authoritative: true, RecursionAvailable: true},
		},
		{
			name: "truncated response",
			msg:  Message{Response: true, Truncated: true, RecursionDesired: true},
		},
		{
			name: "dnssec bits",
			msg:  Message{Response: true, AuthenticData: true, CheckingDisabled: true},
		},
		{
			name: "reserved bit survives",
			msg:  Message{Zero: true},
		},
		{
			name: "unknown opcode and rcode preserved",
			msg:  Message{OpCode: OpCode(13), RCode: RCode(11)},
		},
		{
			name: "nxdomain update",
			msg:  Message{Response: true, OpCode: OpCodeUpdate, RCode: RCodeNXDomain},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded Message
			decoded.UnpackFlags(tt.msg.PackFlags())
			assert.Equal(t, tt.msg, decoded)
		})
	}
}

func TestPackFlagsBitPositions(t *testing.T) {
	msg := Message{Response: true, OpCode: OpCodeQuery, RecursionDesired: true}
	assert.Equal(t, uint16(0x8100), msg.PackFlags())

	msg = Message{RecursionDesired: true}
	assert.Equal(t, uint16(0x0100), msg.PackFlags())

	msg = Message{Response: true, Truncated: true, RCode: RCodeServFail}
	assert.Equal(t, uint16(0x8202), msg.PackFlags())
}

func TestMessageValidate(t *testing.T) {
	q, err := NewQuestion(mustName(t, "example.com"), RRTypeA, RRClassIN)
	require.NoError(t, err)

	valid := Message{Questions: []Question{q}}
	assert.NoError(t, valid.Validate())

	empty := Message{}
	err = empty.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	update := Message{OpCode: OpCodeUpdate}
	err = update.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone")
}

func TestMessageMaxLength(t *testing.T) {
	name := mustName(t, "example.com")
	q := Question{Name: name, Type: RRTypeA, Class: RRClassIN}
	rr := ResourceRecord{Name: name, Type: RRTypeA, Class: RRClassIN, TTL: 300, Data: fakeRData{RRTypeA, 4}}

	msg := Message{
		Questions: []Question{q},
		Answers:   []ResourceRecord{rr},
	}
	// header 12 + question (13+4) + record (13+10+4)
	assert.Equal(t, 12+17+27, msg.MaxLength())
}

func TestMessageAbsorb(t *testing.T) {
	name := mustName(t, "example.com")
	first := Message{
		Answers: []ResourceRecord{{Name: name, Type: RRTypeSOA, Class: RRClassIN, Data: fakeRData{RRTypeSOA, 20}}},
	}
	second := Message{
		Answers:    []ResourceRecord{{Name: name, Type: RRTypeA, Class: RRClassIN, Data: fakeRData{RRTypeA, 4}}},
		Authority:  []ResourceRecord{{Name: name, Type: RRTypeNS, Class: RRClassIN, Data: fakeRData{RRTypeNS, 13}}},
		Additional: []ResourceRecord{{Name: name, Type: RRTypeAAAA, Class: RRClassIN, Data: fakeRData{RRTypeAAAA, 16}}},
	}

	first.Absorb(second)
	assert.Len(t, first.Answers, 2)
	assert.Len(t, first.Authority, 1)
	assert.Len(t, first.Additional, 1)
}

func TestIsNextMessageWaiting(t *testing.T) {
	zone := mustName(t, "example.com")
	axfrQuestion := Question{Name: zone, Type: RRTypeAXFR, Class: RRClassIN}
	soa := ResourceRecord{Name: zone, Type: RRTypeSOA, Class: RRClassIN, Data: fakeRData{RRTypeSOA, 20}}
	a := ResourceRecord{Name: zone, Type: RRTypeA, Class: RRClassIN, Data: fakeRData{RRTypeA, 4}}

	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{
			name: "plain query response never waits",
			msg: Message{
				Response:  true,
				Questions: []Question{{Name: zone, Type: RRTypeA, Class: RRClassIN}},
				Answers:   []ResourceRecord{a},
			},
			want: false,
		},
		{
			name: "transfer with only opening soa waits",
			msg: Message{
				Response:  true,
				Questions: []Question{axfrQuestion},
				Answers:   []ResourceRecord{soa, a},
			},
			want: true,
		},
		{
			name: "transfer with closing soa is complete",
			msg: Message{
				Response:  true,
				Questions: []Question{axfrQuestion},
				Answers:   []ResourceRecord{soa, a, soa},
			},
			want: false,
		},
		{
			name: "failed transfer does not wait",
			msg: Message{
				Response:  true,
				RCode:     RCodeRefused,
				Questions: []Question{axfrQuestion},
			},
			want: false,
		},
		{
			name: "query message never waits",
			msg: Message{
				Questions: []Question{axfrQuestion},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.IsNextMessageWaiting())
		})
	}
}
