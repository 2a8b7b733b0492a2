// Package wire provides encoding and decoding of complete DNS messages in
// the RFC 1035 wire format, including name compression and the historical
// binary label form.
package wire

import "github.com/haukened/rr-dig/internal/dns/domain"

// MessageCodec converts between domain messages and their wire form.
type MessageCodec interface {
	// Encode serializes a message with name compression enabled.
	Encode(msg domain.Message) ([]byte, error)

	// EncodeCanonical serializes a message with compression disabled and
	// labels lowercased. The output is deterministic for equal names.
	EncodeCanonical(msg domain.Message) ([]byte, error)

	// Decode parses a wire-format message. RCODEs are data, not errors;
	// failures are format or unsupported-label errors only.
	Decode(data []byte) (domain.Message, error)
}
