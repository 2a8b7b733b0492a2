package domain

import "fmt"

// RData is the typed payload of a resource record. Concrete variants live in
// common/rrdata, keyed by RRType; unknown types carry opaque bytes.
type RData interface {
	// RRType returns the record type this payload belongs to.
	RRType() RRType

	// String renders the payload in presentation form.
	String() string

	// MaxLength returns an upper bound on the encoded payload size, used for
	// output buffer sizing. Actual written bytes may be shorter when names
	// inside the payload compress.
	MaxLength() int
}

// ResourceRecord represents a DNS resource record as carried in the answer,
// authority, and additional sections of a message.
type ResourceRecord struct {
	Name  Name
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  RData
}

// NewResourceRecord constructs a ResourceRecord and validates its fields.
func NewResourceRecord(name Name, rrtype RRType, class RRClass, ttl uint32, data RData) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are valid.
func (rr ResourceRecord) Validate() error {
	if err := rr.Name.Validate(); err != nil {
		return fmt.Errorf("record name: %w", err)
	}
	if rr.Type == 0 {
		return fmt.Errorf("%w: record type must not be zero", ErrInvalidArgument)
	}
	if rr.Type.IsQueryOnly() {
		return fmt.Errorf("%w: %s is a query-only type", ErrInvalidArgument, rr.Type)
	}
	if rr.Data == nil {
		return fmt.Errorf("%w: record data must not be nil", ErrInvalidArgument)
	}
	return nil
}

// MaxLength returns an upper bound on the encoded size of the record:
// the uncompressed name, the 10 fixed octets (TYPE, CLASS, TTL, RDLENGTH),
// and the payload bound.
func (rr ResourceRecord) MaxLength() int {
	return rr.Name.MaxEncodedLength() + 10 + rr.Data.MaxLength()
}

// String renders the record the way dig prints it.
func (rr ResourceRecord) String() string {
	return fmt.Sprintf("%s %d %s %s %s", rr.Name, rr.TTL, rr.Class, rr.Type, rr.Data)
}
