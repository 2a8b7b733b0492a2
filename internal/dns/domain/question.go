package domain

import "fmt"

// Question represents a single entry in the question section of a DNS message.
type Question struct {
	Name  Name
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question and validates its fields.
func NewQuestion(name Name, rrtype RRType, class RRClass) (Question, error) {
	q := Question{
		Name:  name,
		Type:  rrtype,
		Class: class,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally valid.
func (q Question) Validate() error {
	if err := q.Name.Validate(); err != nil {
		return fmt.Errorf("question name: %w", err)
	}
	if q.Type == 0 {
		return fmt.Errorf("%w: question type must not be zero", ErrInvalidArgument)
	}
	if !q.Class.IsValid() {
		return fmt.Errorf("%w: unsupported RRClass: %d", ErrInvalidArgument, q.Class)
	}
	return nil
}

// Equal compares two questions, matching names case-insensitively.
// Used to pair response datagrams with the query that produced them.
func (q Question) Equal(other Question) bool {
	return q.Type == other.Type && q.Class == other.Class && q.Name.Equal(other.Name)
}

// MaxLength returns an upper bound on the encoded size of the question:
// the uncompressed name plus QTYPE and QCLASS.
func (q Question) MaxLength() int {
	return q.Name.MaxEncodedLength() + 4
}

// String renders the question the way dig prints it.
func (q Question) String() string {
	return fmt.Sprintf("%s %s %s", q.Name, q.Class, q.Type)
}
