package domain

// QueryOptions carries the recognized per-query header options.
type QueryOptions struct {
	// RecursionDesired sets the RD header bit.
	RecursionDesired bool

	// CheckingDisabled sets the CD header bit.
	CheckingDisabled bool
}

// DefaultQueryOptions returns the option set used when the caller passes nil:
// recursion desired, checking enabled.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		RecursionDesired: true,
		CheckingDisabled: false,
	}
}
