package search

// PolicyError is a user-correctable rejection: the request is well-formed
// but exceeds a policy limit (tier date span or full-text window). It is
// surfaced to the caller without retry or masking.
type PolicyError struct {
	Reason string
	// MaxDays is the violated range limit, zero when the violation is not
	// a range limit.
	MaxDays int
}

func (e *PolicyError) Error() string { return e.Reason }
