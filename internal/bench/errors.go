package bench

import "errors"

var (
	// ErrCandidateDefect means a candidate returned output that is not the
	// sorted permutation of its input. The run is aborted.
	ErrCandidateDefect = errors.New("candidate produced unsorted output")

	// ErrInternal signals a broken coordinator/worker protocol.
	ErrInternal = errors.New("internal scheduling error")

	ErrInvalidOptions = errors.New("invalid benchmark options")
)
