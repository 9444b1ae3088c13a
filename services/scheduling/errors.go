package scheduling

import "fmt"

// PermissionDeniedError signals that the acting user does not hold an
// administrative role.
type PermissionDeniedError struct {
	ActorID string
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("actor %s does not hold an admin role", e.ActorID)
}

// NotFoundError signals that a booking or series id did not resolve.
type NotFoundError struct {
	Kind string // "booking", "series", "sitter"
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ConflictError signals that a booking changed between read and write,
// or that an exclusive assignment collided with an existing sitter.
type ConflictError struct {
	BookingID       string
	CurrentSitterID string
	Reason          string
}

func (e ConflictError) Error() string {
	if e.CurrentSitterID != "" {
		return fmt.Sprintf("booking %s: %s (current sitter %s)", e.BookingID, e.Reason, e.CurrentSitterID)
	}
	return fmt.Sprintf("booking %s: %s", e.BookingID, e.Reason)
}

// InvalidRuleError signals that a recurrence rule cannot produce the
// requested visit count. It is raised before any write is attempted.
type InvalidRuleError struct {
	Reason    string
	Requested int
	Generated int
}

func (e InvalidRuleError) Error() string {
	if e.Requested > 0 && e.Generated != e.Requested {
		return fmt.Sprintf("invalid recurrence rule: %s (requested %d visits, rule yields %d)", e.Reason, e.Requested, e.Generated)
	}
	return "invalid recurrence rule: " + e.Reason
}

// PartialBatchError signals that a chunked batch commit failed part-way
// through. Chunks before FailedChunk are committed and stay committed.
type PartialBatchError struct {
	CommittedCount int
	FailedChunk    int // 0-based index of the chunk that failed
	TotalWrites    int
	Err            error
}

func (e PartialBatchError) Error() string {
	return fmt.Sprintf("batch commit failed at chunk %d after %d of %d writes: %v",
		e.FailedChunk, e.CommittedCount, e.TotalWrites, e.Err)
}

func (e PartialBatchError) Unwrap() error { return e.Err }

// DependencyUnavailableError signals that a remote collaborator (scorer,
// directory) could not be reached.
type DependencyUnavailableError struct {
	Dependency string
	Err        error
}

func (e DependencyUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e DependencyUnavailableError) Unwrap() error { return e.Err }
