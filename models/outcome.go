package models

// ApplicationOutcome is the result of one application attempt.
// Exactly one of Success, AlreadyApplied or Eligible=false carries the
// terminal reason; Message always explains it in human-readable form.
type ApplicationOutcome struct {
	Title          string
	Success        bool
	AlreadyApplied bool
	Eligible       bool
	Message        string
}
