package recognizer

// SharedState is the mutable part of a recognizer that speculative
// attempts read and write.
type SharedState struct {
	// Backtracking is the nesting depth of speculative execution.
	// While it is above zero, failures are recorded in Failed instead
	// of being reported as errors.
	Backtracking int

	// Failed is sticky: once set, the current speculative attempt has
	// failed and the caller is expected to unwind.
	Failed bool
}

// NewSharedState returns a state that is neither speculating nor failed.
func NewSharedState() *SharedState {
	return &SharedState{}
}

// Speculating reports whether failures should be recorded silently.
// A nil state never speculates.
func (s *SharedState) Speculating() bool {
	return s != nil && s.Backtracking > 0
}

// Fail records a failure of the current speculative attempt.
func (s *SharedState) Fail() {
	if s != nil {
		s.Failed = true
	}
}
