package ports

import "context"

// InputAcquirer abstracts how the lead-qualification flow obtains answers.
// The strategy is selected once per driver and injected into the engine:
// a terminal driver may block on the console, a request/response driver
// must suspend and wait for the next turn.
type InputAcquirer interface {
	// Acquire asks for a value using the given question. ok is false when
	// the driver cannot collect input synchronously; the engine then sets
	// the question as outstanding and suspends instead.
	Acquire(ctx context.Context, question string) (value string, ok bool, err error)
}

// SuspendAcquirer is the strategy for drivers without a side channel for
// input (web sessions). It never produces a value, forcing the engine to
// suspend with the question as the agent response.
type SuspendAcquirer struct{}

// Acquire always declines.
func (SuspendAcquirer) Acquire(context.Context, string) (string, bool, error) {
	return "", false, nil
}
