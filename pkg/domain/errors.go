package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionDone is returned when a driver submits input to a terminated session.
var ErrSessionDone = errors.New("session already terminated")

// ErrNoProgress is returned when an Advance cycle exceeds the graph size
// without reaching a suspension point. It indicates a routing bug, not a
// recoverable per-turn condition.
var ErrNoProgress = errors.New("state machine made no progress")
