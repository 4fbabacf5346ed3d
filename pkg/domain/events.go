package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter      EventType = "node_enter"
	EventNodeLeave      EventType = "node_leave"
	EventIntentResolved EventType = "intent_resolved"
	EventCompleterError EventType = "completer_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// NodeEvent represents entry to or exit from a node.
type NodeEvent struct {
	EventBase
	NodeID NodeID `json:"node_id"`
}

// IntentEvent records the outcome of an intent classification.
type IntentEvent struct {
	EventBase
	Intent Intent `json:"intent"`
}

// CompleterErrorEvent records a recovered Completer failure.
type CompleterErrorEvent struct {
	EventBase
	Op  string `json:"op"` // "classify", "validate" or "generate"
	Err error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter      func(context.Context, *NodeEvent)
	OnNodeLeave      func(context.Context, *NodeEvent)
	OnIntentResolved func(context.Context, *IntentEvent)
	OnCompleterError func(context.Context, *CompleterErrorEvent)
}
