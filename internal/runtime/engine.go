package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/servicehive/autostream/internal/logging"
	"github.com/servicehive/autostream/pkg/domain"
	"github.com/servicehive/autostream/pkg/ports"
)

// nodeSpec pairs a node with the router that picks its successor. Nodes that
// always suspend or terminate carry no router; the engine stops as soon as a
// node sets a sentinel step.
type nodeSpec struct {
	run  func(context.Context, *domain.State)
	next func(*domain.State) domain.NodeID
}

// Engine drives the conversation graph. It is stateless between calls:
// everything a turn needs lives in the domain.State handed to Advance.
type Engine struct {
	retriever ports.Retriever
	completer ports.Completer
	acquirer  ports.InputAcquirer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	graph     map[domain.NodeID]nodeSpec
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithInputAcquirer selects the lead-capture input strategy. Defaults to
// suspend-and-resume, which is safe for every driver.
func WithInputAcquirer(acq ports.InputAcquirer) EngineOption {
	return func(e *Engine) {
		if acq != nil {
			e.acquirer = acq
		}
	}
}

// NewEngine compiles the conversation graph and validates its adjacency.
func NewEngine(retriever ports.Retriever, completer ports.Completer, opts ...EngineOption) (*Engine, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever is required")
	}
	if completer == nil {
		return nil, fmt.Errorf("completer is required")
	}

	e := &Engine{
		retriever: retriever,
		completer: completer,
		acquirer:  ports.SuspendAcquirer{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.graph = map[domain.NodeID]nodeSpec{
		domain.NodeGreeting:    {run: e.greetingNode},
		domain.NodeIntent:      {run: e.intentNode, next: EdgeRouter},
		domain.NodeRAG:         {run: e.ragNode},
		domain.NodeLeadQual:    {run: e.leadQualNode, next: LeadQualRouter},
		domain.NodeLeadCapture: {run: e.leadCaptureNode},
		domain.NodeFallback:    {run: e.fallbackNode},
	}

	for _, id := range []domain.NodeID{
		domain.NodeGreeting, domain.NodeIntent, domain.NodeRAG,
		domain.NodeLeadQual, domain.NodeLeadCapture, domain.NodeFallback,
	} {
		if _, ok := e.graph[id]; !ok {
			return nil, fmt.Errorf("graph is missing node %q", id)
		}
	}

	return e, nil
}

// Advance executes one turn: it enters the graph at the node chosen by the
// start router and follows router edges synchronously until a node suspends
// (StepAwait) or terminates (StepDone). The input state is cloned, never
// mutated.
func (e *Engine) Advance(ctx context.Context, state *domain.State) (*domain.State, error) {
	s := state.Clone()
	current := StartRouter(s)

	// Any legitimate cycle visits at most three nodes; anything beyond the
	// graph size means a node failed to suspend.
	for steps := 0; ; steps++ {
		if steps >= len(e.graph) {
			return nil, fmt.Errorf("exceeded %d nodes in one turn: %w", len(e.graph), domain.ErrNoProgress)
		}

		spec, ok := e.graph[current]
		if !ok {
			return nil, fmt.Errorf("routed to unknown node %q: %w", current, domain.ErrNoProgress)
		}

		e.logger.Debug("node enter", "node", current, "session_id", s.SessionID)
		e.emitNodeEvent(ctx, domain.EventNodeEnter, s, current)
		s.History = append(s.History, current)

		spec.run(ctx, s)

		e.emitNodeEvent(ctx, domain.EventNodeLeave, s, current)

		if !s.Step.Internal() {
			break
		}
		if spec.next == nil {
			return nil, fmt.Errorf("node %q neither suspended nor routed: %w", current, domain.ErrNoProgress)
		}
		current = spec.next(s)
	}

	if s.AgentResponse != "" {
		s.AddMessage(domain.RoleAgent, s.AgentResponse)
	}
	return s, nil
}

func (e *Engine) emitNodeEvent(ctx context.Context, typ domain.EventType, s *domain.State, node domain.NodeID) {
	var fn func(context.Context, *domain.NodeEvent)
	switch typ {
	case domain.EventNodeEnter:
		fn = e.hooks.OnNodeEnter
	case domain.EventNodeLeave:
		fn = e.hooks.OnNodeLeave
	}
	if fn == nil {
		return
	}
	fn(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, SessionID: s.SessionID},
		NodeID:    node,
	})
}

func (e *Engine) emitIntentResolved(ctx context.Context, s *domain.State) {
	if e.hooks.OnIntentResolved == nil {
		return
	}
	e.hooks.OnIntentResolved(ctx, &domain.IntentEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventIntentResolved, SessionID: s.SessionID},
		Intent:    s.Intent,
	})
}

func (e *Engine) emitCompleterError(ctx context.Context, s *domain.State, op string, err error) {
	if e.hooks.OnCompleterError == nil {
		return
	}
	e.hooks.OnCompleterError(ctx, &domain.CompleterErrorEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCompleterError, SessionID: s.SessionID},
		Op:        op,
		Err:       err,
	})
}
