package autostream

import (
	"context"
	"log/slog"

	"github.com/servicehive/autostream/internal/logging"
	"github.com/servicehive/autostream/internal/runtime"
	"github.com/servicehive/autostream/pkg/domain"
	"github.com/servicehive/autostream/pkg/ports"
)

// Agent is the high-level entry point for the AutoStream conversation
// engine. It wraps the internal runtime and provides a simplified API for
// drivers.
type Agent struct {
	engine *runtime.Engine
	logger *slog.Logger
}

// Option defines a functional option for configuring the Agent.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	acquirer ports.InputAcquirer
}

// WithLogger sets a custom structured logger for the agent.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithInputAcquirer selects the lead-capture input strategy for the driver
// embedding this agent. Terminal drivers pass a blocking acquirer; web
// drivers keep the default suspend-and-resume behavior.
func WithInputAcquirer(acq ports.InputAcquirer) Option {
	return func(s *settings) {
		s.acquirer = acq
	}
}

// New initializes an Agent over the given collaborators.
func New(retriever ports.Retriever, completer ports.Completer, opts ...Option) (*Agent, error) {
	cfg := &settings{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	engineOpts := []runtime.EngineOption{
		runtime.WithLogger(cfg.logger),
		runtime.WithLifecycleHooks(cfg.hooks),
	}
	if cfg.acquirer != nil {
		engineOpts = append(engineOpts, runtime.WithInputAcquirer(cfg.acquirer))
	}

	engine, err := runtime.NewEngine(retriever, completer, engineOpts...)
	if err != nil {
		return nil, err
	}

	return &Agent{engine: engine, logger: cfg.logger}, nil
}

// NewSession creates a fresh conversation state for the given session ID.
func (a *Agent) NewSession(sessionID string) *domain.State {
	s := domain.NewState()
	s.SessionID = sessionID
	return s
}

// Advance executes one turn of the conversation state machine and returns
// the updated state. The machine stops at StepAwait (more input needed) or
// StepDone (conversation over).
func (a *Agent) Advance(ctx context.Context, state *domain.State) (*domain.State, error) {
	return a.engine.Advance(ctx, state)
}
