// Package httpapi exposes the agent over HTTP for web chat frontends. Each
// message is one request: the handler loads the session, re-enters the
// state machine and persists the advanced state before replying.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	autostream "github.com/servicehive/autostream"
	"github.com/servicehive/autostream/internal/logging"
	"github.com/servicehive/autostream/pkg/domain"
	"github.com/servicehive/autostream/pkg/session"
)

// maxMessageBytes bounds a single chat message body.
const maxMessageBytes = 64 * 1024

// Server routes HTTP requests to the agent.
type Server struct {
	agent    *autostream.Agent
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the agent.
func NewHandler(agent *autostream.Agent, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		agent:    agent,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/messages", s.postMessage)
		})
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// turnResponse is the reply to session creation and message turns.
type turnResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Step      string `json:"step"`
	Done      bool   `json:"done"`
}

type messageRequest struct {
	Message string `json:"message"`
}

func newTurnResponse(state *domain.State) turnResponse {
	return turnResponse{
		SessionID: state.SessionID,
		Reply:     state.AgentResponse,
		Step:      string(state.Step),
		Done:      state.Step == domain.StepDone,
	}
}

// createSession starts a conversation and runs the greeting turn so the
// client gets the welcome message immediately.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	store := s.sessions.Store()

	var result *domain.State
	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		state, err := s.agent.Advance(ctx, s.agent.NewSession(sessionID))
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		if err := store.Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		result = state
		return nil
	})
	if err != nil {
		s.internalError(w, "failed to create session", err)
		return
	}

	s.logger.Info("session created", "session_id", sessionID)
	writeJSON(w, http.StatusCreated, newTurnResponse(result))
}

// postMessage attaches one user message and advances the machine. The whole
// load-advance-save cycle runs under the session lock.
func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body messageRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxMessageBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("invalid message body", "session_id", sessionID, "error", err)
		return
	}
	message := strings.TrimSpace(body.Message)
	if message == "" {
		http.Error(w, "Message must not be empty", http.StatusBadRequest)
		return
	}

	store := s.sessions.Store()
	var result *domain.State
	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		state, err := store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if state.Step == domain.StepDone {
			return domain.ErrSessionDone
		}

		state.UserInput = message
		state.AddMessage(domain.RoleUser, message)
		state.AgentResponse = ""
		state.Step = domain.NodeIntent

		state, err = s.agent.Advance(ctx, state)
		if err != nil {
			return fmt.Errorf("failed to advance session: %w", err)
		}
		if err := store.Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		result = state
		return nil
	})

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrSessionDone):
		http.Error(w, "Conversation is over", http.StatusConflict)
		return
	case err != nil:
		s.internalError(w, "failed to process message", err)
		return
	}

	writeJSON(w, http.StatusOK, newTurnResponse(result))
}

// getSession returns the full conversation state, transcript included.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		s.internalError(w, "failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
		s.internalError(w, "failed to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.internalError(w, "failed to list sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "autostream-api",
		"version": strings.TrimSpace(autostream.Version),
	})
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	http.Error(w, msg, http.StatusInternalServerError)
	s.logger.Error(msg, "error", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
