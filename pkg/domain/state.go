package domain

// NodeID identifies a step in the conversation graph.
// The set is closed: the engine compiles an adjacency table over these
// constants at startup and rejects anything outside it.
type NodeID string

const (
	NodeGreeting    NodeID = "greeting"
	NodeIntent      NodeID = "intent"
	NodeRAG         NodeID = "rag"
	NodeLeadQual    NodeID = "lead_qual"
	NodeLeadCapture NodeID = "lead_capture"
	NodeFallback    NodeID = "fallback"

	// StepAwait suspends the machine until the driver supplies new input.
	StepAwait NodeID = "await_user"
	// StepDone is the terminal sentinel. Reached only via lead_capture.
	StepDone NodeID = "done"
)

// Internal reports whether the ID names an executable node (not a sentinel).
func (n NodeID) Internal() bool {
	return n != StepAwait && n != StepDone
}

// Role tags a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one transcript entry. The transcript is append-only.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Lead is the contact record collected by the qualification flow.
// Fields are captured verbatim and never cleared within a session.
type Lead struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Platform string `json:"platform"`
}

// Complete reports whether all three fields have been captured.
func (l *Lead) Complete() bool {
	return l != nil && l.Name != "" && l.Email != "" && l.Platform != ""
}

// State is the full conversation snapshot threaded through every step.
// The engine owns it exclusively for the duration of one Advance call and
// hands it back to the driver between turns. It serializes to JSON so
// request/response drivers can park it in a StateStore.
type State struct {
	// SessionID correlates the state with a driver session. Informational.
	SessionID string `json:"session_id,omitempty"`

	// Messages is the append-only transcript. Drivers append the user
	// message before each turn; the engine appends the agent response
	// produced by the turn.
	Messages []Message `json:"messages"`

	// Intent is recomputed every time the intent node runs. Empty until then.
	Intent Intent `json:"intent,omitempty"`

	// Lead is nil until qualification begins.
	Lead *Lead `json:"lead,omitempty"`

	// Step is the current/next node, or one of the two sentinels.
	Step NodeID `json:"step"`

	// UserInput is the latest user utterance. Not auto-cleared; each node
	// decides how to treat it.
	UserInput string `json:"user_input,omitempty"`

	// AgentResponse is the utterance produced by the latest Advance call.
	// The driver must reset it before re-entering to avoid stale display.
	AgentResponse string `json:"agent_response,omitempty"`

	// At most one asked flag is true at any suspension point. A flag is
	// true only while its lead field is still unset and the corresponding
	// question is outstanding.
	AskedName     bool `json:"asked_name,omitempty"`
	AskedEmail    bool `json:"asked_email,omitempty"`
	AskedPlatform bool `json:"asked_platform,omitempty"`

	// History tracks the nodes visited, for debugging and observability.
	History []NodeID `json:"history,omitempty"`
}

// NewState creates a fresh session state positioned at the greeting node.
func NewState() *State {
	return &State{
		Messages: []Message{},
		Step:     NodeGreeting,
	}
}

// AwaitingLeadAnswer reports whether a lead question is outstanding.
func (s *State) AwaitingLeadAnswer() bool {
	return s.AskedName || s.AskedEmail || s.AskedPlatform
}

// AddMessage appends a transcript entry.
func (s *State) AddMessage(role Role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// Clone returns a deep copy. Nodes mutate the copy, never the original, so
// stores and drivers can keep the previous snapshot untouched.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Messages = make([]Message, len(s.Messages))
	copy(next.Messages, s.Messages)
	next.History = make([]NodeID, len(s.History))
	copy(next.History, s.History)
	if s.Lead != nil {
		lead := *s.Lead
		next.Lead = &lead
	}
	return &next
}
