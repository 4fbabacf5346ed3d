package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/servicehive/autostream/pkg/domain"
)

// greetingNode welcomes a fresh session, or answers over the knowledge base
// when the turn carries a question. Always suspends.
func (e *Engine) greetingNode(ctx context.Context, s *domain.State) {
	if s.UserInput == "" {
		s.AgentResponse = welcomeResponse
	} else {
		s.AgentResponse = e.synthesize(ctx, s, s.UserInput)
	}
	s.Step = domain.StepAwait
}

// intentNode recomputes the intent from the latest user input. It produces
// no response; the edge router picks the node that will.
func (e *Engine) intentNode(ctx context.Context, s *domain.State) {
	raw, err := e.completer.Classify(ctx, fmt.Sprintf(intentPromptTemplate, s.UserInput))
	if err != nil {
		e.logger.Error("intent classification failed", "err", err, "session_id", s.SessionID)
		e.emitCompleterError(ctx, s, "classify", err)
		s.Intent = domain.IntentUnknown
	} else {
		s.Intent = domain.ParseIntent(raw)
	}
	e.emitIntentResolved(ctx, s)
	s.AgentResponse = ""
}

// ragNode answers a product inquiry over the knowledge base. Always suspends.
func (e *Engine) ragNode(ctx context.Context, s *domain.State) {
	s.AgentResponse = e.synthesize(ctx, s, s.UserInput)
	s.Step = domain.StepAwait
}

// leadField describes one slot of the qualification flow.
type leadField struct {
	value    *string
	asked    *bool
	question string // literal text, reconstructed on re-ask
	prompt   string // first-ask phrasing
}

// leadQualNode collects name, email and platform in fixed order, one per
// turn for suspend-and-resume drivers, all at once for blocking drivers.
// A clarifying question from the user is answered over the knowledge base
// and the pending question is re-asked.
func (e *Engine) leadQualNode(ctx context.Context, s *domain.State) {
	if s.Lead == nil {
		s.Lead = &domain.Lead{}
	}
	s.AgentResponse = ""

	if pending := pendingQuestion(s); pending != "" && s.UserInput != "" {
		if e.isClarifyingQuestion(ctx, s, pending, s.UserInput) {
			e.logger.Info("clarifying question during lead qualification", "session_id", s.SessionID)
			answer := e.synthesize(ctx, s, s.UserInput)
			s.AgentResponse = answer + reAskPrefix + pending
			s.Step = domain.StepAwait
			return
		}
	}

	fields := []leadField{
		{&s.Lead.Name, &s.AskedName, questionName, promptName},
		{&s.Lead.Email, &s.AskedEmail, questionEmail, promptEmail},
		{&s.Lead.Platform, &s.AskedPlatform, questionPlatform, promptPlatform},
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}

		// Blocking drivers collect the value right here and move on.
		if v, ok, err := e.acquirer.Acquire(ctx, f.prompt); err != nil {
			e.logger.Warn("input acquisition failed, suspending instead", "err", err)
		} else if ok {
			*f.value = v
			continue
		}

		// Suspend-and-resume: first visit asks the question; the next
		// turn with input is the answer, captured verbatim.
		if !*f.asked || s.UserInput == "" {
			*f.asked = true
			s.AgentResponse = f.prompt
			s.Step = domain.StepAwait
			return
		}
		*f.value = s.UserInput
		*f.asked = false
	}

	if s.Lead.Complete() {
		s.Step = domain.NodeLeadCapture
	} else {
		s.Step = domain.StepAwait
	}
}

// leadCaptureNode confirms the captured lead and terminates the session.
func (e *Engine) leadCaptureNode(_ context.Context, s *domain.State) {
	s.AgentResponse = fmt.Sprintf(confirmationTemplate, s.Lead.Name, s.Lead.Email)
	s.Step = domain.StepDone
}

// fallbackNode handles unclassifiable input. Always suspends.
func (e *Engine) fallbackNode(_ context.Context, s *domain.State) {
	s.AgentResponse = fallbackResponse
	s.Step = domain.StepAwait
}

// pendingQuestion reconstructs the literal text of the outstanding lead
// question, or "" when none is pending.
func pendingQuestion(s *domain.State) string {
	switch {
	case s.AskedName:
		return questionName
	case s.AskedEmail:
		return questionEmail
	case s.AskedPlatform:
		return questionPlatform
	}
	return ""
}

// isClarifyingQuestion asks the completer whether the reply answers the
// pending question or asks a new one. A failed validation call is treated
// as "answering" so the literal input is captured rather than lost.
func (e *Engine) isClarifyingQuestion(ctx context.Context, s *domain.State, question, input string) bool {
	verdict, err := e.completer.Classify(ctx, fmt.Sprintf(validationPromptTemplate, question, input))
	if err != nil {
		e.logger.Warn("answer validation failed, treating reply as answer", "err", err, "session_id", s.SessionID)
		e.emitCompleterError(ctx, s, "validate", err)
		return false
	}
	return strings.Contains(strings.ToLower(verdict), "questioning")
}

// synthesize retrieves knowledge for the question and generates a grounded
// answer. Retrieval or generation failures degrade to a fixed apology; the
// turn is never dropped.
func (e *Engine) synthesize(ctx context.Context, s *domain.State, question string) string {
	chunks, err := e.retriever.Retrieve(ctx, question, retrieveK)
	if err != nil {
		e.logger.Error("knowledge retrieval failed", "err", err, "session_id", s.SessionID)
		e.emitCompleterError(ctx, s, "retrieve", err)
		return apologyResponse
	}

	prompt := fmt.Sprintf(ragPromptTemplate, strings.Join(chunks, contextSeparator), question)
	answer, err := e.completer.Generate(ctx, prompt)
	if err != nil {
		e.logger.Error("answer generation failed", "err", err, "session_id", s.SessionID)
		e.emitCompleterError(ctx, s, "generate", err)
		return apologyResponse
	}
	return strings.TrimSpace(answer)
}
