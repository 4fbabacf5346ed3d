package runtime_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicehive/autostream/internal/runtime"
	"github.com/servicehive/autostream/pkg/domain"
)

// stubRetriever returns a fixed chunk set and records queries.
type stubRetriever struct {
	chunks  []string
	err     error
	queries []string
}

func (r *stubRetriever) Retrieve(_ context.Context, query string, _ int) ([]string, error) {
	r.queries = append(r.queries, query)
	return r.chunks, r.err
}

// stubCompleter answers classification and generation from canned functions.
type stubCompleter struct {
	classifyFn    func(prompt string) (string, error)
	generateFn    func(prompt string) (string, error)
	classifyCalls []string
	generateCalls []string
}

func (c *stubCompleter) Classify(_ context.Context, prompt string) (string, error) {
	c.classifyCalls = append(c.classifyCalls, prompt)
	if c.classifyFn == nil {
		return "", errors.New("no classify stub")
	}
	return c.classifyFn(prompt)
}

func (c *stubCompleter) Generate(_ context.Context, prompt string) (string, error) {
	c.generateCalls = append(c.generateCalls, prompt)
	if c.generateFn == nil {
		return "", errors.New("no generate stub")
	}
	return c.generateFn(prompt)
}

// consoleScript simulates a blocking terminal driver: it hands out scripted
// answers in order.
type consoleScript struct {
	answers []string
	pos     int
}

func (c *consoleScript) Acquire(_ context.Context, _ string) (string, bool, error) {
	if c.pos >= len(c.answers) {
		return "", false, nil
	}
	v := c.answers[c.pos]
	c.pos++
	return v, true, nil
}

func newEngine(t *testing.T, retriever *stubRetriever, completer *stubCompleter, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	eng, err := runtime.NewEngine(retriever, completer, opts...)
	require.NoError(t, err)
	return eng
}

func classifyAs(label string) func(string) (string, error) {
	return func(string) (string, error) { return label, nil }
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	_, err := runtime.NewEngine(nil, &stubCompleter{})
	assert.Error(t, err)

	_, err = runtime.NewEngine(&stubRetriever{}, nil)
	assert.Error(t, err)
}

func TestAdvance_FreshSessionWelcome(t *testing.T) {
	retriever := &stubRetriever{}
	completer := &stubCompleter{}
	eng := newEngine(t, retriever, completer)

	state, err := eng.Advance(context.Background(), domain.NewState())
	require.NoError(t, err)

	assert.Equal(t, "Hi! I'm your AutoStream assistant. How can I help you today?", state.AgentResponse)
	assert.Equal(t, domain.StepAwait, state.Step)
	assert.Empty(t, retriever.queries, "welcome must not hit the retriever")
	assert.Empty(t, completer.generateCalls, "welcome must not hit the completer")

	require.Len(t, state.Messages, 1)
	assert.Equal(t, domain.RoleAgent, state.Messages[0].Role)
}

func TestAdvance_InquiryRoutesToRAG(t *testing.T) {
	retriever := &stubRetriever{chunks: []string{"Basic Plan: $9/mo", "Pro Plan: $29/mo"}}
	completer := &stubCompleter{
		classifyFn: classifyAs("inquiry"),
		generateFn: func(string) (string, error) { return "We offer Basic and Pro plans.", nil },
	}
	eng := newEngine(t, retriever, completer)

	state := domain.NewState()
	state.UserInput = "tell me about your pricing plans"
	state.AddMessage(domain.RoleUser, state.UserInput)
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, domain.IntentInquiry, next.Intent)
	assert.Equal(t, "We offer Basic and Pro plans.", next.AgentResponse)
	assert.Equal(t, domain.StepAwait, next.Step)

	require.Len(t, completer.generateCalls, 1)
	assert.Contains(t, completer.generateCalls[0], "Basic Plan: $9/mo\n---\nPro Plan: $29/mo",
		"retrieved chunks must be joined into the prompt context")
	assert.Contains(t, completer.classifyCalls[0], "tell me about your pricing plans")
}

func TestAdvance_GreetingIntentAnswersOverKnowledge(t *testing.T) {
	retriever := &stubRetriever{chunks: []string{"AutoStream edits videos automatically."}}
	completer := &stubCompleter{
		classifyFn: classifyAs("greeting"),
		generateFn: func(string) (string, error) { return "Hello! I'm the AutoStream assistant.", nil },
	}
	eng := newEngine(t, retriever, completer)

	state := domain.NewState()
	state.UserInput = "hey, who are you?"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, domain.IntentGreeting, next.Intent)
	assert.Equal(t, "Hello! I'm the AutoStream assistant.", next.AgentResponse)
	assert.Equal(t, domain.StepAwait, next.Step)
}

func TestAdvance_HighIntentStartsLeadQualification(t *testing.T) {
	completer := &stubCompleter{classifyFn: classifyAs("high_intent")}
	eng := newEngine(t, &stubRetriever{}, completer)

	state := domain.NewState()
	state.UserInput = "I want to buy the Pro plan"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, domain.IntentHighIntent, next.Intent)
	assert.Equal(t, "Great! To get started, may I have your name?", next.AgentResponse)
	assert.True(t, next.AskedName)
	assert.False(t, next.AskedEmail)
	assert.False(t, next.AskedPlatform)
	assert.Equal(t, domain.StepAwait, next.Step)
	require.NotNil(t, next.Lead)
	assert.Empty(t, next.Lead.Name)
}

func TestAdvance_ClarifyingQuestionReasksSameField(t *testing.T) {
	retriever := &stubRetriever{chunks: []string{"We need your name to personalize onboarding."}}
	completer := &stubCompleter{
		classifyFn: func(prompt string) (string, error) {
			if strings.Contains(prompt, "answering") {
				return "questioning", nil
			}
			return "high_intent", nil
		},
		generateFn: func(string) (string, error) { return "We only need your contact details.", nil },
	}
	eng := newEngine(t, retriever, completer)

	state := domain.NewState()
	state.Lead = &domain.Lead{}
	state.AskedName = true
	state.UserInput = "what info do you need?"
	state.Step = domain.NodeIntent // driver always resumes via intent; start router overrides

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, "We only need your contact details.\n\nAnyway, May I have your name?", next.AgentResponse)
	assert.True(t, next.AskedName, "the name question must remain outstanding")
	assert.Empty(t, next.Lead.Name)
	assert.Equal(t, domain.StepAwait, next.Step)
}

func TestAdvance_CapturesLeadAcrossTurns(t *testing.T) {
	completer := &stubCompleter{classifyFn: classifyAs("answering")}
	eng := newEngine(t, &stubRetriever{}, completer)
	ctx := context.Background()

	// Turn 1: name answer arrives, email is asked.
	state := domain.NewState()
	state.Lead = &domain.Lead{}
	state.AskedName = true
	state.UserInput = "Ada Lovelace"
	state.Step = domain.NodeIntent

	state, err := eng.Advance(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", state.Lead.Name)
	assert.False(t, state.AskedName)
	assert.True(t, state.AskedEmail)
	assert.Equal(t, "Thanks! Now, what is your email address?", state.AgentResponse)

	// Turn 2: email answer arrives, platform is asked.
	state.UserInput = "ada@example.com"
	state.AgentResponse = ""
	state.Step = domain.NodeIntent

	state, err = eng.Advance(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", state.Lead.Email)
	assert.True(t, state.AskedPlatform)

	// Turn 3: platform answer completes the lead; the machine runs on to
	// lead_capture and terminates within the same advance.
	state.UserInput = "YouTube"
	state.AgentResponse = ""
	state.Step = domain.NodeIntent

	state, err = eng.Advance(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "YouTube", state.Lead.Platform)
	assert.True(t, state.Lead.Complete())
	assert.Equal(t, "✅ Thank you Ada Lovelace! We'll reach out to ada@example.com soon.", state.AgentResponse)
	assert.Equal(t, domain.StepDone, state.Step)
	assert.False(t, state.AwaitingLeadAnswer())
}

func TestAdvance_ClassificationFailureFallsBack(t *testing.T) {
	completer := &stubCompleter{
		classifyFn: func(string) (string, error) { return "", errors.New("completion unavailable") },
	}
	eng := newEngine(t, &stubRetriever{}, completer)

	state := domain.NewState()
	state.UserInput = "???"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err, "classification failure is recovered, not propagated")

	assert.Equal(t, domain.IntentUnknown, next.Intent)
	assert.Equal(t, "I'm here to help with product info or sign-up!", next.AgentResponse)
	assert.Equal(t, domain.StepAwait, next.Step)
}

func TestAdvance_GenerationFailureApologizes(t *testing.T) {
	completer := &stubCompleter{
		classifyFn: classifyAs("inquiry"),
		generateFn: func(string) (string, error) { return "", errors.New("completion unavailable") },
	}
	eng := newEngine(t, &stubRetriever{chunks: []string{"ctx"}}, completer)

	state := domain.NewState()
	state.UserInput = "what do you do?"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, domain.StepAwait, next.Step, "the session must return to await")
	assert.Contains(t, next.AgentResponse, "Sorry")
}

func TestAdvance_EmptyKnowledgeBaseDegrades(t *testing.T) {
	completer := &stubCompleter{
		classifyFn: classifyAs("inquiry"),
		generateFn: func(string) (string, error) { return "I don't have that information.", nil },
	}
	eng := newEngine(t, &stubRetriever{chunks: nil}, completer)

	state := domain.NewState()
	state.UserInput = "what are your SLAs?"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "I don't have that information.", next.AgentResponse)
}

func TestAdvance_AwaitWithoutInputIsIdempotent(t *testing.T) {
	completer := &stubCompleter{classifyFn: classifyAs("answering")}
	eng := newEngine(t, &stubRetriever{}, completer)

	state := domain.NewState()
	state.Lead = &domain.Lead{Name: "Ada"}
	state.AskedEmail = true
	state.UserInput = ""
	state.Step = domain.StepAwait

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, "Ada", next.Lead.Name)
	assert.Empty(t, next.Lead.Email, "no input must capture nothing")
	assert.True(t, next.AskedEmail, "the outstanding question must stay outstanding")
	assert.Equal(t, domain.StepAwait, next.Step)
	assert.Empty(t, completer.classifyCalls, "no input means nothing to validate")
}

func TestAdvance_ValidationFailureCapturesLiteralInput(t *testing.T) {
	completer := &stubCompleter{
		classifyFn: func(string) (string, error) { return "", errors.New("completion unavailable") },
	}
	eng := newEngine(t, &stubRetriever{}, completer)

	state := domain.NewState()
	state.Lead = &domain.Lead{}
	state.AskedName = true
	state.UserInput = "Ada"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "Ada", next.Lead.Name, "validation failure defaults to answering")
	assert.True(t, next.AskedEmail)
}

func TestAdvance_BlockingAcquirerCapturesWholeLeadInOneTurn(t *testing.T) {
	completer := &stubCompleter{classifyFn: classifyAs("high_intent")}
	script := &consoleScript{answers: []string{"Ada Lovelace", "ada@example.com", "YouTube"}}
	eng := newEngine(t, &stubRetriever{}, completer, runtime.WithInputAcquirer(script))

	state := domain.NewState()
	state.UserInput = "sign me up"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.True(t, next.Lead.Complete())
	assert.Equal(t, "✅ Thank you Ada Lovelace! We'll reach out to ada@example.com soon.", next.AgentResponse)
	assert.Equal(t, domain.StepDone, next.Step)
	assert.False(t, next.AwaitingLeadAnswer())
}

func TestAdvance_AtMostOneAskedFlagAtSuspension(t *testing.T) {
	completer := &stubCompleter{classifyFn: classifyAs("answering")}
	eng := newEngine(t, &stubRetriever{}, completer)
	ctx := context.Background()

	state := domain.NewState()
	state.Lead = &domain.Lead{}
	state.AskedName = true
	state.UserInput = "Ada"
	state.Step = domain.NodeIntent

	for i := 0; i < 2; i++ {
		var err error
		state, err = eng.Advance(ctx, state)
		require.NoError(t, err)

		if state.Step != domain.StepAwait {
			break
		}
		flags := 0
		for _, f := range []bool{state.AskedName, state.AskedEmail, state.AskedPlatform} {
			if f {
				flags++
			}
		}
		assert.LessOrEqual(t, flags, 1, "at most one asked flag may be set while suspended")

		state.UserInput = "next answer"
		state.AgentResponse = ""
		state.Step = domain.NodeIntent
	}
}

func TestAdvance_DoesNotMutateInputState(t *testing.T) {
	completer := &stubCompleter{classifyFn: classifyAs("high_intent")}
	eng := newEngine(t, &stubRetriever{}, completer)

	state := domain.NewState()
	state.UserInput = "sign me up"
	state.Step = domain.NodeIntent

	_, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)

	assert.Nil(t, state.Lead, "Advance must operate on a clone")
	assert.Equal(t, domain.NodeIntent, state.Step)
}

func TestAdvance_HistoryRecordsVisitedNodes(t *testing.T) {
	completer := &stubCompleter{classifyFn: classifyAs("inquiry"), generateFn: func(string) (string, error) { return "ok", nil }}
	eng := newEngine(t, &stubRetriever{}, completer)

	state := domain.NewState()
	state.UserInput = "pricing?"
	state.Step = domain.NodeIntent

	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, []domain.NodeID{domain.NodeIntent, domain.NodeRAG}, next.History)
}
