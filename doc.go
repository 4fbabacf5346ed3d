/*
Package autostream implements the conversational sales and support agent for
the AutoStream SaaS product: it classifies user intent, answers product
questions with retrieval-augmented generation over a knowledge base, and
runs a multi-turn lead-capture flow before ending the conversation.

The heart of the package is a re-entrant state machine. Each turn is one
Advance call: the engine enters the graph at the node chosen by the start
router, follows router edges synchronously, and stops when a node suspends
(more input needed) or terminates the session. Because every turn's context
lives in the serializable domain.State, the same machine serves a blocking
terminal loop and a request/response web driver that re-enters it on every
message without keeping in-process continuation state.

# Usage

	agent, err := autostream.New(retriever, completer)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state := agent.NewSession("session-123")

	// First turn: the greeting node produces the welcome message.
	state, err = agent.Advance(ctx, state)

	// Each following turn: attach the user's message and re-enter.
	state.UserInput = "tell me about your plans"
	state.AddMessage(domain.RoleUser, state.UserInput)
	state.AgentResponse = ""
	state.Step = domain.NodeIntent
	state, err = agent.Advance(ctx, state)

The Retriever and Completer collaborators are external: see
pkg/adapters/knowledge for the embedding-backed retriever and
pkg/adapters/gemini for the Gemini-backed completer.
*/
package autostream
