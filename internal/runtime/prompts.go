package runtime

// Prompt templates and fixed agent strings. The classifier output is parsed
// by substring matching (domain.ParseIntent), so label names here and in the
// rule list must stay in sync.

const intentPromptTemplate = `
Analyze the following user message and classify its intent.
Categories:
- greeting: Saying hello, "who are you", "what is this".
- inquiry: Asking about services, pricing, features, plans, or how it works.
- high_intent: Expressing a clear desire to buy, purchase, sign up, or get started.
- info_update: Providing a single piece of information like a name, email, or platform name (e.g., "Shivangi", "abc@gmail.com", "YouTube").

User Message: "%s"

Classification (output only the category name):
`

const validationPromptTemplate = `
A user is in a sign-up flow. The agent just asked: "%s"
The user replied: "%s"

Is the user:
1. answering: Providing the information requested (a name, an email, or a platform).
2. questioning: Asking a clarifying question or seeking information (e.g., "what platforms do you support?", "why do you need my email?").

Output only the word "answering" or "questioning".
`

const ragPromptTemplate = `
You are a helpful and human-friendly assistant for AutoStream, a SaaS product by ServiceHive.
AutoStream provides automated video editing tools for content creators and is part of the Inflx platform.

Use the following pieces of retrieved context to answer the user's question.
Answer strictly based on the context provided.
If the question is about who you are, what you do, or what services you provide, use the context to explain AutoStream's services and mission.
If the context mentions specific plans like "Basic Plan" or "Pro Plan", make sure to provide all relevant details found in the context for those plans.

Context:
%s

Question: %s

Answer:
`

const (
	welcomeResponse  = "Hi! I'm your AutoStream assistant. How can I help you today?"
	fallbackResponse = "I'm here to help with product info or sign-up!"
	apologyResponse  = "Sorry, I'm having trouble answering that right now. Please try again in a moment."

	confirmationTemplate = "✅ Thank you %s! We'll reach out to %s soon."

	// Literal question texts, reconstructed when re-asking after a
	// clarifying question.
	questionName     = "May I have your name?"
	questionEmail    = "What is your email address?"
	questionPlatform = "Which platform do you use?"

	// First-ask phrasings used as the agent response when a field is
	// solicited for the first time.
	promptName     = "Great! To get started, may I have your name?"
	promptEmail    = "Thanks! Now, what is your email address?"
	promptPlatform = "Almost there! Which creator platform do you use (YouTube, Instagram, etc.)?"

	reAskPrefix = "\n\nAnyway, "
)

const (
	// retrieveK is the number of knowledge chunks fed into synthesis.
	retrieveK = 3
	// contextSeparator joins retrieved chunks inside the RAG prompt.
	contextSeparator = "\n---\n"
)
