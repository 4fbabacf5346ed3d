package domain

import "strings"

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentInquiry    Intent = "inquiry"
	IntentHighIntent Intent = "high_intent"
	IntentUnknown    Intent = "unknown"
)

// intentRules maps classifier output substrings to intents, in priority
// order. "high_intent" must be checked before "inquiry" and "greeting"
// because classifier output is free text and the labels overlap.
var intentRules = []struct {
	substr string
	intent Intent
}{
	{"high_intent", IntentHighIntent},
	{"inquiry", IntentInquiry},
	{"greeting", IntentGreeting},
}

// ParseIntent maps raw classifier output onto the closed intent set.
// Unparseable output yields IntentUnknown.
func ParseIntent(raw string) Intent {
	clean := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range intentRules {
		if strings.Contains(clean, rule.substr) {
			return rule.intent
		}
	}
	return IntentUnknown
}
