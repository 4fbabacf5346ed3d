// Package graph renders the conversation graph as a Mermaid flowchart, for
// documentation and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/servicehive/autostream/pkg/domain"
)

// edge is one labeled transition in the conversation graph.
type edge struct {
	from  domain.NodeID
	to    domain.NodeID
	label string
}

// The static shape of the machine. Kept in sync with the engine's adjacency
// table and routers.
var edges = []edge{
	{domain.NodeGreeting, domain.StepAwait, ""},
	{domain.NodeIntent, domain.NodeGreeting, string(domain.IntentGreeting)},
	{domain.NodeIntent, domain.NodeRAG, string(domain.IntentInquiry)},
	{domain.NodeIntent, domain.NodeLeadQual, string(domain.IntentHighIntent)},
	{domain.NodeIntent, domain.NodeFallback, string(domain.IntentUnknown)},
	{domain.NodeRAG, domain.StepAwait, ""},
	{domain.NodeLeadQual, domain.StepAwait, "more fields"},
	{domain.NodeLeadQual, domain.NodeLeadCapture, "lead complete"},
	{domain.NodeLeadCapture, domain.StepDone, ""},
	{domain.NodeFallback, domain.StepAwait, ""},
}

// GenerateMermaid produces Mermaid flowchart syntax for the conversation
// graph. Sentinels get distinct shapes: await is a parallelogram (waiting
// for input), done is a circle (terminal).
func GenerateMermaid() string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range []domain.NodeID{
		domain.NodeGreeting, domain.NodeIntent, domain.NodeRAG,
		domain.NodeLeadQual, domain.NodeLeadCapture, domain.NodeFallback,
		domain.StepAwait, domain.StepDone,
	} {
		opener, closer := "[", "]"
		switch id {
		case domain.StepAwait:
			opener, closer = "[/", "/]"
		case domain.StepDone:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, id, closer))
	}

	for _, e := range edges {
		if e.label != "" {
			sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", e.from, e.label, e.to))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", e.from, e.to))
	}

	return sb.String()
}
