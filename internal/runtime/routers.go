package runtime

import "github.com/servicehive/autostream/pkg/domain"

// StartRouter decides where a turn begins, in priority order: resume an
// outstanding lead question, resume a half-captured lead, honor an explicit
// intent step set by the driver, or greet a fresh session.
func StartRouter(s *domain.State) domain.NodeID {
	if s.AwaitingLeadAnswer() {
		return domain.NodeLeadQual
	}
	if s.Lead != nil && s.Lead.Name != "" && !s.Lead.Complete() {
		return domain.NodeLeadQual
	}
	if s.Step == domain.NodeIntent {
		return domain.NodeIntent
	}
	return domain.NodeGreeting
}

// EdgeRouter maps the freshly computed intent onto the next node. It is a
// pure function of State.Intent and must only run immediately after the
// intent node.
func EdgeRouter(s *domain.State) domain.NodeID {
	switch s.Intent {
	case domain.IntentGreeting:
		return domain.NodeGreeting
	case domain.IntentInquiry:
		return domain.NodeRAG
	case domain.IntentHighIntent:
		return domain.NodeLeadQual
	default:
		return domain.NodeFallback
	}
}

// LeadQualRouter follows the decision lead_qual recorded in Step: continue
// to capture when all fields are set, otherwise stay suspended.
func LeadQualRouter(s *domain.State) domain.NodeID {
	if s.Step == domain.NodeLeadCapture {
		return domain.NodeLeadCapture
	}
	return s.Step
}
