// Package ports defines the driven-side interfaces of the agent: the
// external Retriever and Completer collaborators, state persistence, and
// the input acquisition capability that distinguishes blocking terminal
// drivers from suspend-and-resume web drivers.
package ports
