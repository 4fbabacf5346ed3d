// Package domain holds the conversation model shared by the engine, the
// drivers and the persistence adapters: the State record, the closed node
// and intent sets, transcript types and lifecycle events.
//
// The package is dependency-free so adapters on both sides of the engine
// (storage, transport, observability) can import it without cycles.
package domain
