// Package graphdb is the engine's only dependency on an external
// graph database. Everything above this package — the fixpoint driver,
// the pattern compiler — talks to the Client interface, never to the
// neo4j-go-driver directly, so a fake in-memory implementation can
// stand in during tests.
package graphdb

import (
	"context"
	"time"
)

// Summary reports what a single Run call did, mirroring the subset of
// a neo4j ResultSummary the fixpoint driver's convergence check and
// logging need.
type Summary struct {
	NodesCreated              int
	RelationshipsCreated      int
	ResultAvailableAfter      time.Duration
	ResultConsumedAfter       time.Duration
}

// Created reports whether the query created anything at all — the
// convergence test the fixpoint driver loops on (spec §5.1).
func (s Summary) Created() bool {
	return s.NodesCreated > 0 || s.RelationshipsCreated > 0
}

// Record is one row of a query's result set: column name to value.
type Record map[string]any

// Client is the graph database contract: run a Cypher query, get back
// a summary of what it did plus the rows it returned.
type Client interface {
	Run(ctx context.Context, query string) ([]Record, Summary, error)
	Close(ctx context.Context) error
}
