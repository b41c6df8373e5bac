// Package fake provides an in-memory graphdb.Client for tests: a
// scripted stub rather than a real Cypher interpreter, since the
// fixpoint driver only needs Summary.Created() and the handful of
// bound-node rows a compiled query returns.
package fake

import (
	"context"
	"sync"

	"github.com/AkshayJainG/awspx-go/internal/graphdb"
)

// Response is one scripted reply to a Run call.
type Response struct {
	Records []graphdb.Record
	Summary graphdb.Summary
	Err     error
}

// Client is a graphdb.Client whose Run calls are answered from a
// pre-loaded Responses queue, in order; once exhausted, it keeps
// returning the last response (or a zero, non-creating Summary if none
// was ever queued), so a test can script "two iterations that create
// things, then convergence" without sizing the queue exactly.
type Client struct {
	mu        sync.Mutex
	Responses []Response
	Queries   []string
	closed    bool
}

// New returns an empty Client; use Push to queue responses before
// driving it.
func New() *Client { return &Client{} }

// Push appends resp to the response queue.
func (c *Client) Push(resp Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Responses = append(c.Responses, resp)
}

// Run records query and returns the next queued response.
func (c *Client) Run(ctx context.Context, query string) ([]graphdb.Record, graphdb.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Queries = append(c.Queries, query)

	if len(c.Responses) == 0 {
		return nil, graphdb.Summary{}, nil
	}
	idx := len(c.Queries) - 1
	if idx >= len(c.Responses) {
		idx = len(c.Responses) - 1
	}
	resp := c.Responses[idx]
	return resp.Records, resp.Summary, resp.Err
}

// Close marks the client closed; Queries/Responses remain inspectable
// afterward for assertions.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
