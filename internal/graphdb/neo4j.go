package graphdb

import (
	"context"

	"github.com/gravitational/trace"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Neo4jClient is the production Client, backed by a real Bolt
// connection to a neo4j instance.
type Neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jClient dials uri with basic auth and verifies connectivity
// before returning.
func NewNeo4jClient(ctx context.Context, uri, username, password, database string) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, trace.Wrap(err, "connecting to graph database at %s", uri)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, trace.Wrap(err, "verifying graph database connectivity")
	}
	return &Neo4jClient{driver: driver, database: database}, nil
}

// Run executes query in its own write transaction, returning every
// record plus the transaction's result summary.
func (c *Neo4jClient) Run(ctx context.Context, query string) ([]Record, Summary, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		return txResult{records: records, summary: summary}, nil
	})
	if err != nil {
		return nil, Summary{}, trace.Wrap(err, "running graph query")
	}

	tr := result.(txResult)
	out := make([]Record, len(tr.records))
	for i, rec := range tr.records {
		out[i] = recordToMap(rec)
	}

	counters := tr.summary.Counters()
	return out, Summary{
		NodesCreated:         counters.NodesCreated(),
		RelationshipsCreated: counters.RelationshipsCreated(),
		ResultAvailableAfter: tr.summary.ResultAvailableAfter(),
		ResultConsumedAfter:  tr.summary.ResultConsumedAfter(),
	}, nil
}

// Close shuts down the underlying driver and its connection pool.
func (c *Neo4jClient) Close(ctx context.Context) error {
	return trace.Wrap(c.driver.Close(ctx))
}

type txResult struct {
	records []*neo4j.Record
	summary neo4j.ResultSummary
}

// recordToMap flattens a driver record into plain property maps so
// nothing above this package ever imports neo4j's own node/relationship
// types — the fixpoint driver reconstructs graph.Node bindings from
// plain map[string]any values regardless of whether a Record came from
// this client or the in-memory fake.
func recordToMap(rec *neo4j.Record) Record {
	out := make(Record, len(rec.Keys))
	for _, key := range rec.Keys {
		v, _ := rec.Get(key)
		out[key] = flattenValue(v)
	}
	return out
}

func flattenValue(v any) any {
	switch n := v.(type) {
	case dbtype.Node:
		return map[string]any(n.Props)
	case dbtype.Relationship:
		return map[string]any(n.Props)
	default:
		return v
	}
}
