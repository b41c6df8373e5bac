// Package fixpoint implements the Fixpoint Driver: the iterative
// search loop that repeatedly compiles and runs every attack template
// until no template creates anything new, then rewrites the resulting
// graph into its canonical, admin-centric form.
package fixpoint

import (
	"context"
	"log/slog"

	"github.com/gravitational/trace"
	"github.com/hashicorp/go-multierror"

	"github.com/AkshayJainG/awspx-go/internal/attack"
	"github.com/AkshayJainG/awspx-go/internal/compiler"
	"github.com/AkshayJainG/awspx-go/internal/graph"
	"github.com/AkshayJainG/awspx-go/internal/graphdb"
)

// Config carries the run-wide search parameters (spec §5).
type Config struct {
	Account                     string
	MaxIterations                int
	MaxSearchDepth               int
	IgnoreActionsWithConditions  bool
	// OnlyAttacks, if non-empty, restricts the search to these
	// template names; ExceptAttacks removes named templates from
	// whichever set OnlyAttacks would otherwise run.
	OnlyAttacks   []string
	ExceptAttacks []string
}

func (c Config) compilerConfig() compiler.Config {
	return compiler.Config{
		Account:                     c.Account,
		IgnoreActionsWithConditions: c.IgnoreActionsWithConditions,
		MaxSearchDepth:              c.MaxSearchDepth,
	}
}

// Result summarizes one completed Run.
type Result struct {
	Iterations            int
	Converged             bool
	NodesCreated          int
	RelationshipsCreated  int
}

// Driver owns the graph database connection and drives the search
// loop against it.
type Driver struct {
	DB        graphdb.Client
	Config    Config
	Templates []attack.Template // defaults to attack.Templates when nil
}

// NewDriver constructs a Driver with the default template set.
func NewDriver(db graphdb.Client, cfg Config) *Driver {
	return &Driver{DB: db, Config: cfg, Templates: attack.Templates}
}

// Run executes the full search: delete any leftover Pattern nodes from
// a prior run, create the Effective Admin pseudo-node, then loop every
// selected template to convergence or Config.MaxIterations, and
// finally post-unify the result. A graph-database query failure aborts
// the loop early but still runs post-unification on whatever the
// search produced so far; the original failure is re-raised as a
// single aggregated error once post-unification (successful or not)
// completes (spec §7 rule 4).
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if err := d.reset(ctx); err != nil {
		return nil, trace.Wrap(err, "resetting search state")
	}
	if err := d.createEffectiveAdmin(ctx); err != nil {
		return nil, trace.Wrap(err, "creating effective admin node")
	}

	templates := d.selectedTemplates()

	// Generic Policy nodes stand for a managed policy an attack
	// template could create; while the search is running they are
	// treated as admin-capable so a template that would grant control
	// of a brand-new admin policy is discovered in the same pass as one
	// granting control of an existing admin policy.
	if err := d.labelGenericPoliciesAdmin(ctx); err != nil {
		return nil, trace.Wrap(err, "labeling generic policies admin")
	}
	defer func() {
		if err := d.unlabelGenericPoliciesAdmin(ctx); err != nil {
			slog.Error("failed to remove temporary admin label from generic policies", "error", err)
		}
	}()

	result := &Result{}
	var loopErr error

loop:
	for iteration := 1; d.Config.MaxIterations == 0 || iteration <= d.Config.MaxIterations; iteration++ {
		createdAny := false

		for _, t := range templates {
			query, err := compiler.Compile(t, d.Config.compilerConfig())
			if err != nil {
				slog.Warn("dropping template that failed to compile", "template", t.Name, "error", err)
				continue
			}

			records, summary, err := d.DB.Run(ctx, query.String())
			if err != nil {
				loopErr = trace.Wrap(err, "running template %s at iteration %d", t.Name, iteration)
				break loop
			}

			result.NodesCreated += summary.NodesCreated
			result.RelationshipsCreated += summary.RelationshipsCreated
			if summary.Created() {
				createdAny = true
				logResolvedCommands(t, records)
			}
		}

		result.Iterations = iteration
		if !createdAny {
			result.Converged = true
			break
		}
	}

	var merged *multierror.Error
	if loopErr != nil {
		merged = multierror.Append(merged, loopErr)
	}

	if err := d.postUnify(ctx); err != nil {
		merged = multierror.Append(merged, trace.Wrap(err, "post-unification"))
	}

	if merged.ErrorOrNil() != nil {
		return result, merged
	}
	return result, nil
}

func (d *Driver) selectedTemplates() []attack.Template {
	pool := d.Templates
	if pool == nil {
		pool = attack.Templates
	}

	only := toSet(d.Config.OnlyAttacks)
	except := toSet(d.Config.ExceptAttacks)

	out := make([]attack.Template, 0, len(pool))
	for _, t := range pool {
		if len(only) > 0 && !only[t.Name] {
			continue
		}
		if except[t.Name] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func (d *Driver) reset(ctx context.Context) error {
	_, _, err := d.DB.Run(ctx, `
OPTIONAL MATCH (p:Pattern)
OPTIONAL MATCH ()-[admin:ADMIN]->(:Admin)
DETACH DELETE p, admin
`)
	return err
}

// logResolvedCommands resolves t.Commands against the nodes a compiled
// template run actually bound, one record at a time, and logs the
// result at debug level — a human-readable trace of what the
// materialized Pattern/grant edge's own Commands property already
// encodes as a Cypher expression.
func logResolvedCommands(t attack.Template, records []graphdb.Record) {
	for _, rec := range records {
		bindings := map[string]graph.Node{}
		if n, ok := nodeFromRecordValue(rec["source"]); ok {
			bindings[""] = n
		}
		if t.Affects != "" {
			if n, ok := nodeFromRecordValue(rec["target"]); ok {
				bindings[t.Affects] = n
			}
		}
		if t.Depends != "" && t.Depends != t.Affects {
			if n, ok := nodeFromRecordValue(rec["dependency"]); ok {
				bindings[t.Depends] = n
			}
		}
		if t.GrantsIsResourceType {
			if n, ok := nodeFromRecordValue(rec["grants"]); ok {
				bindings[t.Grants] = n
			}
		}

		for _, cmd := range t.Commands {
			resolved, err := compiler.ResolveCommand(cmd, bindings)
			if err != nil {
				slog.Warn("failed to resolve attack command for logging", "template", t.Name, "error", err)
				continue
			}
			slog.Debug("discovered attack command", "template", t.Name, "command", resolved)
		}
	}
}

func nodeFromRecordValue(v any) (graph.Node, bool) {
	props, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	name, _ := props["Name"].(string)
	arn, _ := props["Arn"].(string)
	return graph.NewResource(name, arn, nil, props), true
}

func (d *Driver) createEffectiveAdmin(ctx context.Context) error {
	admin := graph.NewEffectiveAdmin(d.Config.Account)

	q := &compiler.Query{
		Merges: []compiler.MergeClause{{
			Pattern: compiler.NewPattern(compiler.NodePattern{
				Var:    "admin",
				Labels: admin.Labels,
				Props: map[string]string{
					"Name": "'" + admin.Name + "'",
					"Arn":  "'" + admin.Arn + "'",
				},
			}),
		}},
	}
	_, _, err := d.DB.Run(ctx, q.String())
	return err
}
