package compiler

// Config carries the run-wide knobs that influence how a template
// compiles into a query: everything a user can set on the CLI that
// changes the shape of the generated Cypher, rather than just which
// templates run.
type Config struct {
	// Account is the analyzed AWS account id, substituted into the
	// Effective Admin node's arn.
	Account string

	// IgnoreActionsWithConditions drops any principal-action match
	// whose ACTION edge carries a non-empty Condition, trading recall
	// for a conservative (no false admin claims) search.
	IgnoreActionsWithConditions bool

	// MaxSearchDepth bounds the variable-length hops the compiled query
	// traverses from source: to the intermediary holding the required
	// actions, to a dependency, and to a CREATE edge during target
	// widening. Zero allows no hops, so those nodes must be source
	// itself (or, for widening, adjacent to it).
	MaxSearchDepth int
}
