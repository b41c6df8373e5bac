// Package compiler implements the Pattern Compiler: it turns an
// attack.Template into a graph query by building an explicit AST and
// then, in one place (stringify.go), rendering that AST to text. No
// compiler stage below ever concatenates query text directly — every
// stage only adds to or edits the Query value it receives.
package compiler

// Query is the root of a compiled pattern: an ordered sequence of
// Cypher-like clauses built up by the pipeline in compile.go.
type Query struct {
	Matches []MatchClause
	Wheres  []WhereClause
	Withs   []WithClause
	Unwinds []UnwindClause
	Merges  []MergeClause
	Return  *ReturnClause
}

// NodePattern is a single node slot in a path: (var:Label {props}).
type NodePattern struct {
	Var    string
	Labels []string
	Props  map[string]string // values are pre-rendered Cypher literals/params
}

// RelPattern is a single relationship slot in a path:
// -[var:Type1|Type2*min..max {props}]->, or reversed with Reverse=true.
type RelPattern struct {
	Var     string
	Types   []string
	Props   map[string]string
	MinHops *int
	MaxHops *int
	Reverse bool
}

// Pattern is a path: an alternating chain of nodes and relationships,
// always one more node than relationships.
type Pattern struct {
	Nodes []NodePattern
	Rels  []RelPattern
}

// NewPattern builds a Pattern from a starting node and zero or more
// (relationship, node) hops.
func NewPattern(start NodePattern, hops ...Hop) Pattern {
	p := Pattern{Nodes: []NodePattern{start}}
	for _, h := range hops {
		p.Rels = append(p.Rels, h.Rel)
		p.Nodes = append(p.Nodes, h.Node)
	}
	return p
}

// Hop is one (relationship, node) pair appended to a Pattern.
type Hop struct {
	Rel  RelPattern
	Node NodePattern
}

// MatchClause is a MATCH (or OPTIONAL MATCH) over one Pattern. PathVar,
// when set, names the whole matched path (e.g. "hopsPath = (...)"),
// letting a later WHERE inspect it with NODES()/RELATIONSHIPS().
type MatchClause struct {
	Pattern  Pattern
	Optional bool
	PathVar  string
}

// WhereClause is one boolean expression; the stringifier AND-joins
// every WhereClause present on the Query into a single WHERE.
type WhereClause struct {
	Expr string
}

// WithClause projects named expressions forward to later clauses.
type WithClause struct {
	Items []string
}

// UnwindClause expands a list expression into rows bound to As.
type UnwindClause struct {
	Expr string
	As   string
}

// MergeClause is a MERGE over one Pattern, used for materialization and
// for the synthetic admin node.
type MergeClause struct {
	Pattern Pattern
	OnCreateSet map[string]string
}

// ReturnClause is the query's final projection.
type ReturnClause struct {
	Items []string
}

// Collect renders a Cypher COLLECT(expr) expression.
func Collect(expr string) string { return "COLLECT(" + expr + ")" }

// Reduce renders a Cypher REDUCE(...) expression over a list.
func Reduce(accumulator, init, variable, list, expr string) string {
	return "REDUCE(" + accumulator + " = " + init + ", " + variable + " IN " + list + " | " + expr + ")"
}
