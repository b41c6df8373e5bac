package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodePatternString(t *testing.T) {
	n := NodePattern{Var: "source", Labels: []string{"AWS::Iam::Role"}, Props: map[string]string{"Name": "'deploy'"}}
	assert.Equal(t, "(source:`AWS::Iam::Role`{Name: 'deploy'})", n.String())
}

func TestNodePatternNoLabelsOrProps(t *testing.T) {
	n := NodePattern{Var: "x"}
	assert.Equal(t, "(x)", n.String())
}

func TestRelPatternForwardAndReverse(t *testing.T) {
	forward := RelPattern{Var: "a", Types: []string{"ACTION"}}
	assert.Equal(t, "-[a:ACTION]->", forward.String())

	reverse := RelPattern{Var: "b", Types: []string{"TRUSTS"}, Reverse: true}
	assert.Equal(t, "<-[b:TRUSTS]-", reverse.String())
}

func TestRelPatternVariableHops(t *testing.T) {
	zero := 0
	six := 6
	r := RelPattern{Var: "r", Types: []string{"TRANSITIVE"}, MinHops: &zero, MaxHops: &six}
	assert.Equal(t, "-[r:TRANSITIVE*0..6]->", r.String())
}

func TestPatternString(t *testing.T) {
	p := NewPattern(
		NodePattern{Var: "source"},
		Hop{Rel: RelPattern{Var: "action0", Types: []string{"ACTION"}}, Node: NodePattern{Var: "target"}},
	)
	assert.Equal(t, "(source)-[action0:ACTION]->(target)", p.String())
}

func TestQueryStringAssemblesAllClauses(t *testing.T) {
	q := &Query{
		Matches: []MatchClause{{Pattern: NewPattern(NodePattern{Var: "source"})}},
		Wheres:  []WhereClause{{Expr: "source <> target"}},
		Withs:   []WithClause{{Items: []string{"source", "target"}}},
		Return:  &ReturnClause{Items: []string{"source", "target"}},
	}
	out := q.String()
	assert.Contains(t, out, "MATCH (source)")
	assert.Contains(t, out, "WHERE (source <> target)")
	assert.Contains(t, out, "WITH source, target")
	assert.Contains(t, out, "RETURN source, target")
}

func TestQueryStringOptionalMatch(t *testing.T) {
	q := &Query{Matches: []MatchClause{{Pattern: NewPattern(NodePattern{Var: "x"}), Optional: true}}}
	assert.Contains(t, q.String(), "OPTIONAL MATCH (x)")
}

func TestMergeClauseOnCreateSet(t *testing.T) {
	q := &Query{
		Merges: []MergeClause{{
			Pattern:     NewPattern(NodePattern{Var: "admin"}),
			OnCreateSet: map[string]string{"Name": "'Effective Admin'"},
		}},
	}
	out := q.String()
	assert.Contains(t, out, "MERGE (admin)")
	assert.Contains(t, out, "ON CREATE SET admin.Name = 'Effective Admin'")
}

func TestCollectAndReduce(t *testing.T) {
	assert.Equal(t, "COLLECT(x.Name)", Collect("x.Name"))
	assert.Equal(t, "REDUCE(acc = [], x IN list | acc + x)", Reduce("acc", "[]", "x", "list", "acc + x"))
}
