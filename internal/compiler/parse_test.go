package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityVar(placeholder string) string {
	if placeholder == "" {
		return "source"
	}
	return placeholder
}

func TestParseCypherLineAttachedTransitive(t *testing.T) {
	line := `(${AWS::Iam::InstanceProfile})-[:TRANSITIVE{Name:'Attached'}]->(${AWS::Iam::Role})`
	p, ok := parseCypherLine(line, identityVar)
	require.True(t, ok)

	require.Len(t, p.Nodes, 2)
	assert.Equal(t, "AWS::Iam::InstanceProfile", p.Nodes[0].Var)
	assert.Equal(t, "AWS::Iam::Role", p.Nodes[1].Var)

	require.Len(t, p.Rels, 1)
	assert.Equal(t, []string{"TRANSITIVE"}, p.Rels[0].Types)
	assert.False(t, p.Rels[0].Reverse)
	assert.Equal(t, "'Attached'", p.Rels[0].Props["Name"])
}

func TestParseCypherLineVariableLengthAnonymousHop(t *testing.T) {
	line := `(${})-[:TRANSITIVE*..]->()-[:ACTION{Name:'iam:PassRole'}]->(${AWS::Iam::Role})`
	p, ok := parseCypherLine(line, identityVar)
	require.True(t, ok)

	require.Len(t, p.Nodes, 3)
	assert.Equal(t, "source", p.Nodes[0].Var)
	assert.Equal(t, "anon1", p.Nodes[1].Var)
	assert.Equal(t, "AWS::Iam::Role", p.Nodes[2].Var)

	require.Len(t, p.Rels, 2)
	require.NotNil(t, p.Rels[0].MinHops)
	assert.Equal(t, 0, *p.Rels[0].MinHops)
	assert.Equal(t, []string{"ACTION"}, p.Rels[1].Types)
	assert.Equal(t, "'iam:PassRole'", p.Rels[1].Props["Name"])
}

func TestParseCypherLineReversedTrusts(t *testing.T) {
	line := `(${})<-[:TRUSTS{Name:'sts:AssumeRole'}]-(${AWS::Iam::Role})`
	p, ok := parseCypherLine(line, identityVar)
	require.True(t, ok)

	require.Len(t, p.Rels, 1)
	assert.True(t, p.Rels[0].Reverse)
	assert.Equal(t, []string{"TRUSTS"}, p.Rels[0].Types)
	assert.Equal(t, "source", p.Nodes[0].Var)
	assert.Equal(t, "AWS::Iam::Role", p.Nodes[1].Var)
}

func TestParseCypherLineMalformedReturnsFalse(t *testing.T) {
	_, ok := parseCypherLine("not a cypher pattern at all", identityVar)
	assert.False(t, ok)
}

func TestParseRelRejectsUnterminatedBody(t *testing.T) {
	_, ok := parseRel("-[:ACTION-")
	assert.False(t, ok)
}
