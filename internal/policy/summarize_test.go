package policy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

func TestSummarizeGroupsByPrincipalAndResource(t *testing.T) {
	alice := graph.NewResource("alice", "arn:aws:iam::123456789012:user/alice", []string{"AWS::Iam::User"}, nil)
	role := graph.NewResource("deploy", "arn:aws:iam::123456789012:role/deploy", []string{"AWS::Iam::Role"}, nil)

	edges := []graph.ActionEdge{
		{Source: alice, Target: role, Name: "sts:AssumeRole", Effect: graph.EffectAllow, Condition: []graph.ConditionVariant{{}}},
		{Source: alice, Target: role, Name: "iam:PassRole", Effect: graph.EffectAllow, Condition: []graph.ConditionVariant{{}}},
		{Source: alice, Target: role, Name: "sts:AssumeRole", Effect: graph.EffectAllow, Condition: []graph.ConditionVariant{{}}}, // duplicate
		{Source: alice, Target: role, Name: "iam:DeleteRole", Effect: graph.EffectDeny, Condition: []graph.ConditionVariant{{}}}, // denied, excluded
		{Source: alice, Target: role, Name: "sts:TagSession", Effect: graph.EffectAllow, Condition: []graph.ConditionVariant{{"StringEquals": {"aws:username": "alice"}}}},
	}

	summary := Summarize(edges)
	require.Contains(t, summary, alice.Arn)

	ra := summary[alice.Arn].Resources[role.Arn]
	require.NotNil(t, ra)
	want := []string{"iam:PassRole", "sts:AssumeRole", "sts:TagSession"}
	if diff := cmp.Diff(want, ra.Actions); diff != "" {
		t.Errorf("resolved actions mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, ra.HasCondition)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}
