package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionVariantMergeOtherTakesPrecedence(t *testing.T) {
	base := ConditionVariant{"StringEquals": {"aws:username": "alice"}}
	other := ConditionVariant{"StringEquals": {"aws:username": "bob"}, "IpAddress": {"aws:SourceIp": "10.0.0.0/8"}}

	merged := base.Merge(other)
	assert.Equal(t, "bob", merged["StringEquals"]["aws:username"])
	assert.Equal(t, "10.0.0.0/8", merged["IpAddress"]["aws:SourceIp"])

	// originals unmodified
	assert.Equal(t, "alice", base["StringEquals"]["aws:username"])
}

func TestConditionVariantEmpty(t *testing.T) {
	assert.True(t, ConditionVariant{}.Empty())
	assert.True(t, ConditionVariant{"StringEquals": {}}.Empty())
	assert.False(t, ConditionVariant{"StringEquals": {"k": "v"}}.Empty())
}

func TestConditionJSONAllEmptyIsSentinel(t *testing.T) {
	assert.Equal(t, "[]", ConditionJSON(nil))
	assert.Equal(t, "[]", ConditionJSON([]ConditionVariant{{}, {"StringEquals": {}}}))
}

func TestConditionJSONNonEmptyMarshals(t *testing.T) {
	out := ConditionJSON([]ConditionVariant{{"StringEquals": {"aws:username": "alice"}}})
	assert.Contains(t, out, "StringEquals")
	assert.Contains(t, out, "alice")
}

func TestActionEdgeHasCondition(t *testing.T) {
	withCondition := ActionEdge{Condition: []ConditionVariant{{"StringEquals": {"k": "v"}}}}
	assert.True(t, withCondition.HasCondition())

	without := ActionEdge{Condition: []ConditionVariant{{}}}
	assert.False(t, without.HasCondition())

	empty := ActionEdge{}
	assert.False(t, empty.HasCondition())
}

func TestActionEdgeConditionString(t *testing.T) {
	e := ActionEdge{Condition: []ConditionVariant{{}}}
	assert.Equal(t, "[]", e.ConditionString())
}
