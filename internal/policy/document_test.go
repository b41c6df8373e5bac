package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

func TestNewDocumentSingleAndListStatement(t *testing.T) {
	resources := newTestResources()

	single := map[string]any{
		"Version": "2012-10-17",
		"Statement": map[string]any{
			"Sid":       "One",
			"Effect":    "Allow",
			"Principal": "*",
			"Action":    "iam:CreateRole",
			"Resource":  "*",
		},
	}
	doc, err := NewDocument(single, nil, "123456789012", resources)
	require.NoError(t, err)
	require.Len(t, doc.Statements, 1)

	list := map[string]any{
		"Version": "2012-10-17",
		"Statement": []any{
			map[string]any{"Sid": "A", "Effect": "Allow", "Principal": "*", "Action": "iam:CreateRole", "Resource": "*"},
			map[string]any{"Sid": "B", "Effect": "Allow", "Principal": "*", "Action": "iam:CreateUser", "Resource": "*"},
		},
	}
	doc, err = NewDocument(list, nil, "123456789012", resources)
	require.NoError(t, err)
	require.Len(t, doc.Statements, 2)

	stmt, ok := doc.GetStatementBySid("B")
	require.True(t, ok)
	assert.Equal(t, []string{"iam:CreateUser"}, stmt.Actions())
}

func TestNewDocumentDropsMalformedStatement(t *testing.T) {
	resources := newTestResources()

	raw := map[string]any{
		"Version": "2012-10-17",
		"Statement": []any{
			map[string]any{"Sid": "Good", "Effect": "Allow", "Principal": "*", "Action": "iam:CreateRole", "Resource": "*"},
			map[string]any{"Sid": "Bad", "Effect": "Allow", "Principal": "*", "Resource": "*"}, // missing Action/NotAction
		},
	}
	doc, err := NewDocument(raw, nil, "123456789012", resources)
	require.NoError(t, err)
	require.Len(t, doc.Statements, 1)

	_, ok := doc.GetStatementBySid("Bad")
	assert.False(t, ok)
}

func TestNewDocumentMalformedStatementShapeErrors(t *testing.T) {
	resources := newTestResources()

	raw := map[string]any{
		"Version":   "2012-10-17",
		"Statement": []any{"not-an-object"},
	}
	_, err := NewDocument(raw, nil, "123456789012", resources)
	assert.Error(t, err)
}

func TestIdentityBasedPolicyRequiresOwner(t *testing.T) {
	resources := newTestResources()
	_, err := NewIdentityBasedPolicy(nil, map[string]any{}, "123456789012", resources)
	assert.Error(t, err)
}

func TestResourceBasedPolicyResolve(t *testing.T) {
	bucket := graph.NewResource("my-bucket", "arn:aws:s3:::my-bucket", []string{"AWS::S3::Bucket"}, nil)
	resources := graph.NewResourceSet([]*graph.Resource{bucket})

	raw := map[string]any{
		"Version": "2012-10-17",
		"Statement": map[string]any{
			"Effect":    "Allow",
			"Principal": map[string]any{"AWS": "*"},
			"Action":    "s3:GetObject",
			"Resource":  "*",
		},
	}
	pol, err := NewResourceBasedPolicy(bucket, raw, "123456789012", resources)
	require.NoError(t, err)

	edges := pol.Resolve()
	assert.NotEmpty(t, edges)
	for _, e := range edges {
		assert.Equal(t, "s3:GetObject", e.Name)
	}
}
