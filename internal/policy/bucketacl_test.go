package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

func newTestBucket() *graph.Resource {
	return graph.NewResource("my-bucket", "arn:aws:s3:::my-bucket", []string{"AWS::S3::Bucket"}, nil)
}

func TestBucketACLRequiresBucket(t *testing.T) {
	_, err := NewBucketACL(nil, nil, nil)
	assert.Error(t, err)
}

func TestBucketACLCanonicalUserGrant(t *testing.T) {
	bucket := newTestBucket()
	acl, err := NewBucketACL(bucket, []Grant{
		{Grantee: Grantee{Type: "CanonicalUser", ID: "abc123"}, Permission: "READ"},
	}, nil)
	require.NoError(t, err)

	edges := acl.Resolve()
	assert.ElementsMatch(t,
		[]string{"s3:ListBucket", "s3:ListBucketVersions", "s3:ListBucketMultipartUploads"},
		actionNames(edges),
	)
	for _, e := range edges {
		assert.Equal(t, bucket, e.Target)
		ext := e.Source.(*graph.External)
		assert.Equal(t, "abc123", ext.CanonicalUser)
	}
}

func TestBucketACLAllUsersVsAuthenticatedUsersDistinct(t *testing.T) {
	bucket := newTestBucket()
	acl, err := NewBucketACL(bucket, []Grant{
		{Grantee: Grantee{Type: "Group", URI: groupURIAllUsers}, Permission: "READ_ACP"},
		{Grantee: Grantee{Type: "Group", URI: groupURIAuthenticatedUsers}, Permission: "READ_ACP"},
	}, nil)
	require.NoError(t, err)

	edges := acl.Resolve()
	require.Len(t, edges, 2)
	assert.NotEqual(t, edges[0].Source.NodeName(), edges[1].Source.NodeName())
	assert.NotEqual(t, edges[0].Source.NodeArn(), edges[1].Source.NodeArn())
}

func TestBucketACLUnknownPermissionDropped(t *testing.T) {
	bucket := newTestBucket()
	acl, err := NewBucketACL(bucket, []Grant{
		{Grantee: Grantee{Type: "Group", URI: groupURIAllUsers}, Permission: "NOT_A_REAL_PERMISSION"},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, acl.Resolve())
}

func TestBucketACLLogDeliveryGrantsServicePrincipal(t *testing.T) {
	bucket := newTestBucket()
	acl, err := NewBucketACL(bucket, []Grant{
		{Grantee: Grantee{Type: "Group", URI: groupURILogDelivery}, Permission: "WRITE"},
	}, nil)
	require.NoError(t, err)

	edges := acl.Resolve()
	require.NotEmpty(t, edges)
	for _, e := range edges {
		assert.True(t, e.Source.HasLabel("AWS::Service"))
	}
}

func TestBucketACLOtherGroupURIGrantsAWSPrincipal(t *testing.T) {
	bucket := newTestBucket()
	uri := "http://acs.amazonaws.com/groups/s3/SomeOtherGroup"
	acl, err := NewBucketACL(bucket, []Grant{
		{Grantee: Grantee{Type: "Group", URI: uri}, Permission: "READ_ACP"},
	}, nil)
	require.NoError(t, err)

	edges := acl.Resolve()
	require.Len(t, edges, 1)
	assert.Equal(t, uri, edges[0].Source.NodeArn())
}

func TestBucketACLExpandsToTrackedObjectsUnderBucket(t *testing.T) {
	bucket := newTestBucket()
	object := graph.NewResource("my-bucket/key.txt", bucket.Arn+"/key.txt", []string{"AWS::S3::Object"}, nil)
	resources := graph.NewResourceSet([]*graph.Resource{bucket, object})

	acl, err := NewBucketACL(bucket, []Grant{
		{Grantee: Grantee{Type: "Group", URI: groupURIAllUsers}, Permission: "READ_ACP"},
	}, resources)
	require.NoError(t, err)

	edges := acl.Resolve()
	targets := map[string]bool{}
	for _, e := range edges {
		targets[e.Target.NodeArn()] = true
	}
	assert.True(t, targets[bucket.Arn])
	assert.True(t, targets[object.Arn])
}

func actionNames(edges []graph.ActionEdge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Name
	}
	return out
}
