package policy

import (
	"strings"

	"github.com/gravitational/trace"

	"github.com/AkshayJainG/awspx-go/internal/catalog"
	"github.com/AkshayJainG/awspx-go/internal/graph"
)

const (
	groupURIAllUsers           = "http://acs.amazonaws.com/groups/global/all-users"
	groupURIAuthenticatedUsers = "http://acs.amazonaws.com/groups/global/authenticated-users"
	groupURILogDelivery        = "http://acs.amazonaws.com/groups/s3/LogDelivery"
)

// accessControlList maps each S3 canned ACL permission to the set of
// actions it is equivalent to granting — the same fixed mapping the
// original bucket-ACL resolver used to translate grants into ordinary
// action edges (policy.py:561-586). Notably this table has no entry
// that grants s3:GetObject: canned ACLs only ever control bucket-level
// access, not individual object reads.
var accessControlList = map[string][]string{
	"READ": {
		"s3:ListBucket", "s3:ListBucketVersions", "s3:ListBucketMultipartUploads",
	},
	"WRITE":     {"s3:PutObject", "s3:DeleteObject"},
	"READ_ACP":  {"s3:GetBucketAcl"},
	"WRITE_ACP": {"s3:PutBucketAcl"},
	"FULL_CONTROL": {
		"s3:DeleteObject", "s3:GetBucketAcl", "s3:ListBucket",
		"s3:ListBucketMultipartUploads", "s3:ListBucketVersions",
		"s3:PutBucketAcl", "s3:PutObject",
	},
}

// Grantee is one ACL grant target: exactly one of ID (a CanonicalUser)
// or URI (a well-known group) is set.
type Grantee struct {
	Type string // "CanonicalUser" or "Group"
	ID   string
	URI  string
}

// Grant pairs a Grantee with the canned permission it was given.
type Grant struct {
	Grantee    Grantee
	Permission string
}

// BucketACL resolves an S3 bucket's access-control-list grants into
// ActionEdges. AllUsers and AuthenticatedUsers are kept as two
// distinct External principals rather than collapsed into one
// "anonymous" node as the original ACL-to-policy translation does
// (policy.py:622-628 maps both groups to the identical {"AWS":"*"}
// principal), so a reader can tell a truly public grant (AllUsers)
// apart from one scoped to any authenticated AWS principal (see Open
// Question resolution in SPEC_FULL.md §D). Because that distinction
// would collapse if the grant were routed through the shared
// identity-style "*" principal expansion every other dialect uses,
// grantees are resolved directly here rather than through a
// synthesized ResourceBasedPolicy document; the resource side of the
// original's semantics — ACLs grant over both the bucket and everything
// in it (policy.py:646: Resource = [bucket.id(), bucket.id()+"/*"]) —
// is still honored by matching both arns against any tracked resource.
type BucketACL struct {
	Bucket    *graph.Resource
	Grants    []Grant
	Resources *graph.ResourceSet
}

// NewBucketACL parses a raw ACL grant list (as surfaced by
// s3:GetBucketAcl) into a BucketACL attached to bucket. resources, if
// non-nil, is searched for any tracked resource living under the
// bucket's arn (e.g. a tracked object) so per-object ACL grants widen
// to it in addition to the bucket itself.
func NewBucketACL(bucket *graph.Resource, grants []Grant, resources *graph.ResourceSet) (*BucketACL, error) {
	if bucket == nil {
		return nil, trace.BadParameter("bucket ACL requires a non-nil bucket")
	}
	return &BucketACL{Bucket: bucket, Grants: grants, Resources: resources}, nil
}

func (a *BucketACL) Resolve() []graph.ActionEdge {
	out := make([]graph.ActionEdge, 0)
	targets := a.targets()

	for _, g := range a.Grants {
		principal := granteeNode(g.Grantee)
		if principal == nil {
			continue
		}
		actions, ok := accessControlList[g.Permission]
		if !ok {
			continue
		}
		for _, action := range actions {
			def, ok := catalog.Actions[action]
			if !ok {
				continue
			}
			for _, target := range targets {
				out = append(out, graph.ActionEdge{
					Source:      principal,
					Target:      target,
					Name:        action,
					Effect:      graph.EffectAllow,
					Access:      def.Access,
					Description: def.Description,
					Reference:   def.Reference,
					Condition:   []graph.ConditionVariant{{}},
				})
			}
		}
	}
	return out
}

// targets expands the bucket's own arn to every resource matching
// either the bucket itself or <bucket-arn>/*, mirroring the
// Resource: [bucket.id(), bucket.id()+"/*"] widening the original
// performs before resolving the synthesized ACL statement.
func (a *BucketACL) targets() []*graph.Resource {
	out := []*graph.Resource{a.Bucket}
	if a.Resources == nil {
		return out
	}
	prefix := a.Bucket.Arn + "/"
	for _, r := range a.Resources.All() {
		if r.Arn == a.Bucket.Arn || strings.HasPrefix(r.Arn, prefix) {
			if r.Arn == a.Bucket.Arn {
				continue // already included as a.Bucket
			}
			out = append(out, r)
		}
	}
	return out
}

func granteeNode(g Grantee) graph.Node {
	switch g.Type {
	case "CanonicalUser":
		e := graph.NewExternal(g.ID, syntheticArn("canonical-user", g.ID), []string{"AWS::Account"})
		e.CanonicalUser = g.ID
		return e
	case "Group":
		switch g.URI {
		case groupURIAllUsers:
			return graph.NewExternal("All Users", syntheticArn("group", groupURIAllUsers), []string{"AWS::Account"})
		case groupURIAuthenticatedUsers:
			return graph.NewExternal("Authenticated Users", syntheticArn("group", groupURIAuthenticatedUsers), []string{"AWS::Account"})
		case "":
			return nil
		case groupURILogDelivery:
			return graph.NewExternal(g.URI, g.URI, []string{"AWS::Service"})
		default:
			return graph.NewExternal(g.URI, g.URI, []string{"AWS::Account"})
		}
	}
	return nil
}
