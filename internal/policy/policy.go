package policy

import (
	"github.com/gravitational/trace"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

// Policy is the common surface every dialect (identity-based,
// resource-based, bucket ACL) implements: a single entry point that
// produces the ActionEdges that dialect's document(s) grant.
type Policy interface {
	Resolve() []graph.ActionEdge
}

// IdentityBasedPolicy is a policy document attached to a User, Group,
// or Role: the document's implicit principal is the attachment target
// itself (spec §4.1).
type IdentityBasedPolicy struct {
	Owner    *graph.Resource
	Document *Document
}

// NewIdentityBasedPolicy parses raw into an IdentityBasedPolicy
// attached to owner.
func NewIdentityBasedPolicy(owner *graph.Resource, raw map[string]any, account string, resources *graph.ResourceSet) (*IdentityBasedPolicy, error) {
	if owner == nil {
		return nil, trace.BadParameter("identity-based policy requires a non-nil owner")
	}
	doc, err := NewDocument(raw, owner, account, resources)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &IdentityBasedPolicy{Owner: owner, Document: doc}, nil
}

func (p *IdentityBasedPolicy) Resolve() []graph.ActionEdge { return p.Document.Resolve() }

// ResourceBasedPolicy is a policy document attached directly to a
// resource (bucket policy, role trust policy with inline
// sts:AssumeRole-adjacent actions, KMS key policy, ...): its
// statements always carry an explicit Principal (spec §4.1).
type ResourceBasedPolicy struct {
	Resource *graph.Resource
	Document *Document
}

// NewResourceBasedPolicy parses raw into a ResourceBasedPolicy
// attached to resource. owner is passed as nil since resource-based
// statements must supply their own Principal.
func NewResourceBasedPolicy(resource *graph.Resource, raw map[string]any, account string, resources *graph.ResourceSet) (*ResourceBasedPolicy, error) {
	if resource == nil {
		return nil, trace.BadParameter("resource-based policy requires a non-nil resource")
	}
	doc, err := NewDocument(raw, nil, account, resources)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &ResourceBasedPolicy{Resource: resource, Document: doc}, nil
}

func (p *ResourceBasedPolicy) Resolve() []graph.ActionEdge { return p.Document.Resolve() }
