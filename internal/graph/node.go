// Package graph holds the in-memory resource/edge model the Policy
// Resolver and Pattern Compiler operate over. Node and edge shapes
// mirror the labeled property graph described in the engine's external
// graph-DB contract: every node carries a Name, an optional Arn, and
// one or more AWS::<Service>::<Kind> type labels.
package graph

import "slices"

// Node is any entity that can appear as a principal, target, option, or
// grant in the resource graph: a concrete Resource, an External
// principal outside the analyzed account, or a Generic placeholder
// standing for any creatable instance of a type.
type Node interface {
	NodeName() string
	NodeArn() string
	NodeLabels() []string
	HasLabel(label string) bool
}

type base struct {
	Name   string
	Arn    string
	Labels []string
}

func (b *base) NodeName() string   { return b.Name }
func (b *base) NodeArn() string    { return b.Arn }
func (b *base) NodeLabels() []string {
	return b.Labels
}
func (b *base) HasLabel(label string) bool { return slices.Contains(b.Labels, label) }

// Resource is a concrete account-scoped object: a user, role, group,
// policy, instance, bucket, and so on. Properties holds the
// ingester-supplied attribute bag (policy documents, ACL grants,
// trust-policy arns, ...), consumed read-only by the Policy Resolver.
type Resource struct {
	base
	Properties map[string]any
}

// NewResource constructs a Resource with the given labels and property
// bag. Arn may be empty only for resources that are never addressable
// by arn (none exist in the current catalog, but the type permits it).
func NewResource(name, arn string, labels []string, properties map[string]any) *Resource {
	if properties == nil {
		properties = map[string]any{}
	}
	return &Resource{base: base{Name: name, Arn: arn, Labels: labels}, Properties: properties}
}

// Generic is a placeholder node representing any instance of a type
// that could be created by an attack template whose Options include
// CreateAction. It never carries an arn.
type Generic struct {
	base
}

func NewGeneric(resourceType string) *Generic {
	return &Generic{base: base{Name: "Generic:" + resourceType, Labels: []string{resourceType}}}
}

// External represents a principal outside the analyzed account: an
// unrecognized AWS account, a SAML provider, a federated domain, or an
// anonymous/authenticated "*" principal.
type External struct {
	base
	CanonicalUser string
}

func NewExternal(name, arn string, labels []string) *External {
	return &External{base: base{Name: name, Arn: arn, Labels: labels}}
}

// AdminLabel marks a node as granting effective administrator
// authority, either because the ingester observed it directly or
// because the Fixpoint Driver has temporarily labeled a Generic Policy
// admin-capable during a search iteration.
const AdminLabel = "Admin"

// EffectiveAdminName is the synthesized pseudo-node anchoring every
// admin-granting path discovered by the search engine.
const EffectiveAdminName = "Effective Admin"

// NewEffectiveAdmin builds the synthetic administrator pseudo-node
// created once per analysis run, before search begins.
func NewEffectiveAdmin(account string) *Resource {
	return NewResource(
		EffectiveAdminName,
		"arn:aws:iam::"+account+":policy/Admin",
		[]string{AdminLabel, "AWS::Iam::Policy"},
		map[string]any{},
	)
}
