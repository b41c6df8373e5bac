// Package attack holds the Attack Template Schema: an immutable,
// compile-time literal table describing every privilege-escalation
// technique the engine searches for. Nothing here talks to a graph
// database or builds a query — that is internal/compiler's job. This
// package only describes, declaratively, what each technique requires,
// what it affects, and what it grants.
package attack

// Template is one declarative attack definition.
type Template struct {
	// Name identifies the template; it becomes the Name on the ATTACK
	// edge from source to this template's Pattern node, and that node's
	// second label. The pattern-to-grant edge is named by GrantLabel.
	Name string

	// Description is the human-readable summary rendered alongside
	// Commands when presenting a discovered pattern.
	Description string

	// Commands are AWS CLI invocations with ${AWS::Svc::Kind}[.Field]
	// placeholders, resolved at materialization time against the
	// pattern's bound nodes (spec §5, Design Note 4).
	Commands []string

	// CreateAction marks templates whose Affects resource does not
	// need to already exist: the compiler may bind it to a Generic
	// placeholder and the fixpoint driver emits a CreateEdge.
	CreateAction bool

	// AdminOption marks templates that, on success, grant the
	// requesting principal administrator authority over the affected
	// resource directly (no further pattern search needed to reach
	// Effective Admin).
	AdminOption bool

	// Depends names the resource type a second, already-controlled
	// node of that type must supply before this template can fire —
	// e.g. AssociateInstanceProfile depends on an Ec2 instance the
	// attacker already controls. Empty when no dependency exists.
	Depends string

	// Requires lists the IAM actions the principal must hold against
	// the affected resource for the template to apply.
	Requires []string

	// Affects is the resource type the template's Requires actions
	// must be held against.
	Affects string

	// Grants names a resource type this template's success gives the
	// principal a path to control, consumed by a later template's
	// Depends clause — e.g. AssociateInstanceProfile's Grants is
	// "AWS::Iam::InstanceProfile", the type the attacker now controls
	// once the instance profile is associated. Only meaningful when
	// GrantsIsResourceType is set; otherwise the affected resource
	// itself is what gets controlled, and the grant is recorded
	// against Affects directly.
	Grants string

	// GrantsIsResourceType distinguishes a Grants value that names a
	// resource type (the template makes the principal a controller of
	// a node of that type, bound by Cypher/withGrantExpansion under the
	// "grants" variable) from the common case where nothing but the
	// affected node itself is granted.
	GrantsIsResourceType bool

	// GrantLabel is the capability recorded as the Name on the
	// pattern-to-grant edge — e.g. "Attached", "AssumeRole", "MemberOf",
	// "ChangePassword". Empty defaults to "Create", the label used for
	// templates whose only grant is the newly-affected node itself.
	GrantLabel string

	// ExtraConstraints are additional boolean Cypher expressions, with
	// the same placeholder syntax as Commands, that must hold for the
	// pattern to match — e.g. "an access key slot is still free".
	// Compiled into the pipeline's withExtraConstraints stage.
	ExtraConstraints []string

	// Cypher describes graph-shape preconditions beyond the
	// principal-action match alone, expressed as
	// internal/compiler-readable relationship patterns (still
	// placeholder syntax, never raw Cypher text — the compiler parses
	// these into ast.RelPattern values).
	Cypher []string
}

// DependsOn reports whether the template requires a second,
// already-controlled node of the given type.
func (t Template) DependsOn(resourceType string) bool {
	return t.Depends != "" && t.Depends == resourceType
}

// Weight is the command-count cost the fixpoint driver's
// weight-minimization stage optimizes over (spec §5.3): shorter
// command chains are preferred when more than one template reaches
// the same target.
func (t Template) Weight() int { return len(t.Commands) }
