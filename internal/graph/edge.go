package graph

import "encoding/json"

// ConditionVariant is one alternative condition block: an IAM condition
// operator (e.g. "StringEquals") mapped to a condition key/value pair.
// A Statement's Condition property on an emitted Action edge is the
// list of variants that must be OR-combined; see spec §4.2.
type ConditionVariant map[string]map[string]string

// Merge returns a new variant that is the union of v and other, with
// other's keys taking precedence on conflict (statement-level explicit
// conditions are merged onto per-resource variable-capture conditions).
func (v ConditionVariant) Merge(other ConditionVariant) ConditionVariant {
	out := ConditionVariant{}
	for op, kv := range v {
		m := make(map[string]string, len(kv))
		for k, val := range kv {
			m[k] = val
		}
		out[op] = m
	}
	for op, kv := range other {
		m, ok := out[op]
		if !ok {
			m = map[string]string{}
		}
		for k, val := range kv {
			m[k] = val
		}
		out[op] = m
	}
	return out
}

// Empty reports whether the variant carries no condition keys at all.
func (v ConditionVariant) Empty() bool {
	for _, kv := range v {
		if len(kv) > 0 {
			return false
		}
	}
	return true
}

// ConditionJSON serializes a list of condition variants to the
// "[]"-sentineled wire form the graph-DB property requires: an empty or
// all-empty list becomes the literal string "[]", since the spec's
// graph-DB property type is scalar (§3, Design Notes).
func ConditionJSON(variants []ConditionVariant) string {
	nonEmpty := false
	for _, v := range variants {
		if !v.Empty() {
			nonEmpty = true
			break
		}
	}
	if !nonEmpty {
		return "[]"
	}
	b, err := json.Marshal(variants)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Access describes the class of effect an action has, as recorded in
// the Action Catalog.
type Access string

const (
	AccessRead  Access = "Read"
	AccessWrite Access = "Write"
	AccessList  Access = "List"
	AccessTag   Access = "Tagging"
	AccessPerm  Access = "Permissions management"
)

// Effect is the IAM statement effect: Allow or Deny.
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// ActionEdge is the Policy Resolver's principal output: "Name may be
// invoked on Target by Source, subject to Condition".
type ActionEdge struct {
	Source      Node
	Target      Node
	Name        string
	Effect      Effect
	Access      Access
	Description string
	Reference   string
	Condition   []ConditionVariant
}

// ConditionString renders Condition in its wire form.
func (a ActionEdge) ConditionString() string { return ConditionJSON(a.Condition) }

// HasCondition reports whether the edge carries any non-empty
// condition variant — used to implement ignore_actions_with_conditions.
func (a ActionEdge) HasCondition() bool {
	for _, v := range a.Condition {
		if !v.Empty() {
			return true
		}
	}
	return false
}

// TrustsEdge is a role trust-policy edge (sts:AssumeRole), placed from
// the trusted principal to the trusting role.
type TrustsEdge struct {
	Source Node
	Target Node
	Name   string
}

// TransitiveEdge is a structural edge placed by the ingester, e.g.
// Attached, MemberOf, Contains.
type TransitiveEdge struct {
	Source Node
	Target Node
	Name   string
}

// AttackEdge is synthesized by the Fixpoint Driver: Source can execute
// the named attack pattern, routed through a Pattern node rather than
// placed directly between Source and Target (spec §3). Admin is true
// when the pattern's template carries the Admin option. Commands,
// Description, and Weight mirror the Pattern node's own resolved
// command chain, carried onto the grant edge so a consumer reading
// just the edge still sees what the attack does and costs.
type AttackEdge struct {
	Source      Node
	Target      Node
	Name        string
	Admin       bool
	Commands    []string
	Description string
	Weight      int
}

// CreateEdge is the CREATE-typed variant of AttackEdge whose outcome is
// instantiating a Generic node.
type CreateEdge struct {
	AttackEdge
}

// OptionEdge records that a pattern requires its source to additionally
// control or reach a dependency node, at the given command Weight.
type OptionEdge struct {
	Source   Node
	Target   Node
	Weight   int
	Commands []string
}

// AdminEdge is the post-unification rewrite of any ATTACK edge whose
// target is the admin pseudo-node, or an admin-labeled generic policy.
type AdminEdge struct {
	Source      Node
	Target      Node
	Name        string
	Descriptions []string
}
