// Package policy implements the Policy Resolver: it turns raw IAM
// policy documents (identity-based, resource-based, and S3 ACLs) into
// normalized graph.ActionEdge values. Every public constructor in this
// package borrows a *graph.ResourceSet by reference and never copies
// or mutates it; see Design Note 1 in SPEC_FULL.md.
package policy

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/gravitational/trace"

	"github.com/AkshayJainG/awspx-go/internal/catalog"
	"github.com/AkshayJainG/awspx-go/internal/graph"
)

var variablePattern = regexp.MustCompile(`\$\{[0-9a-zA-Z:]+\}`)
var accountPattern = regexp.MustCompile(`^\d{12}$`)
var domainPattern = regexp.MustCompile(`^(?:[A-Za-z0-9-]{1,63}\.)+[A-Za-z]{2,63}$`)

// Statement is a single element of a Document's Statement list. Effect
// and Condition are parsed when it is constructed; the four memoized
// queries over the raw JSON statement (Principals, Actions, Resources
// and Resolve) are each computed lazily on first access.
type Statement struct {
	raw     map[string]any
	owner   *graph.Resource // implicit principal when Principal is absent; nil for resource-based statements carrying an explicit Principal
	account string
	resources *graph.ResourceSet

	effect graph.Effect

	droppedNotPrincipal bool

	principalsResolved bool
	principals         []graph.Node

	actionsResolved bool
	actions         []string

	resourcesResolved  bool
	resourceNodes      []*graph.Resource
	resourceConditions map[string][]graph.ConditionVariant

	explicitCondition graph.ConditionVariant

	resolved    bool
	resolvedSet []graph.ActionEdge
}

// NewStatement validates a raw statement against the invariants in
// spec §3 — exactly one of Principal/NotPrincipal (absent permitted
// when owner is non-nil),
// exactly one of Action/NotAction (required), exactly one of
// Resource/NotResource (absent permitted when owner is non-nil) — and
// returns a *Statement ready for lazy resolution, or a
// trace.BadParameter describing the violation. Callers (Document) log
// the error and drop the statement, continuing with the rest of the
// document (spec §7 rule 1).
func NewStatement(raw map[string]any, owner *graph.Resource, account string, resources *graph.ResourceSet) (*Statement, error) {
	if raw == nil {
		return nil, trace.BadParameter("malformed statement: nil")
	}

	hasPrincipal := has(raw, "Principal")
	hasNotPrincipal := has(raw, "NotPrincipal")
	if hasPrincipal && hasNotPrincipal {
		return nil, trace.BadParameter("malformed statement: both Principal and NotPrincipal present")
	}
	if !hasPrincipal && !hasNotPrincipal && owner == nil {
		return nil, trace.BadParameter("malformed statement: missing Principal and no owning resource")
	}

	hasAction := has(raw, "Action")
	hasNotAction := has(raw, "NotAction")
	if hasAction == hasNotAction {
		return nil, trace.BadParameter("malformed statement: exactly one of Action/NotAction is required")
	}

	hasResource := has(raw, "Resource")
	hasNotResource := has(raw, "NotResource")
	if hasResource && hasNotResource {
		return nil, trace.BadParameter("malformed statement: both Resource and NotResource present")
	}
	if !hasResource && !hasNotResource && owner == nil {
		return nil, trace.BadParameter("malformed statement: missing Resource and no owning resource")
	}

	effectRaw, _ := raw["Effect"].(string)
	if effectRaw != string(graph.EffectAllow) && effectRaw != string(graph.EffectDeny) {
		return nil, trace.BadParameter("malformed statement: invalid or missing Effect %q", effectRaw)
	}

	s := &Statement{
		raw:       raw,
		owner:     owner,
		account:   account,
		resources: resources,
		effect:    graph.Effect(effectRaw),
	}

	if hasNotPrincipal {
		slog.Warn("dropping statement with NotPrincipal: unsupported principal-exclusion semantics")
		s.droppedNotPrincipal = true
		s.principalsResolved = true
		s.principals = nil
	}

	s.explicitCondition = parseCondition(raw["Condition"])

	return s, nil
}

func has(raw map[string]any, key string) bool {
	_, ok := raw[key]
	return ok
}

func parseCondition(v any) graph.ConditionVariant {
	out := graph.ConditionVariant{}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for op, inner := range m {
		innerMap, ok := inner.(map[string]any)
		if !ok {
			continue
		}
		kv := make(map[string]string, len(innerMap))
		for k, val := range innerMap {
			kv[k] = stringify(val)
		}
		out[op] = kv
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return stringify(t[0])
		}
		return ""
	default:
		return ""
	}
}

// Principals returns the statement's resolved principal set. It is
// memoized on first call (spec §4.2, Design Note 2).
func (s *Statement) Principals() []graph.Node {
	if !s.principalsResolved {
		s.resolvePrincipals()
	}
	return s.principals
}

// Actions returns the statement's resolved, catalog-intersected action
// names, sorted for determinism.
func (s *Statement) Actions() []string {
	if !s.actionsResolved {
		s.resolveActions()
	}
	return s.actions
}

// Resources returns the arns of the statement's resolved resource set.
func (s *Statement) Resources() []string {
	if !s.resourcesResolved {
		s.resolveResources()
	}
	arns := make([]string, len(s.resourceNodes))
	for i, r := range s.resourceNodes {
		arns[i] = r.Arn
	}
	return arns
}

// Resolve computes the statement's full set of ActionEdges: the cross
// product of principals, catalog-affected resources, and actions,
// carrying the merged per-resource and explicit condition variants
// (spec §4.2, "resolve() output"). It is memoized: repeated calls
// return the identical, already-computed slice (P1).
func (s *Statement) Resolve() []graph.ActionEdge {
	if s.resolved {
		return s.resolvedSet
	}

	actions := s.Actions()
	_ = s.Resources() // ensure resourceNodes/resourceConditions are populated
	principals := s.Principals()

	out := make([]graph.ActionEdge, 0)

	for _, action := range actions {
		def, ok := catalog.Actions[action]
		if !ok {
			continue // catalog miss: silently ignored, spec §7 rule 3
		}

		for _, resource := range s.resourceNodes {
			if !def.DeclaresAffect(resourceLabel(resource, def.Affects)) {
				continue
			}

			variants := s.resourceConditions[resource.Arn]
			if len(variants) == 0 {
				variants = []graph.ConditionVariant{{}}
			}
			merged := make([]graph.ConditionVariant, len(variants))
			for i, v := range variants {
				merged[i] = v.Merge(s.explicitCondition)
			}

			for _, principal := range principals {
				out = append(out, graph.ActionEdge{
					Source:      principal,
					Target:      resource,
					Name:        action,
					Effect:      s.effect,
					Access:      def.Access,
					Description: def.Description,
					Reference:   def.Reference,
					Condition:   merged,
				})
			}
		}
	}

	s.resolved = true
	s.resolvedSet = out
	return out
}

// resourceLabel returns the first label on resource that appears in
// affects, or "" if none match — used only to look up DeclaresAffect
// with the resource's own concrete type rather than iterating Affects
// against every label.
func resourceLabel(resource *graph.Resource, affects []string) string {
	for _, label := range resource.Labels {
		for _, affect := range affects {
			if label == affect {
				return label
			}
		}
	}
	return ""
}

func (s *Statement) resolveActions() {
	defer func() { s.actionsResolved = true }()

	key := "Action"
	raw, ok := s.raw["Action"]
	if !ok {
		key = "NotAction"
		raw = s.raw["NotAction"]
	}

	list := toStringList(raw)
	hasStar := sliceContains(list, "*")

	matched := map[string]bool{}
	for _, a := range list {
		if a == "*" {
			continue
		}
		if strings.Contains(a, "*") {
			re, err := globToRegexp(a)
			if err != nil {
				continue
			}
			for name := range catalog.Actions {
				if re.MatchString(name) {
					matched[name] = true
				}
			}
			continue
		}
		if _, ok := catalog.Actions[a]; ok {
			matched[a] = true
		}
	}

	var actions []string
	switch {
	case hasStar && key == "Action":
		actions = allCatalogActions()
	case hasStar:
		actions = nil
	case key == "NotAction":
		actions = complementOf(matched)
	default:
		actions = sortedKeys(matched)
	}

	s.actions = actions
}

func globToRegexp(pattern string) (*regexp.Regexp, error) {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, ".*")
	return regexp.Compile("^" + escaped + "$")
}

func allCatalogActions() []string {
	out := make([]string, 0, len(catalog.Actions))
	for name := range catalog.Actions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func complementOf(matched map[string]bool) []string {
	out := make([]string, 0, len(catalog.Actions))
	for name := range catalog.Actions {
		if !matched[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func toStringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func sliceContains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
