package policy

import (
	"sort"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

// PrincipalSummary is the set of actions a single principal was
// resolved to hold against each resource it can reach, grouped for
// human inspection before the fixpoint search runs.
type PrincipalSummary struct {
	PrincipalArn string
	Resources    map[string]*ResourceActions
}

// ResourceActions lists the distinct action names a principal may
// invoke against one resource arn, along with whether any of them
// carry a condition.
type ResourceActions struct {
	ResourceArn  string
	Actions      []string
	HasCondition bool
}

// Summarize aggregates resolved ActionEdges into a per-principal,
// per-resource view: principal arn -> resource arn -> allowed action
// names. It performs no persistence. Deny edges and edges without a
// source or target are left out, and an action name appears once per
// resource however many edges carry it. It exists purely so an operator
// can inspect what the Policy Resolver computed before the Fixpoint
// Driver consumes the same edges; no command of the CLI calls it.
func Summarize(edges []graph.ActionEdge) map[string]*PrincipalSummary {
	out := map[string]*PrincipalSummary{}

	for _, e := range edges {
		if e.Effect != graph.EffectAllow || e.Source == nil || e.Target == nil {
			continue
		}

		srcArn := e.Source.NodeArn()
		dstArn := e.Target.NodeArn()

		ps, ok := out[srcArn]
		if !ok {
			ps = &PrincipalSummary{PrincipalArn: srcArn, Resources: map[string]*ResourceActions{}}
			out[srcArn] = ps
		}

		ra, ok := ps.Resources[dstArn]
		if !ok {
			ra = &ResourceActions{ResourceArn: dstArn}
			ps.Resources[dstArn] = ra
		}

		if !sliceContains(ra.Actions, e.Name) {
			ra.Actions = append(ra.Actions, e.Name)
		}
		if e.HasCondition() {
			ra.HasCondition = true
		}
	}

	for _, ps := range out {
		for _, ra := range ps.Resources {
			sort.Strings(ra.Actions)
		}
	}
	return out
}
