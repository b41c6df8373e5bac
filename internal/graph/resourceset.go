package graph

import "sort"

// ResourceSet is the immutable, arn-indexed table of every Resource
// known to the current analysis run — the "Resources collection" the
// Policy Resolver borrows to expand wildcard principals and resources. It is built once per run and handed to every Statement by
// read-only reference; no resolver ever owns or mutates it.
type ResourceSet struct {
	byArn     map[string]*Resource
	ordered   []*Resource
	externals []*External
}

// NewResourceSet indexes resources by arn in the order supplied,
// deterministically, so repeated resolution runs see the same
// iteration order (required for P1, Resolver determinism).
func NewResourceSet(resources []*Resource) *ResourceSet {
	rs := &ResourceSet{
		byArn:   make(map[string]*Resource, len(resources)),
		ordered: append([]*Resource(nil), resources...),
	}
	for _, r := range resources {
		if r.Arn != "" {
			rs.byArn[r.Arn] = r
		}
	}
	return rs
}

// ByArn returns the Resource with the given arn, or nil if unknown.
func (rs *ResourceSet) ByArn(arn string) (*Resource, bool) {
	r, ok := rs.byArn[arn]
	return r, ok
}

// All returns every resource in deterministic, stable order.
func (rs *ResourceSet) All() []*Resource {
	return rs.ordered
}

// OfType returns every resource carrying the given type label, sorted
// by arn for deterministic output.
func (rs *ResourceSet) OfType(label string) []*Resource {
	out := make([]*Resource, 0)
	for _, r := range rs.ordered {
		if r.HasLabel(label) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Arn < out[j].Arn })
	return out
}

// Len reports how many resources the set holds.
func (rs *ResourceSet) Len() int { return len(rs.ordered) }
