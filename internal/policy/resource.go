package policy

import (
	"regexp"
	"strings"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

// resolveResources implements spec §4.2's resource-expansion rules:
// each listed resource pattern becomes a regex (wildcard segments as
// ".*", "${var}" placeholders as capture groups), matched against
// every resource the ResourceSet carries; a captured placeholder is
// recorded as a StringEquals condition variant scoped to that
// resource, so downstream ${aws:...}-style policy variables round-trip
// onto the emitted edge (P3).
func (s *Statement) resolveResources() {
	defer func() { s.resourcesResolved = true }()

	s.resourceConditions = map[string][]graph.ConditionVariant{}

	key := "Resource"
	raw, ok := s.raw[key]
	if !ok {
		key = "NotResource"
		raw, ok = s.raw[key]
	}

	if !ok {
		if s.owner != nil {
			s.resourceNodes = []*graph.Resource{s.owner}
		}
		return
	}

	list := toStringList(raw)
	hasStar := sliceContains(list, "*")

	switch {
	case hasStar && key == "Resource":
		s.resourceNodes = append([]*graph.Resource(nil), s.resources.All()...)
		return
	case hasStar:
		s.resourceNodes = nil
		return
	}

	if s.resources.Len() == 0 {
		return
	}

	matched := map[string]*graph.Resource{}
	for _, pattern := range list {
		s.matchResourcePattern(pattern, matched)
	}

	if key == "Resource" {
		out := make([]*graph.Resource, 0, len(matched))
		for _, r := range matched {
			out = append(out, r)
		}
		s.resourceNodes = out
		return
	}

	// NotResource: complement against every known resource.
	out := make([]*graph.Resource, 0)
	for _, r := range s.resources.All() {
		if _, ok := matched[r.Arn]; !ok {
			out = append(out, r)
		}
	}
	s.resourceNodes = out
}

func (s *Statement) matchResourcePattern(pattern string, matched map[string]*graph.Resource) {
	starExpanded := strings.ReplaceAll(pattern, "*", "(.*)")
	starGroups := strings.Count(starExpanded, "(")

	variables := variablePattern.FindAllString(starExpanded, -1)
	unique := dedupe(variables)

	finalPattern := starExpanded
	for _, v := range unique {
		finalPattern = strings.ReplaceAll(finalPattern, v, "(.*)")
	}

	re, err := regexp.Compile("^" + finalPattern + "$")
	if err != nil {
		return
	}

	for _, r := range s.resources.All() {
		m := re.FindStringSubmatch(r.Arn)
		if m == nil {
			continue
		}
		matched[r.Arn] = r

		if len(unique) == 0 {
			continue
		}

		variant := graph.ConditionVariant{"StringEquals": {}}
		for i, v := range unique {
			groupIdx := starGroups + i + 1
			if groupIdx >= len(m) {
				continue
			}
			variant["StringEquals"][v] = m[groupIdx]
		}
		s.resourceConditions[r.Arn] = append(s.resourceConditions[r.Arn], variant)
	}
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
