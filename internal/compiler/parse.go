package compiler

import (
	"regexp"
	"strconv"
	"strings"
)

var nodeTokenPattern = regexp.MustCompile(`\([^)]*\)`)
var relTokenPattern = regexp.MustCompile(`<?-\[[^\]]*\]-?>?`)
var tokenPattern = regexp.MustCompile(nodeTokenPattern.String() + `|` + relTokenPattern.String())
var placeholderPattern = regexp.MustCompile(`^\$\{([^}]*)\}$`)
var relBodyPattern = regexp.MustCompile(`^(<?)-\[:([A-Za-z_]+)(\*\.\.)?(\{[^}]*\})?\]-(>?)$`)
var relPropPattern = regexp.MustCompile(`([A-Za-z_]+)\s*:\s*'([^']*)'`)

// parseCypherLine turns one attack.Template.Cypher line — a
// placeholder-annotated path expression such as
// "(${X})-[:TRANSITIVE{Name:'Attached'}]->(${Y})" — into a Pattern
// whose node Vars are derived from the placeholders. An empty
// placeholder "${}" always binds to the pipeline's "source" variable;
// an anonymous node "()" gets a fresh, unbound variable.
func parseCypherLine(line string, varFor func(placeholder string) string) (Pattern, bool) {
	tokens := tokenPattern.FindAllString(line, -1)
	if len(tokens) == 0 || len(tokens)%2 == 0 {
		return Pattern{}, false
	}

	var p Pattern
	anon := 0

	parseNode := func(tok string) NodePattern {
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "("), ")")
		if inner == "" {
			anon++
			return NodePattern{Var: "anon" + strconv.Itoa(anon)}
		}
		m := placeholderPattern.FindStringSubmatch(inner)
		if m == nil {
			anon++
			return NodePattern{Var: "anon" + strconv.Itoa(anon)}
		}
		return NodePattern{Var: varFor(m[1])}
	}

	p.Nodes = append(p.Nodes, parseNode(tokens[0]))

	for i := 1; i < len(tokens); i += 2 {
		rel, ok := parseRel(tokens[i])
		if !ok {
			return Pattern{}, false
		}
		p.Rels = append(p.Rels, rel)
		p.Nodes = append(p.Nodes, parseNode(tokens[i+1]))
	}

	return p, true
}

func parseRel(tok string) (RelPattern, bool) {
	m := relBodyPattern.FindStringSubmatch(tok)
	if m == nil {
		return RelPattern{}, false
	}
	r := RelPattern{
		Types:   []string{m[2]},
		Reverse: m[1] == "<",
	}
	if m[3] != "" {
		zero := 0
		r.MinHops = &zero
	}
	if m[4] != "" {
		props := map[string]string{}
		for _, pm := range relPropPattern.FindAllStringSubmatch(m[4], -1) {
			props[pm[1]] = "'" + pm[2] + "'"
		}
		r.Props = props
	}
	return r, true
}
