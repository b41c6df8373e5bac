package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AkshayJainG/awspx-go/internal/attack"
	"github.com/AkshayJainG/awspx-go/internal/graph"
)

// hopsPathVar names the variable-length path bound by
// withPrincipalActionMatch between source and the intermediary it
// ultimately holds the required actions through; withAdminExclusion
// walks this same path to reject admin-adjacent intermediaries.
const hopsPathVar = "hopsPath"

// varFor returns the pipeline's placeholder-name -> query-variable
// naming function for t: the empty placeholder and the template's own
// Affects/Depends/Grants types get fixed, well-known variable names so
// every stage and the command-resolution pass agree on what each bound
// node is called; anything else gets a stable, sanitized name derived
// from the placeholder text.
func varFor(t attack.Template) func(string) string {
	return func(placeholder string) string {
		switch placeholder {
		case "":
			return "source"
		case t.Affects:
			return "target"
		case t.Depends:
			if t.Depends != "" {
				return "dependency"
			}
		case t.Grants:
			if t.GrantsIsResourceType {
				return "grants"
			}
		}
		return sanitizeVar(placeholder)
	}
}

func sanitizeVar(placeholder string) string {
	out := make([]rune, 0, len(placeholder))
	for _, r := range placeholder {
		if r == ':' || r == ' ' {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return "n"
	}
	return "n_" + string(out)
}

// withPrincipalActionMatch is stage 1: it binds source, then a
// variable-length TRANSITIVE|ATTACK path of 0..MaxSearchDepth hops to
// an intermediary, then matches every action in t.Requires against the
// edge from that same intermediary to target. At depth 0 the
// intermediary is source itself, so a single-action template with no
// chain to traverse degenerates to a direct source-target match; at
// greater depth, ATTACK edges materialized by an earlier fixpoint
// iteration become traversable input, which is how a chain of patterns
// compounds across iterations (spec §5).
func withPrincipalActionMatch(q *Query, t attack.Template, cfg Config) {
	source := NodePattern{Var: "source"}
	intermediary := NodePattern{Var: "intermediary"}
	hops := RelPattern{Types: []string{"TRANSITIVE", "ATTACK"}, MinHops: intPtr(0), MaxHops: intPtr(cfg.MaxSearchDepth)}
	q.Matches = append(q.Matches, MatchClause{
		PathVar: hopsPathVar,
		Pattern: NewPattern(source, Hop{Rel: hops, Node: intermediary}),
	})

	target := NodePattern{Var: "target"}
	for i, action := range t.Requires {
		actionVar := fmt.Sprintf("action%d", i)
		rel := RelPattern{Var: actionVar, Types: []string{"ACTION"}}
		q.Matches = append(q.Matches, MatchClause{Pattern: NewPattern(intermediary, Hop{Rel: rel, Node: target})})
		q.Wheres = append(q.Wheres, WhereClause{Expr: actionVar + ".Name = '" + action + "'"})
		q.Wheres = append(q.Wheres, WhereClause{Expr: actionVar + ".Effect = '" + string(graph.EffectAllow) + "'"})
		if cfg.IgnoreActionsWithConditions {
			q.Wheres = append(q.Wheres, WhereClause{Expr: actionVar + ".Condition = '[]'"})
		}
	}
}

// withAdminExclusion is stage 2: a source already Admin-labeled, or one
// within two ATTACK hops of an Admin node (directly or through an
// Admin-granting Pattern), contributes nothing a new pattern needs to
// re-derive, so it is excluded outright; every true interior node of
// the stage-1 traversal (everything but the final intermediary) is held
// to the same standard, which is what keeps an admin-through-admin
// chain from ever being reported (P7).
func withAdminExclusion(q *Query, t attack.Template, cfg Config) {
	admin := graph.AdminLabel
	q.Wheres = append(q.Wheres, WhereClause{Expr: "NOT source:" + admin})
	q.Wheres = append(q.Wheres, WhereClause{Expr: "NOT EXISTS { (source)-[:ATTACK*0..2]->(:" + admin + ") }"})
	q.Wheres = append(q.Wheres, WhereClause{Expr: "NOT EXISTS { (source)-[:ATTACK]->(:Pattern)-[:ATTACK{Admin:true}]->() }"})
	q.Wheres = append(q.Wheres, WhereClause{Expr: "NONE(x IN NODES(" + hopsPathVar + ")[0..-1] WHERE x:" + admin +
		" OR EXISTS { (x)-[:ATTACK*0..2]->(:" + admin + ") })"})
}

// withDependency is stage 3: templates with a non-empty Depends
// require a second node of that type actually reachable from source —
// through 0..MaxSearchDepth TRANSITIVE/ATTACK/CREATE edges — rather
// than merely present anywhere in the graph, so an attacker who cannot
// reach the dependency at all cannot satisfy it. When Depends names the
// same type as Affects and the template grants no resource type (e.g.
// CreatePolicyVersion, which simply needs its own target policy to
// already exist), the dependency collapses into target itself rather
// than binding a second, unrelated node.
func withDependency(q *Query, t attack.Template, cfg Config) {
	if t.Depends == "" || (t.Depends == t.Affects && !t.GrantsIsResourceType) {
		return
	}
	dependency := NodePattern{Var: "dependency", Labels: []string{t.Depends}}
	rel := RelPattern{Types: []string{"TRANSITIVE", "ATTACK", "CREATE"}, MinHops: intPtr(0), MaxHops: intPtr(cfg.MaxSearchDepth)}
	q.Matches = append(q.Matches, MatchClause{Pattern: NewPattern(NodePattern{Var: "source"}, Hop{Rel: rel, Node: dependency})})
	q.Wheres = append(q.Wheres, WhereClause{Expr: "source <> dependency"})
}

// withGrantExpansion is stage 4: it parses every placeholder-annotated
// path expression in t.Cypher into a Pattern and adds it as its own
// MATCH clause, re-using the source/target/dependency/grants variable
// names so the new clause constrains the already-bound nodes rather
// than introducing unrelated ones.
func withGrantExpansion(q *Query, t attack.Template, cfg Config) {
	resolve := varFor(t)
	for _, line := range t.Cypher {
		pattern, ok := parseCypherLine(line, resolve)
		if !ok {
			continue
		}
		q.Matches = append(q.Matches, MatchClause{Pattern: pattern})
	}
}

// withExtraConstraints is stage 5: boolean expressions that are not
// shaped as graph patterns (property comparisons, list-size checks)
// are substituted with the same variable names and appended to WHERE.
func withExtraConstraints(q *Query, t attack.Template, cfg Config) {
	resolve := varFor(t)
	for _, expr := range t.ExtraConstraints {
		q.Wheres = append(q.Wheres, WhereClause{Expr: commandPlaceholderPattern.ReplaceAllStringFunc(expr, func(m string) string {
			inner := commandPlaceholderPattern.FindStringSubmatch(m)[1]
			return resolve(inner)
		})})
	}
}

// withSourcePruning is stage 6: drops the degenerate case where target
// and source coincide (a principal "attacking" itself contributes no
// new reachability).
func withSourcePruning(q *Query, t attack.Template, cfg Config) {
	q.Wheres = append(q.Wheres, WhereClause{Expr: "source <> target"})
}

// withTargetWidening is stage 7: a CreateAction template only ever
// targets its own Affects type (the node doesn't need to exist yet at
// all). Every other template normally requires an existing target of
// that type, but also admits a not-yet-created Generic one, provided
// it is reachable from source through a prior Pattern's CREATE edge —
// the attacker could simply create it first and then run this pattern
// against it. When that path exists, its own Commands feed into the
// weight this pattern records (stage 8), since reaching the Generic
// target cost something too.
func withTargetWidening(q *Query, t attack.Template, cfg Config) {
	targetType := "target:" + backtick(t.Affects)
	if t.CreateAction {
		q.Wheres = append(q.Wheres, WhereClause{Expr: targetType})
		return
	}

	hops := RelPattern{Types: []string{"TRANSITIVE", "ATTACK"}, MinHops: intPtr(0), MaxHops: intPtr(cfg.MaxSearchDepth)}
	creator := RelPattern{Var: "creatorEdge", Types: []string{"CREATE"}}
	q.Matches = append(q.Matches, MatchClause{
		Optional: true,
		Pattern: NewPattern(
			NodePattern{Var: "source"},
			Hop{Rel: hops, Node: NodePattern{}},
			Hop{Rel: creator, Node: NodePattern{Var: "target"}},
		),
	})
	q.Wheres = append(q.Wheres, WhereClause{Expr: "(" + targetType + " OR (target:Generic AND creatorEdge IS NOT NULL))"})
}

// withWeightMin is stage 8: records the template's command-count
// weight, plus the cost of any CREATE path stage 7 admitted the target
// through, as a bound query value so materialization can write it onto
// the ATTACK/CREATE and OPTION edges the fixpoint driver later
// minimizes over (P6).
func withWeightMin(q *Query, t attack.Template, cfg Config) {
	expr := strconv.Itoa(t.Weight())
	if !t.CreateAction {
		expr += " + CASE WHEN creatorEdge IS NOT NULL THEN SIZE(creatorEdge.Commands) ELSE 0 END"
	}
	q.Withs = append(q.Withs, WithClause{Items: append(boundVars(q), expr+" AS weight")})
}

func boundVars(q *Query) []string {
	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}
	for _, m := range q.Matches {
		for _, n := range m.Pattern.Nodes {
			add(n.Var)
		}
		for _, r := range m.Pattern.Rels {
			add(r.Var)
		}
	}
	return out
}

// withCommandResolution is stage 9: it validates that every
// ${AWS::Svc::Kind}[.Field] placeholder in t.Commands resolves to a
// variable this query actually binds, so a malformed template fails at
// compile time rather than at materialization, then renders the
// resolved form of Commands as a Cypher list expression — nested
// REPLACE() calls substituting each placeholder with the bound node's
// property, exactly as Neo4j evaluates it against the grant the MERGE
// in stage 10 is about to create. A free-form placeholder (e.g.
// ${new-password}) names no node and is left for the operator to fill
// in, untouched.
func withCommandResolution(q *Query, t attack.Template, cfg Config) (string, error) {
	resolve := varFor(t)
	bound := map[string]bool{}
	for _, v := range boundVars(q) {
		bound[v] = true
	}

	parts := make([]string, 0, len(t.Commands))
	for _, cmd := range t.Commands {
		expr := "'" + cypherEscape(cmd) + "'"
		for _, m := range commandPlaceholderPattern.FindAllStringSubmatchIndex(cmd, -1) {
			start, end, keyStart, keyEnd := m[0], m[1], m[2], m[3]
			key := cmd[keyStart:keyEnd]
			if !isTypedPlaceholder(key) {
				continue
			}
			v := resolve(key)
			if !bound[v] {
				return "", fmt.Errorf("template %s: command references unbound placeholder %q", t.Name, key)
			}
			whole := cmd[start:end]
			prop := trailingField(cmd[end:])
			if prop == "" {
				prop = "Name"
			} else {
				whole += "." + prop
			}
			expr = "REPLACE(" + expr + ", '" + cypherEscape(whole) + "', toString(" + v + "." + prop + "))"
		}
		parts = append(parts, expr)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// isTypedPlaceholder reports whether key names an AWS::Svc::Kind node
// reference rather than a free-form operator-supplied value.
func isTypedPlaceholder(key string) bool {
	return key == "" || strings.Contains(key, "::")
}

// withMaterialization is stage 10: it MERGEs the ATTACK edge from
// source to a synthesized Pattern:<Name> node (carrying Requires and
// Depends, per the graph-DB data model's Pattern node), then the
// capability or resource-type grant the pattern confers — an
// ATTACK/CREATE edge from that Pattern to either target itself or, for
// templates whose Grants names a resource type, the separately-bound
// "grants" node — and finally, when the pattern has a dependency
// distinct from what it grants, the OPTION edge recording the
// dependency's own command weight. commandsExpr is stage 9's rendered
// Cypher Commands expression, shared by the grant and option edges
// since both represent the same resolved command chain.
func withMaterialization(q *Query, t attack.Template, cfg Config, commandsExpr string) {
	patternVar := "pattern"

	attackRel := RelPattern{Var: "attack", Types: []string{"ATTACK"}, Props: map[string]string{"Name": "'" + t.Name + "'"}}
	patternNode := NodePattern{Var: patternVar, Labels: []string{"Pattern", t.Name}}
	q.Merges = append(q.Merges, MergeClause{
		Pattern: NewPattern(NodePattern{Var: "source"}, Hop{Rel: attackRel, Node: patternNode}),
		OnCreateSet: map[string]string{
			"Requires": requiresLiteral(t.Requires),
			"Depends":  "'" + cypherEscape(t.Depends) + "'",
		},
	})

	grantVar := "target"
	if t.GrantsIsResourceType {
		grantVar = "grants"
	}
	grantLabel := t.GrantLabel
	if grantLabel == "" {
		grantLabel = "Create"
	}
	grantRel := RelPattern{
		Var:   "grant",
		Types: []string{materializedEdgeType(t)},
		Props: map[string]string{
			"Name":        "'" + grantLabel + "'",
			"Admin":       boolLiteral(t.AdminOption),
			"Description": "'" + cypherEscape(t.Description) + "'",
			"Commands":    commandsExpr,
			"Weight":      "weight",
		},
	}
	q.Merges = append(q.Merges, MergeClause{
		Pattern: NewPattern(NodePattern{Var: patternVar}, Hop{Rel: grantRel, Node: NodePattern{Var: grantVar}}),
	})

	hasOption := t.Depends != "" && (t.Depends != t.Affects || t.GrantsIsResourceType)
	if hasOption {
		optionRel := RelPattern{
			Var:   "option",
			Types: []string{"OPTION"},
			Props: map[string]string{
				"Weight":   "weight",
				"Commands": commandsExpr,
			},
		}
		q.Merges = append(q.Merges, MergeClause{
			Pattern: NewPattern(NodePattern{Var: patternVar}, Hop{Rel: optionRel, Node: NodePattern{Var: "dependency"}}),
		})
	}

	items := boundVars(q)
	items = append(items, "attack", patternVar, "grant")
	if hasOption {
		items = append(items, "option")
	}
	items = append(items, "weight")
	q.Return = &ReturnClause{Items: items}
}

func requiresLiteral(requires []string) string {
	quoted := make([]string, len(requires))
	for i, r := range requires {
		quoted[i] = "'" + cypherEscape(r) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func cypherEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func materializedEdgeType(t attack.Template) string {
	if t.CreateAction {
		return "CREATE"
	}
	return "ATTACK"
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func intPtr(n int) *int { return &n }
