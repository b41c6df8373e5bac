package compiler

import (
	"sort"
	"strconv"
	"strings"
)

// String renders the full query as Cypher text. This is the only
// function in the package that builds query text from parts; every
// other stage edits the Query value, never a string.
func (q *Query) String() string {
	var b strings.Builder

	for _, m := range q.Matches {
		prefix := matchKeyword(m.Optional) + " "
		if m.PathVar != "" {
			prefix += m.PathVar + " = "
		}
		writeLine(&b, prefix+m.Pattern.String())
	}
	if len(q.Wheres) > 0 {
		exprs := make([]string, len(q.Wheres))
		for i, w := range q.Wheres {
			exprs[i] = "(" + w.Expr + ")"
		}
		writeLine(&b, "WHERE "+strings.Join(exprs, " AND "))
	}
	for _, u := range q.Unwinds {
		writeLine(&b, "UNWIND "+u.Expr+" AS "+u.As)
	}
	for _, w := range q.Withs {
		writeLine(&b, "WITH "+strings.Join(w.Items, ", "))
	}
	for _, m := range q.Merges {
		writeLine(&b, "MERGE "+m.Pattern.String())
		if len(m.OnCreateSet) > 0 {
			writeLine(&b, "ON CREATE SET "+renderSetItems(m.Pattern.lastVar(), m.OnCreateSet))
		}
	}
	if q.Return != nil {
		writeLine(&b, "RETURN "+strings.Join(q.Return.Items, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeLine(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteString("\n")
}

func matchKeyword(optional bool) string {
	if optional {
		return "OPTIONAL MATCH"
	}
	return "MATCH"
}

func renderSetItems(v string, items map[string]string) string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, v+"."+k+" = "+items[k])
	}
	return strings.Join(parts, ", ")
}

func (p Pattern) lastVar() string {
	if len(p.Nodes) == 0 {
		return ""
	}
	return p.Nodes[len(p.Nodes)-1].Var
}

// String renders a full path pattern: node, then (rel, node) pairs.
func (p Pattern) String() string {
	var b strings.Builder
	b.WriteString(p.Nodes[0].String())
	for i, rel := range p.Rels {
		b.WriteString(rel.String())
		b.WriteString(p.Nodes[i+1].String())
	}
	return b.String()
}

// String renders (var:Label1:Label2 {k: v, ...}).
func (n NodePattern) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Var)
	for _, l := range n.Labels {
		b.WriteByte(':')
		b.WriteString(backtick(l))
	}
	if len(n.Props) > 0 {
		b.WriteByte('{')
		b.WriteString(renderProps(n.Props))
		b.WriteByte('}')
	}
	b.WriteByte(')')
	return b.String()
}

// String renders -[var:Type1|Type2*min..max {props}]-> or, when
// Reverse, <-[...]-.
func (r RelPattern) String() string {
	var b strings.Builder
	if r.Reverse {
		b.WriteString("<-[")
	} else {
		b.WriteString("-[")
	}
	b.WriteString(r.Var)
	if len(r.Types) > 0 {
		b.WriteByte(':')
		b.WriteString(strings.Join(r.Types, "|"))
	}
	if r.MinHops != nil || r.MaxHops != nil {
		b.WriteByte('*')
		if r.MinHops != nil {
			b.WriteString(strconv.Itoa(*r.MinHops))
		}
		b.WriteString("..")
		if r.MaxHops != nil {
			b.WriteString(strconv.Itoa(*r.MaxHops))
		}
	}
	if len(r.Props) > 0 {
		b.WriteByte('{')
		b.WriteString(renderProps(r.Props))
		b.WriteByte('}')
	}
	b.WriteByte(']')
	if r.Reverse {
		b.WriteString("-")
	} else {
		b.WriteString("->")
	}
	return b.String()
}

func renderProps(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+props[k])
	}
	return strings.Join(parts, ", ")
}

func backtick(label string) string {
	if strings.Contains(label, ":") || strings.Contains(label, " ") {
		return "`" + label + "`"
	}
	return label
}
