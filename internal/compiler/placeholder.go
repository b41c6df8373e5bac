package compiler

import (
	"fmt"
	"regexp"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

var commandPlaceholderPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// trailingFieldPattern recognizes the ".Field" immediately following a
// closing brace, e.g. the ".Arn" in "${AWS::Iam::Role}.Arn" — the
// field name lives outside the braces, so it is found by peeking ahead
// rather than by widening the placeholder match itself. When the
// placeholder is bound, the ".Field" suffix is replaced together with
// the ${...} span.
var trailingFieldPattern = regexp.MustCompile(`^\.([A-Za-z0-9_]+)`)

// ResolveCommand substitutes every ${AWS::Svc::Kind}[.Field]
// placeholder in template against bindings (the pattern's bound
// nodes, keyed by placeholder name), re-quoting each argument that
// received a bound value so a value containing spaces or shell
// metacharacters round-trips as a single safe shell token. Arguments
// with nothing substituted, unbound placeholders included, are emitted
// as written.
func ResolveCommand(template string, bindings map[string]graph.Node) (string, error) {
	args, err := shellquote.Split(template)
	if err != nil {
		return "", fmt.Errorf("split command template: %w", err)
	}
	for i, a := range args {
		if s := substitute(a, bindings); s != a {
			args[i] = shellquote.Join(s)
		}
	}
	return strings.Join(args, " "), nil
}

func substitute(arg string, bindings map[string]graph.Node) string {
	matches := commandPlaceholderPattern.FindAllStringSubmatchIndex(arg, -1)
	if matches == nil {
		return arg
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end, keyStart, keyEnd := m[0], m[1], m[2], m[3]
		b.WriteString(arg[last:start])
		key := arg[keyStart:keyEnd]
		node, ok := bindings[key]
		switch {
		case !ok || node == nil:
			b.WriteString(arg[start:end])
		case trailingField(arg[end:]) != "":
			field := trailingField(arg[end:])
			b.WriteString(resolveField(node, field))
			end += len(field) + 1
		default:
			b.WriteString(node.NodeName())
		}
		last = end
	}
	b.WriteString(arg[last:])
	return b.String()
}

func trailingField(s string) string {
	m := trailingFieldPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

func resolveField(node graph.Node, field string) string {
	switch field {
	case "Arn":
		return node.NodeArn()
	case "Name":
		return node.NodeName()
	}
	if r, ok := node.(*graph.Resource); ok {
		if v, ok := r.Properties[field]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
