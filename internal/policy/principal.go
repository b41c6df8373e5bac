package policy

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/AkshayJainG/awspx-go/internal/catalog"
	"github.com/AkshayJainG/awspx-go/internal/graph"
)

// externalNamespace seeds deterministic arns for External principals that
// have no arn of their own (a federated domain, a SAML provider referenced
// by friendly name). Deriving the key from the entry's own text, rather
// than a random uuid, keeps repeated resolutions of the same entry
// correlating to the same graph node.
var externalNamespace = uuid.MustParse("a8f2f1d4-6f0a-4f2b-9e9c-9d9a4f0c9b9e")

func syntheticArn(kind, entry string) string {
	return "urn:awspx:external:" + kind + ":" + uuid.NewSHA1(externalNamespace, []byte(entry)).String()
}

// resolvePrincipals implements spec §4.2's principal-expansion rules.
// NotPrincipal statements are handled at construction time (the
// statement is logged and dropped, principals memoized to nil); this
// method only ever runs for statements carrying an explicit or
// implicit Principal.
func (s *Statement) resolvePrincipals() {
	defer func() { s.principalsResolved = true }()

	if s.droppedNotPrincipal {
		return
	}

	raw, ok := s.raw["Principal"]
	if !ok {
		if s.owner != nil {
			s.principals = []graph.Node{s.owner}
		}
		return
	}

	if str, ok := raw.(string); ok {
		if str == "*" {
			s.principals = s.everyone()
			return
		}
		slog.Warn("dropping statement with unrecognized string Principal", "principal", str)
		return
	}

	m, ok := raw.(map[string]any)
	if !ok {
		slog.Warn("dropping statement with malformed Principal")
		return
	}

	var out []graph.Node
	for kind, v := range m {
		switch kind {
		case "AWS":
			out = append(out, s.resolveAWSPrincipals(toStringList(v))...)
		case "Federated":
			out = append(out, s.resolveFederatedPrincipals(toStringList(v))...)
		case "CanonicalUser":
			out = append(out, s.resolveCanonicalUserPrincipals(toStringList(v))...)
		case "Service":
			slog.Debug("ignoring Service principal", "service", v)
		default:
			slog.Warn("ignoring unrecognized Principal kind", "kind", kind)
		}
	}
	s.principals = out
}

// everyone expands a bare "*" or {"AWS":"*"} principal to every
// identity capable of presenting credentials: every known User and
// Role, plus a synthetic External node standing for unauthenticated or
// out-of-account callers.
func (s *Statement) everyone() []graph.Node {
	var out []graph.Node
	for _, r := range s.resources.OfType("AWS::Iam::User") {
		out = append(out, r)
	}
	for _, r := range s.resources.OfType("AWS::Iam::Role") {
		out = append(out, r)
	}
	arn := "*"
	if s.account != "" {
		arn = "arn:aws:iam::" + s.account + ":root"
	}
	out = append(out, graph.NewExternal("*", arn, []string{"AWS::Account"}))
	return out
}

func (s *Statement) resolveAWSPrincipals(entries []string) []graph.Node {
	var out []graph.Node
	for _, entry := range entries {
		if entry == "*" {
			out = append(out, s.everyone()...)
			continue
		}

		arn := entry
		if accountPattern.MatchString(entry) {
			arn = "arn:aws:iam::" + entry + ":root"
		}

		if r, ok := s.resources.ByArn(arn); ok {
			out = append(out, r)
			continue
		}

		labels := []string{"AWS::Account"}
		if typ, ok := catalog.ClassifyArn(arn); ok {
			labels = []string{typ}
		}
		out = append(out, graph.NewExternal(arn, arn, labels))
	}
	return out
}

func (s *Statement) resolveFederatedPrincipals(entries []string) []graph.Node {
	var out []graph.Node
	for _, entry := range entries {
		if r, ok := s.resources.ByArn(entry); ok {
			out = append(out, r)
			continue
		}
		if domainPattern.MatchString(entry) && !strings.HasPrefix(entry, "arn:") {
			out = append(out, graph.NewExternal(entry, syntheticArn("federated-domain", entry), []string{"Internet::Domain"}))
			continue
		}
		out = append(out, graph.NewExternal(entry, entry, []string{"AWS::Iam::SamlProvider"}))
	}
	return out
}

func (s *Statement) resolveCanonicalUserPrincipals(entries []string) []graph.Node {
	var out []graph.Node
	for _, entry := range entries {
		e := graph.NewExternal(entry, syntheticArn("canonical-user", entry), []string{"AWS::Account"})
		e.CanonicalUser = entry
		out = append(out, e)
	}
	return out
}
