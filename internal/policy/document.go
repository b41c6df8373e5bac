package policy

import (
	"log/slog"

	"github.com/gravitational/trace"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

// Document is a parsed IAM policy document: a Version plus an ordered
// list of successfully validated Statements. Statements that fail
// NewStatement's invariant checks are logged and dropped rather than
// aborting the whole document (spec §7 rule 1).
type Document struct {
	Version    string
	Statements []*Statement
}

// NewDocument parses raw (already JSON-decoded into Go values) into a
// Document. owner is the resource the document is attached to —
// non-nil for identity-based policies and bucket default-owner
// statements, nil for bare resource-based policies whose statements
// always carry an explicit Principal. A Version other than "2012-10-17"
// is rejected with a trace.BadParameter.
func NewDocument(raw map[string]any, owner *graph.Resource, account string, resources *graph.ResourceSet) (*Document, error) {
	version, _ := raw["Version"].(string)
	if version != "2012-10-17" {
		return nil, trace.BadParameter("policy document: unsupported Version %q", version)
	}

	rawStatements, err := asStatementList(raw["Statement"])
	if err != nil {
		return nil, trace.Wrap(err, "policy document")
	}

	doc := &Document{Version: version}
	for i, rs := range rawStatements {
		stmt, err := NewStatement(rs, owner, account, resources)
		if err != nil {
			slog.Warn("dropping malformed statement", "index", i, "error", err)
			continue
		}
		doc.Statements = append(doc.Statements, stmt)
	}
	return doc, nil
}

func asStatementList(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, trace.BadParameter("malformed Statement entry: not an object")
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, trace.BadParameter("malformed or missing Statement")
	}
}

// Resolve concatenates every statement's Resolve() output, in
// statement order.
func (d *Document) Resolve() []graph.ActionEdge {
	out := make([]graph.ActionEdge, 0)
	for _, s := range d.Statements {
		out = append(out, s.Resolve()...)
	}
	return out
}

// GetStatementBySid returns the statement carrying the given Sid, if
// any (mirrors the convenience lookup the original policy model
// offers for template-driven edits).
func (d *Document) GetStatementBySid(sid string) (*Statement, bool) {
	for _, s := range d.Statements {
		if v, _ := s.raw["Sid"].(string); v == sid {
			return s, true
		}
	}
	return nil, false
}
