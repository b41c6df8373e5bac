package compiler

import (
	"github.com/gravitational/trace"

	"github.com/AkshayJainG/awspx-go/internal/attack"
)

// Compile runs t through the ten-stage pipeline in order and returns
// the resulting query's AST. Each stage only adds to, or edits, the
// Query value threaded through it; stringify.go is the single place
// that turns the finished AST into Cypher text.
func Compile(t attack.Template, cfg Config) (*Query, error) {
	q := &Query{}

	withPrincipalActionMatch(q, t, cfg)
	withAdminExclusion(q, t, cfg)
	withDependency(q, t, cfg)
	withGrantExpansion(q, t, cfg)
	withExtraConstraints(q, t, cfg)
	withSourcePruning(q, t, cfg)
	withTargetWidening(q, t, cfg)
	withWeightMin(q, t, cfg)
	commandsExpr, err := withCommandResolution(q, t, cfg)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	withMaterialization(q, t, cfg, commandsExpr)

	return q, nil
}
