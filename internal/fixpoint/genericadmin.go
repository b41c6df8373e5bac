package fixpoint

import (
	"context"

	"github.com/gravitational/trace"
)

// labelGenericPoliciesAdmin temporarily marks every Generic node of
// type AWS::Iam::Policy as Admin for the duration of the search, so
// CreatePolicyVersion-style templates that would grant control of a
// brand-new managed policy are found on equal footing with ones that
// grant control of an already-existing admin-capable policy.
func (d *Driver) labelGenericPoliciesAdmin(ctx context.Context) error {
	_, _, err := d.DB.Run(ctx, `MATCH (p:Generic:` + "`AWS::Iam::Policy`" + `) SET p:Admin`)
	return trace.Wrap(err)
}

// unlabelGenericPoliciesAdmin removes the temporary label applied by
// labelGenericPoliciesAdmin once the search (and post-unification,
// which still needs to see it) has finished.
func (d *Driver) unlabelGenericPoliciesAdmin(ctx context.Context) error {
	_, _, err := d.DB.Run(ctx, `MATCH (p:Generic:` + "`AWS::Iam::Policy`" + `:Admin) REMOVE p:Admin`)
	return trace.Wrap(err)
}
