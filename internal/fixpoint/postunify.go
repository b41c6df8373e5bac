package fixpoint

import (
	"context"

	"github.com/gravitational/trace"
)

// postUnify rewrites the raw search output into its canonical,
// presentation-ready form (spec §5.2):
//
//  1. Any ATTACK edge whose target is the Effective Admin node, or a
//     Generic Policy node temporarily labeled Admin during the search,
//     is rewritten to an ADMIN edge — the reader-facing signal that
//     this path grants administrator authority, independent of which
//     template produced it.
//  2. Chains of admin-granting edges (A has ADMIN over B, B is itself
//     ADMIN-connected to Effective Admin) get a direct ADMIN edge named
//     "Chained" from A to the single canonical admin node, so every
//     admin path also terminates directly there; the intermediate
//     ADMIN edges are kept.
//  3. Every ADMIN edge between a source/target pair gets the
//     Descriptions collected from all ADMIN edges of that pair, since
//     more than one distinct attack can converge on the same
//     source/target pair.
func (d *Driver) postUnify(ctx context.Context) error {
	if _, _, err := d.DB.Run(ctx, rewriteAdminEdgesQuery); err != nil {
		return trace.Wrap(err, "rewriting admin-granting ATTACK edges")
	}
	if _, _, err := d.DB.Run(ctx, flattenAdminChainsQuery); err != nil {
		return trace.Wrap(err, "flattening admin-granting pattern chains")
	}
	if _, _, err := d.DB.Run(ctx, collectAdminDescriptionsQuery); err != nil {
		return trace.Wrap(err, "collecting per-command admin descriptions")
	}
	return nil
}

const rewriteAdminEdgesQuery = `
MATCH (source)-[attackEdge:ATTACK]->(pattern:Pattern)-[edge:ATTACK|CREATE]->(target:Admin)
MERGE (source)-[admin:ADMIN{Name: attackEdge.Name}]->(target)
ON CREATE SET admin.Descriptions = [edge.Description]
DETACH DELETE pattern
`

const flattenAdminChainsQuery = `
MATCH (source)-[:ADMIN]->()-[:ADMIN*1..]->(admin:Admin{Name:'Effective Admin'})
MERGE (source)-[:ADMIN{Name:'Chained'}]->(admin)
`

const collectAdminDescriptionsQuery = `
MATCH (source)-[admin:ADMIN]->(target)
UNWIND coalesce(admin.Descriptions, []) AS description
WITH source, target, COLLECT(DISTINCT description) AS descriptions
MATCH (source)-[a:ADMIN]->(target)
SET a.Descriptions = descriptions
`
