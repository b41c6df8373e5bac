package fixpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/graphdb/fake"
)

func TestPostUnifyRunsAllThreeQueriesInOrder(t *testing.T) {
	db := fake.New()
	driver := &Driver{DB: db}

	require.NoError(t, driver.postUnify(context.Background()))
	require.Len(t, db.Queries, 3)
	assert.Contains(t, db.Queries[0], "MERGE (source)-[admin:ADMIN")
	assert.Contains(t, db.Queries[1], "Chained")
	assert.Contains(t, db.Queries[2], "Descriptions")
}

func TestPostUnifyStopsAtFirstFailure(t *testing.T) {
	db := fake.New()
	db.Push(fake.Response{Err: assertErr("rewrite failed")})

	driver := &Driver{DB: db}
	err := driver.postUnify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewriting admin-granting")
	assert.Len(t, db.Queries, 1, "should not have attempted the remaining post-unification queries")
}
