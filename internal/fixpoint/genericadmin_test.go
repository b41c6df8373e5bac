package fixpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/graphdb/fake"
)

func TestLabelGenericPoliciesAdminQueryShape(t *testing.T) {
	db := fake.New()
	driver := &Driver{DB: db}

	require.NoError(t, driver.labelGenericPoliciesAdmin(context.Background()))
	require.Len(t, db.Queries, 1)
	assert.Contains(t, db.Queries[0], "Generic")
	assert.Contains(t, db.Queries[0], "`AWS::Iam::Policy`")
	assert.Contains(t, db.Queries[0], "SET p:Admin")
}

func TestUnlabelGenericPoliciesAdminQueryShape(t *testing.T) {
	db := fake.New()
	driver := &Driver{DB: db}

	require.NoError(t, driver.unlabelGenericPoliciesAdmin(context.Background()))
	require.Len(t, db.Queries, 1)
	assert.Contains(t, db.Queries[0], "REMOVE p:Admin")
}
