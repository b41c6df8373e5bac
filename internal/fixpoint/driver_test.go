package fixpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/attack"
	"github.com/AkshayJainG/awspx-go/internal/graphdb"
	"github.com/AkshayJainG/awspx-go/internal/graphdb/fake"
)

func pushN(c *fake.Client, n int, resp fake.Response) {
	for i := 0; i < n; i++ {
		c.Push(resp)
	}
}

func TestDriverRunConvergesImmediatelyWithNoTemplates(t *testing.T) {
	db := fake.New()
	driver := &Driver{DB: db, Config: Config{}, Templates: []attack.Template{}}

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.Equal(t, 1, result.Iterations)
	assert.False(t, db.Closed()) // driver never closes its own connection
}

func TestDriverRunLoopsUntilConvergence(t *testing.T) {
	db := fake.New()

	// idx0 reset, idx1 createEffectiveAdmin, idx2 labelGenericPoliciesAdmin
	pushN(db, 3, fake.Response{})
	// idx3, idx4: iteration 1, two templates, both create something
	created := fake.Response{Summary: graphdb.Summary{NodesCreated: 1}}
	db.Push(created)
	db.Push(created)
	// idx5, idx6: iteration 2, both templates create nothing -> converge
	db.Push(fake.Response{})
	db.Push(fake.Response{})
	// idx7-9 postUnify, idx10 deferred unlabel
	pushN(db, 4, fake.Response{})

	driver := &Driver{
		DB:     db,
		Config: Config{},
		Templates: []attack.Template{
			attack.ByName["AssumeRole"],
			attack.ByName["AddUserToGroup"],
		},
	}

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, 2, result.NodesCreated)
}

func TestDriverRunRespectsMaxIterations(t *testing.T) {
	db := fake.New()
	// every query reports a creation, so without MaxIterations this would spin forever
	alwaysCreates := fake.Response{Summary: graphdb.Summary{NodesCreated: 1}}
	pushN(db, 20, alwaysCreates)

	driver := &Driver{
		DB:        db,
		Config:    Config{MaxIterations: 2},
		Templates: []attack.Template{attack.ByName["AssumeRole"]},
	}

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Converged)
	assert.Equal(t, 2, result.Iterations)
}

func TestDriverRunAggregatesMidLoopErrorWithPostUnification(t *testing.T) {
	db := fake.New()
	pushN(db, 3, fake.Response{}) // reset, createEffectiveAdmin, labelGenericPoliciesAdmin

	failure := fake.Response{Err: assertErr("boom")}
	db.Push(failure) // the one template's query fails

	pushN(db, 4, fake.Response{}) // postUnify x3, deferred unlabel x1

	driver := &Driver{
		DB:        db,
		Config:    Config{},
		Templates: []attack.Template{attack.ByName["AssumeRole"]},
	}

	result, err := driver.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AssumeRole")
	assert.False(t, result.Converged)

	// post-unification still ran despite the mid-loop failure
	require.GreaterOrEqual(t, len(db.Queries), 7)
}

func TestSelectedTemplatesOnlyAndExceptFiltering(t *testing.T) {
	driver := &Driver{
		Templates: attack.Templates,
		Config: Config{
			OnlyAttacks:   []string{"AssumeRole", "AddUserToGroup"},
			ExceptAttacks: []string{"AddUserToGroup"},
		},
	}
	selected := driver.selectedTemplates()
	require.Len(t, selected, 1)
	assert.Equal(t, "AssumeRole", selected[0].Name)
}

func TestSelectedTemplatesDefaultsToAll(t *testing.T) {
	driver := &Driver{Templates: attack.Templates}
	assert.Len(t, driver.selectedTemplates(), len(attack.Templates))
}

type testError string

func (e testError) Error() string { return string(e) }

func assertErr(msg string) error { return testError(msg) }
