package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/attack"
)

func TestCompileAssumeRole(t *testing.T) {
	tmpl := attack.ByName["AssumeRole"]
	q, err := Compile(tmpl, Config{})
	require.NoError(t, err)

	text := q.String()
	assert.Contains(t, text, "sts:AssumeRole")
	assert.Contains(t, text, "TRUSTS")
	assert.Contains(t, text, "NOT source:Admin")
	assert.Contains(t, text, "source <> target")
	assert.Contains(t, text, "ATTACK")
}

func TestCompileAssociateInstanceProfileBindsDependencyAndGrants(t *testing.T) {
	tmpl := attack.ByName["AssociateInstanceProfile"]
	q, err := Compile(tmpl, Config{})
	require.NoError(t, err)

	text := q.String()
	assert.Contains(t, text, "dependency:`AWS::Ec2::Instance`")
	assert.Contains(t, text, "TRANSITIVE")
	assert.Contains(t, text, "iam:PassRole")
}

func TestCompileCreatePolicyVersionIsAdminGrantingAttack(t *testing.T) {
	tmpl := attack.ByName["CreatePolicyVersion"]
	q, err := Compile(tmpl, Config{})
	require.NoError(t, err)

	text := q.String()
	assert.Contains(t, text, "iam:CreatePolicyVersion")
	assert.Contains(t, text, "Admin: true")
}

func TestCompileAllTemplatesProduceAQuery(t *testing.T) {
	for _, tmpl := range attack.Templates {
		q, err := Compile(tmpl, Config{})
		require.NoError(t, err, "template %s failed to compile", tmpl.Name)
		require.NotNil(t, q.Return, "template %s produced no RETURN clause", tmpl.Name)
		assert.NotEmpty(t, q.String(), "template %s rendered empty query", tmpl.Name)
	}
}

func TestCompileRejectsTemplateWithUnboundCommandPlaceholder(t *testing.T) {
	bogus := attack.Template{
		Name:     "BogusGrant",
		Requires: []string{"iam:PutRolePolicy"},
		Affects:  "AWS::Iam::Role",
		Commands: []string{"aws iam attach-role-policy --policy-arn ${AWS::Iam::Policy}.Arn"},
	}
	_, err := Compile(bogus, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BogusGrant")
	assert.Contains(t, err.Error(), "unbound placeholder")
}

func TestCompileIgnoreActionsWithConditionsConfig(t *testing.T) {
	tmpl := attack.ByName["AssumeRole"]
	q, err := Compile(tmpl, Config{IgnoreActionsWithConditions: true})
	require.NoError(t, err)
	assert.Contains(t, q.String(), "action0.Condition = '[]'")
}
