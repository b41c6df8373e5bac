package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshayJainG/awspx-go/internal/graph"
)

func TestResolveCommandSubstitutesNameAndField(t *testing.T) {
	role := graph.NewResource("deploy", "arn:aws:iam::123456789012:role/deploy", []string{"AWS::Iam::Role"}, nil)
	bindings := map[string]graph.Node{"AWS::Iam::Role": role}

	out, err := ResolveCommand(
		`aws sts assume-role --role-arn ${AWS::Iam::Role}.Arn --role-session-name AssumeRole`,
		bindings,
	)
	require.NoError(t, err)
	assert.Equal(t, `aws sts assume-role --role-arn arn:aws:iam::123456789012:role/deploy --role-session-name AssumeRole`, out)
}

func TestResolveCommandSubstitutesBareNameAndQuotesSpaces(t *testing.T) {
	profile := graph.NewResource("deploy profile", "arn:aws:iam::123456789012:instance-profile/deploy profile", []string{"AWS::Iam::InstanceProfile"}, nil)
	bindings := map[string]graph.Node{"AWS::Iam::InstanceProfile": profile}

	out, err := ResolveCommand(
		`aws ec2 associate-iam-instance-profile --iam-instance-profile Name=${AWS::Iam::InstanceProfile}`,
		bindings,
	)
	require.NoError(t, err)
	assert.Contains(t, out, `'Name=deploy profile'`)
}

func TestResolveCommandUnboundPlaceholderLeftVerbatim(t *testing.T) {
	out, err := ResolveCommand(`aws iam create-policy-version --policy-arn ${AWS::Iam::Policy}.Arn`, map[string]graph.Node{})
	require.NoError(t, err)
	assert.Equal(t, `aws iam create-policy-version --policy-arn ${AWS::Iam::Policy}.Arn`, out)
}

func TestResolveFieldFallsBackToProperties(t *testing.T) {
	res := graph.NewResource("x", "arn:aws:iam::123456789012:user/x", []string{"AWS::Iam::User"}, map[string]interface{}{"LoginProfile": "enabled"})
	assert.Equal(t, "enabled", resolveField(res, "LoginProfile"))
	assert.Equal(t, "", resolveField(res, "NoSuchField"))
}
