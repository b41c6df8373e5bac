package attack

// Templates is the immutable, compile-time literal table backing the
// entire search: every technique the fixpoint driver tries, in the
// order it was catalogued. AddRoleToInstanceProfile and CreateSnapshot
// are deliberately absent — see SPEC_FULL.md §C.4 for why reinstating
// them was rejected (unresolved false-positive rate, and a dependent
// resource type this engine's catalog does not model).
var Templates = []Template{
	{
		Name:        "CreatePolicyVersion",
		Description: "Overwrite the default version of the target managed policy",
		Commands: []string{
			`aws iam create-policy-version --policy-arn ${AWS::Iam::Policy}.Arn --set-as-default --policy-document file://admin.json`,
		},
		AdminOption: true,
		Depends:     "AWS::Iam::Policy",
		Requires:    []string{"iam:CreatePolicyVersion"},
		Affects:     "AWS::Iam::Policy",
		GrantLabel:  "Admin",
	},
	{
		Name:        "AssociateInstanceProfile",
		Description: "Associate the specified instance with the target instance profile",
		Commands: []string{
			`aws ec2 associate-iam-instance-profile --iam-instance-profile Name=${AWS::Iam::InstanceProfile} --instance-id ${AWS::Ec2::Instance}`,
		},
		Depends:              "AWS::Ec2::Instance",
		Requires:             []string{"ec2:AssociateIamInstanceProfile"},
		Affects:               "AWS::Ec2::Instance",
		Grants:                "AWS::Iam::InstanceProfile",
		GrantsIsResourceType:  true,
		GrantLabel:            "Attached",
		Cypher: []string{
			`(${AWS::Iam::InstanceProfile})-[:TRANSITIVE{Name:'Attached'}]->(${AWS::Iam::Role})`,
			`(${})-[:TRANSITIVE*..]->()-[:ACTION{Name:'iam:PassRole'}]->(${AWS::Iam::Role})`,
		},
	},
	{
		Name:        "AssumeRole",
		Description: "Retrieve a set of temporary security credentials by assuming the target role",
		Commands: []string{
			`aws sts assume-role --role-arn ${AWS::Iam::Role}.Arn --role-session-name AssumeRole`,
		},
		Requires: []string{"sts:AssumeRole"},
		Affects:  "AWS::Iam::Role",
		GrantLabel: "AssumeRole",
		Cypher: []string{
			`(${})<-[:TRUSTS{Name:'sts:AssumeRole'}]-(${AWS::Iam::Role})`,
		},
	},
	{
		Name:        "AddUserToGroup",
		Description: "Add the specified user to the target group",
		Commands: []string{
			`aws iam add-user-to-group --user-name ${AWS::Iam::User} --group-name ${AWS::Iam::Group}`,
		},
		Depends:    "AWS::Iam::User",
		Requires:   []string{"iam:AddUserToGroup"},
		Affects:    "AWS::Iam::Group",
		GrantLabel: "MemberOf",
	},
	{
		Name:        "AttachGroupPolicy",
		Description: "Attach the target managed policy to the specified group",
		Commands: []string{
			`aws iam attach-group-policy --group-name ${AWS::Iam::Group} --policy-arn ${AWS::Iam::Policy}.Arn`,
		},
		Depends:              "AWS::Iam::Group",
		Requires:             []string{"iam:AttachGroupPolicy"},
		Affects:               "AWS::Iam::Group",
		Grants:                "AWS::Iam::Policy",
		GrantsIsResourceType:  true,
		GrantLabel:            "Attached",
		Cypher:                []string{`(${AWS::Iam::Group})-[:TRANSITIVE{Name:'Attached'}]->(${AWS::Iam::Policy})`},
	},
	{
		Name:        "AttachRolePolicy",
		Description: "Attach the target managed policy to the specified role",
		Commands: []string{
			`aws iam attach-role-policy --role-name ${AWS::Iam::Role} --policy-arn ${AWS::Iam::Policy}.Arn`,
		},
		Depends:              "AWS::Iam::Role",
		Requires:             []string{"iam:AttachRolePolicy"},
		Affects:               "AWS::Iam::Role",
		Grants:                "AWS::Iam::Policy",
		GrantsIsResourceType:  true,
		GrantLabel:            "Attached",
		Cypher:                []string{`(${AWS::Iam::Role})-[:TRANSITIVE{Name:'Attached'}]->(${AWS::Iam::Policy})`},
	},
	{
		Name:        "AttachUserPolicy",
		Description: "Attach the target managed policy to the specified user",
		Commands: []string{
			`aws iam attach-user-policy --user-name ${AWS::Iam::User} --policy-arn ${AWS::Iam::Policy}.Arn`,
		},
		Depends:              "AWS::Iam::User",
		Requires:             []string{"iam:AttachUserPolicy"},
		Affects:               "AWS::Iam::User",
		Grants:                "AWS::Iam::Policy",
		GrantsIsResourceType:  true,
		GrantLabel:            "Attached",
		Cypher:                []string{`(${AWS::Iam::User})-[:TRANSITIVE{Name:'Attached'}]->(${AWS::Iam::Policy})`},
	},
	{
		Name:        "CreateGroup",
		Description: "Create a new group and add the specified user to it",
		Commands: []string{
			`aws iam create-group --group-name ${AWS::Iam::Group}`,
			`aws iam add-user-to-group --user-name ${AWS::Iam::User} --group-name ${AWS::Iam::Group}`,
		},
		CreateAction: true,
		Depends:      "AWS::Iam::User",
		Requires:     []string{"iam:CreateGroup", "iam:AddUserToGroup"},
		Affects:      "AWS::Iam::Group",
	},
	{
		Name:        "CreateInstance",
		Description: "Launch a new Ec2 instance",
		Commands: []string{
			`aws ec2 run-instances --count 1 --instance-type t2.micro --image-id ${ami-id}`,
		},
		CreateAction: true,
		Requires:     []string{"ec2:RunInstances"},
		Affects:      "AWS::Ec2::Instance",
	},
	{
		Name:        "CreateInstanceProfile",
		Description: "Create a new instance profile",
		Commands: []string{
			`aws iam create-instance-profile --instance-profile-name ${AWS::Iam::InstanceProfile}`,
		},
		CreateAction: true,
		Requires:     []string{"iam:CreateInstanceProfile"},
		Affects:      "AWS::Iam::InstanceProfile",
	},
	{
		Name:        "CreatePolicy",
		Description: "Create a new managed policy",
		Commands: []string{
			`aws iam create-policy --policy-name ${policy-name} --policy-document file://admin.json`,
		},
		CreateAction: true,
		Requires:     []string{"iam:CreatePolicy"},
		Affects:      "AWS::Iam::Policy",
	},
	{
		Name:        "CreateRole",
		Description: "Create a new role",
		Commands: []string{
			`aws iam create-role --role-name ${AWS::Iam::Role} --assume-role-policy-document file://trust.json`,
		},
		CreateAction: true,
		Requires:     []string{"iam:CreateRole"},
		Affects:      "AWS::Iam::Role",
		GrantLabel:   "AssumeRole",
	},
	{
		Name:        "CreateUserLoginProfile",
		Description: "Create a new user with a console password",
		Commands: []string{
			`aws iam create-user --user-name ${AWS::Iam::User}`,
			`aws iam create-login-profile --user-name ${AWS::Iam::User} --password ${new-password}`,
		},
		CreateAction: true,
		Requires:     []string{"iam:CreateUser", "iam:CreateLoginProfile"},
		Affects:      "AWS::Iam::User",
	},
	{
		Name:        "PutGroupPolicy",
		Description: "Add a new administrative inline policy document to the target group",
		Commands: []string{
			`aws iam put-group-policy --group-name ${AWS::Iam::Group} --policy-name Admin --policy-document file://admin.json`,
		},
		AdminOption: true,
		Depends:     "AWS::Iam::Group",
		Requires:    []string{"iam:PutGroupPolicy"},
		Affects:     "AWS::Iam::Group",
	},
	{
		Name:        "PutRolePolicy",
		Description: "Add a new administrative inline policy document to the target role",
		Commands: []string{
			`aws iam put-role-policy --role-name ${AWS::Iam::Role} --policy-name Admin --policy-document file://admin.json`,
		},
		AdminOption: true,
		Depends:     "AWS::Iam::Role",
		Requires:    []string{"iam:PutRolePolicy"},
		Affects:     "AWS::Iam::Role",
	},
	{
		Name:        "PutUserPolicy",
		Description: "Add a new administrative inline policy document to the target user",
		Commands: []string{
			`aws iam put-user-policy --user-name ${AWS::Iam::User} --policy-name Admin --policy-document file://admin.json`,
		},
		AdminOption: true,
		Depends:     "AWS::Iam::User",
		Requires:    []string{"iam:PutUserPolicy"},
		Affects:     "AWS::Iam::User",
	},
	{
		Name:        "UpdateRole",
		Description: "Update the assume-role policy document of the target role and assume it",
		Commands: []string{
			`aws iam update-assume-role-policy --role-name ${AWS::Iam::Role} --policy-document file://trust.json`,
			`aws sts assume-role --role-arn ${AWS::Iam::Role}.Arn --role-session-name AssumeRole`,
		},
		Requires:   []string{"iam:UpdateAssumeRolePolicy"},
		Affects:    "AWS::Iam::Role",
		GrantLabel: "AssumeRole",
	},
	{
		Name:        "UpdateUserLoginProfile",
		Description: "Reset the target user's console password and log in as them",
		Commands: []string{
			`aws iam update-login-profile --user-name ${AWS::Iam::User} --password ${Password}`,
		},
		Requires:   []string{"iam:UpdateLoginProfile"},
		Affects:    "AWS::Iam::User",
		GrantLabel: "ChangePassword",
	},
	{
		Name:        "SetUserLoginProfile",
		Description: "Set a console password for the target user, who has none, and log in as them",
		Commands: []string{
			`aws iam create-login-profile --user-name ${AWS::Iam::User} --password ${Password}`,
		},
		Requires:         []string{"iam:CreateLoginProfile"},
		Affects:          "AWS::Iam::User",
		GrantLabel:       "SetPassword",
		ExtraConstraints: []string{`${AWS::Iam::User}.LoginProfile IS NULL`},
	},
	{
		Name:        "CreateUserAccessKey",
		Description: "Create an access key for the target user and authenticate as them using the API",
		Commands: []string{
			`aws iam create-access-key --user-name ${AWS::Iam::User}`,
		},
		Requires:         []string{"iam:CreateAccessKey"},
		Affects:          "AWS::Iam::User",
		GrantLabel:       "CreateAccessKey",
		ExtraConstraints: []string{`(COALESCE(SIZE(SPLIT(${AWS::Iam::User}.AccessKeys,'Status')),1) - 1) < 2`},
	},
	{
		Name:        "ReplaceUserAccessKey",
		Description: "Delete, then recreate, an access key for the target user and authenticate as them using the API",
		Commands: []string{
			`aws iam delete-access-key --user-name ${AWS::Iam::User} --access-key-id ${AccessKeyId}`,
			`aws iam create-access-key --user-name ${AWS::Iam::User}`,
		},
		Requires:         []string{"iam:DeleteAccessKey", "iam:CreateAccessKey"},
		Affects:          "AWS::Iam::User",
		GrantLabel:       "ReplaceAccessKey",
		ExtraConstraints: []string{`(SIZE(SPLIT(${AWS::Iam::User}.AccessKeys,'Status')) - 1) > 0`},
	},
}

// ByName indexes Templates by Name for O(1) lookup.
var ByName = buildIndex()

func buildIndex() map[string]Template {
	m := make(map[string]Template, len(Templates))
	for _, t := range Templates {
		m[t.Name] = t
	}
	return m
}
