// Package catalog holds the Action Catalog and Resource Regex table:
// static, immutable reference data consumed read-only by the Policy
// Resolver and the Pattern Compiler. Nothing in this package mutates
// after init.
package catalog

import "github.com/AkshayJainG/awspx-go/internal/graph"

// ActionDef describes one IAM action as recorded in the catalog.
type ActionDef struct {
	Access      graph.Access
	Description string
	Reference   string
	// Affects lists the AWS::<Service>::<Kind> types this action can
	// act upon; a statement's Resource expansion is filtered through
	// this list per spec §4.2 "resolve() output".
	Affects []string
}

// Actions is the immutable ActionName -> ActionDef table. It is built
// once at package init from actionTable and never mutated afterward.
var Actions = buildActions()

// DeclaresAffect reports whether the action lists label among the
// resource types it affects. Used by the Resolver when filtering a
// statement's matched resources down to an action's Affects list.
func (a ActionDef) DeclaresAffect(label string) bool {
	for _, t := range a.Affects {
		if t == label {
			return true
		}
	}
	return false
}

func buildActions() map[string]ActionDef {
	m := make(map[string]ActionDef, len(actionTable))
	for _, a := range actionTable {
		m[a.name] = ActionDef{
			Access:      a.access,
			Description: a.description,
			Reference:   a.reference,
			Affects:     a.affects,
		}
	}
	return m
}

type actionRow struct {
	name        string
	access      graph.Access
	description string
	reference   string
	affects     []string
}

// actionTable is the compile-time literal backing the catalog. It
// covers every action referenced by the attack templates in
// internal/attack plus a representative slice of read/list actions
// used to exercise glob expansion in tests.
var actionTable = []actionRow{
	{"iam:CreatePolicyVersion", graph.AccessPerm,
		"Grants permission to create a new version of the specified managed policy",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreatePolicyVersion.html",
		[]string{"AWS::Iam::Policy"}},
	{"iam:PassRole", graph.AccessPerm,
		"Grants permission to pass a role to a service",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_PassRole.html",
		[]string{"AWS::Iam::Role"}},
	{"ec2:AssociateIamInstanceProfile", graph.AccessWrite,
		"Grants permission to associate an IAM instance profile with a running or stopped instance",
		"https://docs.aws.amazon.com/AWSEC2/latest/APIReference/API_AssociateIamInstanceProfile.html",
		[]string{"AWS::Ec2::Instance"}},
	{"sts:AssumeRole", graph.AccessWrite,
		"Grants permission to return a set of temporary security credentials for a role",
		"https://docs.aws.amazon.com/STS/latest/APIReference/API_AssumeRole.html",
		[]string{"AWS::Iam::Role"}},
	{"iam:AddUserToGroup", graph.AccessPerm,
		"Grants permission to add a user to an IAM group",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_AddUserToGroup.html",
		[]string{"AWS::Iam::Group"}},
	{"iam:AttachGroupPolicy", graph.AccessPerm,
		"Grants permission to attach a managed policy to an IAM group",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_AttachGroupPolicy.html",
		[]string{"AWS::Iam::Group"}},
	{"iam:AttachRolePolicy", graph.AccessPerm,
		"Grants permission to attach a managed policy to an IAM role",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_AttachRolePolicy.html",
		[]string{"AWS::Iam::Role"}},
	{"iam:AttachUserPolicy", graph.AccessPerm,
		"Grants permission to attach a managed policy to an IAM user",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_AttachUserPolicy.html",
		[]string{"AWS::Iam::User"}},
	{"iam:CreateGroup", graph.AccessWrite,
		"Grants permission to create a new IAM group",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreateGroup.html",
		[]string{"AWS::Iam::Group"}},
	{"ec2:RunInstances", graph.AccessWrite,
		"Grants permission to launch one or more instances",
		"https://docs.aws.amazon.com/AWSEC2/latest/APIReference/API_RunInstances.html",
		[]string{"AWS::Ec2::Instance"}},
	{"iam:CreateInstanceProfile", graph.AccessWrite,
		"Grants permission to create a new instance profile",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreateInstanceProfile.html",
		[]string{"AWS::Iam::InstanceProfile"}},
	{"iam:CreatePolicy", graph.AccessWrite,
		"Grants permission to create a new managed policy",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreatePolicy.html",
		[]string{"AWS::Iam::Policy"}},
	{"iam:CreateRole", graph.AccessWrite,
		"Grants permission to create a new role",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreateRole.html",
		[]string{"AWS::Iam::Role"}},
	{"iam:CreateUser", graph.AccessWrite,
		"Grants permission to create a new IAM user",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreateUser.html",
		[]string{"AWS::Iam::User"}},
	{"iam:CreateLoginProfile", graph.AccessWrite,
		"Grants permission to create a password for an IAM user",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreateLoginProfile.html",
		[]string{"AWS::Iam::User"}},
	{"iam:PutGroupPolicy", graph.AccessPerm,
		"Grants permission to add or update an inline policy document embedded in an IAM group",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_PutGroupPolicy.html",
		[]string{"AWS::Iam::Group"}},
	{"iam:PutRolePolicy", graph.AccessPerm,
		"Grants permission to add or update an inline policy document embedded in an IAM role",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_PutRolePolicy.html",
		[]string{"AWS::Iam::Role"}},
	{"iam:PutUserPolicy", graph.AccessPerm,
		"Grants permission to add or update an inline policy document embedded in an IAM user",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_PutUserPolicy.html",
		[]string{"AWS::Iam::User"}},
	{"iam:UpdateAssumeRolePolicy", graph.AccessPerm,
		"Grants permission to update the policy that grants permission to assume a role",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_UpdateAssumeRolePolicy.html",
		[]string{"AWS::Iam::Role"}},
	{"iam:UpdateLoginProfile", graph.AccessWrite,
		"Grants permission to change the password for an IAM user",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_UpdateLoginProfile.html",
		[]string{"AWS::Iam::User"}},
	{"iam:CreateAccessKey", graph.AccessWrite,
		"Grants permission to create an access key for an IAM user",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_CreateAccessKey.html",
		[]string{"AWS::Iam::User"}},
	{"iam:DeleteAccessKey", graph.AccessWrite,
		"Grants permission to delete the access key of an IAM user",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_DeleteAccessKey.html",
		[]string{"AWS::Iam::User"}},

	// Read/list/tagging actions, present to exercise glob expansion
	// (P2) and resource-based policy statements without contributing
	// any attack template.
	{"iam:GetPolicy", graph.AccessRead, "Grants permission to retrieve information about a managed policy",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_GetPolicy.html", []string{"AWS::Iam::Policy"}},
	{"iam:GetRole", graph.AccessRead, "Grants permission to retrieve information about a role",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_GetRole.html", []string{"AWS::Iam::Role"}},
	{"iam:ListRoles", graph.AccessList, "Grants permission to list the IAM roles in an account",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_ListRoles.html", []string{"AWS::Iam::Role"}},
	{"iam:TagRole", graph.AccessTag, "Grants permission to add tags to a role",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_TagRole.html", []string{"AWS::Iam::Role"}},
	{"iam:UntagRole", graph.AccessTag, "Grants permission to remove tags from a role",
		"https://docs.aws.amazon.com/IAM/latest/APIReference/API_UntagRole.html", []string{"AWS::Iam::Role"}},
	{"s3:GetObject", graph.AccessRead, "Grants permission to retrieve objects from an Amazon S3 bucket",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_GetObject.html", []string{"AWS::S3::Bucket"}},
	{"s3:PutObject", graph.AccessWrite, "Grants permission to add an object to a bucket",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_PutObject.html", []string{"AWS::S3::Bucket"}},
	{"s3:DeleteObject", graph.AccessWrite, "Grants permission to remove the specified object from a bucket",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_DeleteObject.html", []string{"AWS::S3::Bucket"}},
	{"s3:ListBucket", graph.AccessList, "Grants permission to list some or all of the objects in a bucket",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_ListObjectsV2.html", []string{"AWS::S3::Bucket"}},
	{"s3:ListBucketVersions", graph.AccessList, "Grants permission to list metadata about all versions of objects in a bucket",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_ListObjectVersions.html", []string{"AWS::S3::Bucket"}},
	{"s3:ListBucketMultipartUploads", graph.AccessList, "Grants permission to list the in-progress multipart uploads for a bucket",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_ListMultipartUploads.html", []string{"AWS::S3::Bucket"}},
	{"s3:GetBucketAcl", graph.AccessRead, "Grants permission to return the access control list of a bucket",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_GetBucketAcl.html", []string{"AWS::S3::Bucket"}},
	{"s3:PutBucketAcl", graph.AccessPerm, "Grants permission to set the permissions on an existing bucket using access control lists",
		"https://docs.aws.amazon.com/AmazonS3/latest/API/API_PutBucketAcl.html", []string{"AWS::S3::Bucket"}},
	{"ec2:DescribeInstances", graph.AccessRead, "Grants permission to describe one or more instances",
		"https://docs.aws.amazon.com/AWSEC2/latest/APIReference/API_DescribeInstances.html", []string{"AWS::Ec2::Instance"}},
	{"ec2:CreateTags", graph.AccessTag, "Grants permission to add or overwrite tags for Amazon EC2 resources",
		"https://docs.aws.amazon.com/AWSEC2/latest/APIReference/API_CreateTags.html", []string{"AWS::Ec2::Instance"}},
}
