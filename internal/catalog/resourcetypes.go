package catalog

import (
	"regexp"

	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"
)

// ResourceTypes is the immutable ResourceType -> ArnRegex table,
// letting the Resolver decide, given an arn string, which
// AWS::<Service>::<Kind> label applies. Order matters: ClassifyArn
// walks resourceTypeOrder so the most specific pattern is tried first.
var ResourceTypes = buildResourceTypes()

var resourceTypeOrder = []string{
	"AWS::Iam::InstanceProfile",
	"AWS::Iam::SamlProvider",
	"AWS::Iam::Policy",
	"AWS::Iam::Role",
	"AWS::Iam::Group",
	"AWS::Iam::User",
	"AWS::Ec2::Instance",
	"AWS::S3::Bucket",
	"AWS::Account",
}

var resourceTypePatterns = map[string]string{
	"AWS::Iam::InstanceProfile": `^arn:aws:iam::\d{12}:instance-profile/.+$`,
	"AWS::Iam::SamlProvider":    `^arn:aws:iam::\d{12}:saml-provider/.+$`,
	"AWS::Iam::Policy":         `^arn:aws:iam::\d{12}:policy/.+$`,
	"AWS::Iam::Role":           `^arn:aws:iam::\d{12}:role/.+$`,
	"AWS::Iam::Group":          `^arn:aws:iam::\d{12}:group/.+$`,
	"AWS::Iam::User":           `^arn:aws:iam::\d{12}:user/.+$`,
	"AWS::Ec2::Instance":       `^arn:aws:ec2:[a-z0-9-]*:\d{12}:instance/.+$`,
	"AWS::S3::Bucket":          `^arn:aws:s3:::[^/]+$`,
	"AWS::Account":             `^\d{12}$`,
}

func buildResourceTypes() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(resourceTypePatterns))
	for typ, pattern := range resourceTypePatterns {
		m[typ] = regexp.MustCompile(pattern)
	}
	return m
}

// resourceTypeService maps a resource type to the aws-sdk-go-v2
// arn.ARN.Service value it must carry, letting ClassifyArn narrow the
// regex table to only the types a successfully-parsed arn could be,
// rather than trying every pattern in order.
var resourceTypeService = map[string]string{
	"AWS::Iam::InstanceProfile": "iam",
	"AWS::Iam::SamlProvider":    "iam",
	"AWS::Iam::Policy":          "iam",
	"AWS::Iam::Role":            "iam",
	"AWS::Iam::Group":           "iam",
	"AWS::Iam::User":            "iam",
	"AWS::Ec2::Instance":        "ec2",
	"AWS::S3::Bucket":           "s3",
}

// ClassifyArn returns the first resource type, in resourceTypeOrder,
// whose regex matches arn. When arn parses as a well-formed ARN, the
// search is narrowed to the types whose expected service matches the
// parsed one, so a malformed-looking iam arn is never misclassified as
// some unrelated service's resource type.
func ClassifyArn(arn string) (string, bool) {
	parsed, err := awsarn.Parse(arn)
	if err != nil {
		for _, typ := range resourceTypeOrder {
			if re, ok := ResourceTypes[typ]; ok && re.MatchString(arn) {
				return typ, true
			}
		}
		return "", false
	}

	for _, typ := range resourceTypeOrder {
		if svc, ok := resourceTypeService[typ]; ok && svc != parsed.Service {
			continue
		}
		if re, ok := ResourceTypes[typ]; ok && re.MatchString(arn) {
			return typ, true
		}
	}
	return "", false
}
