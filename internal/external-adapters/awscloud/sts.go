package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/aws/aws-sdk-go/service/sts/stsiface"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// RoleAssumer obtains temporary credentials with sts:AssumeRole
type RoleAssumer struct {
	client stsiface.STSAPI
}

// NewRoleAssumer creates a role assumer authenticated with the configured keys
func NewRoleAssumer(cfg Config) (*RoleAssumer, error) {
	sess, err := newSession(cfg, cfg.staticCredentials())
	if err != nil {
		return nil, err
	}
	return &RoleAssumer{client: sts.New(sess)}, nil
}

// NewRoleAssumerWithClient wraps an existing STS client
func NewRoleAssumerWithClient(client stsiface.STSAPI) *RoleAssumer {
	return &RoleAssumer{client: client}
}

// AssumeRole assumes role.RoleARN. The external ID is only sent when set.
func (r *RoleAssumer) AssumeRole(ctx context.Context, role entities.RoleAssumption) (*entities.TemporaryCredentials, error) {
	if _, err := arn.Parse(role.RoleARN); err != nil {
		return nil, fmt.Errorf("invalid role ARN %q: %w", role.RoleARN, err)
	}

	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(role.RoleARN),
		RoleSessionName: aws.String(role.SessionName),
	}
	if role.ExternalID != "" {
		input.ExternalId = aws.String(role.ExternalID)
	}

	out, err := r.client.AssumeRoleWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to assume role %s: %w", role.RoleARN, err)
	}
	if out.Credentials == nil {
		return nil, fmt.Errorf("assume role %s returned no credentials", role.RoleARN)
	}

	return &entities.TemporaryCredentials{
		AccessKeyID:     aws.StringValue(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.StringValue(out.Credentials.SecretAccessKey),
		SessionToken:    aws.StringValue(out.Credentials.SessionToken),
		Expiration:      aws.TimeValue(out.Credentials.Expiration),
	}, nil
}
