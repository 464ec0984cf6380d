// Package awscloud provides the AWS integrations used for remote persistence:
// role assumption through STS, uploads to S3 and ECR registry tokens.
package awscloud

import (
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

// DefaultRegion is used when no region is configured
const DefaultRegion = "us-east-1"

// Config holds the settings shared by the AWS clients
type Config struct {
	Region          string
	Endpoint        string // overrides the service endpoint, mainly for tests
	AccessKeyID     string // static keys, the default provider chain is used when empty
	SecretAccessKey string
	SessionToken    string
	HTTPClient      *http.Client
}

func (c Config) region() string {
	if c.Region == "" {
		return DefaultRegion
	}
	return c.Region
}

// staticCredentials returns nil when no keys are configured
func (c Config) staticCredentials() *credentials.Credentials {
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return nil
	}
	return credentials.NewStaticCredentials(c.AccessKeyID, c.SecretAccessKey, c.SessionToken)
}

// newSession builds a session from cfg, using creds when given
func newSession(cfg Config, creds *credentials.Credentials) (*session.Session, error) {
	awsConfig := aws.NewConfig().WithRegion(cfg.region())
	if creds != nil {
		awsConfig.WithCredentials(creds)
	}
	if cfg.Endpoint != "" {
		awsConfig.WithEndpoint(cfg.Endpoint)
	}
	if cfg.HTTPClient != nil {
		awsConfig.WithHTTPClient(cfg.HTTPClient)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return sess, nil
}
