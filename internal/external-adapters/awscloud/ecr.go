package awscloud

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecr"
	"github.com/aws/aws-sdk-go/service/ecr/ecriface"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// RegistryTokenProvider fetches ECR login passwords
type RegistryTokenProvider struct {
	client ecriface.ECRAPI
}

// NewRegistryTokenProvider creates a provider authenticated with the configured keys
func NewRegistryTokenProvider(cfg Config) (*RegistryTokenProvider, error) {
	sess, err := newSession(cfg, cfg.staticCredentials())
	if err != nil {
		return nil, err
	}
	return &RegistryTokenProvider{client: ecr.New(sess)}, nil
}

// NewRegistryTokenProviderWithClient wraps an existing ECR client
func NewRegistryTokenProviderWithClient(client ecriface.ECRAPI) *RegistryTokenProvider {
	return &RegistryTokenProvider{client: client}
}

// IsECRRegistry reports whether registry is an ECR host
func IsECRRegistry(registry string) bool {
	host := strings.TrimPrefix(strings.TrimPrefix(registry, "https://"), "http://")
	return strings.Contains(host, ".dkr.ecr.") && strings.Contains(host, ".amazonaws.com")
}

// RegistryCredentials returns login credentials for the account's default registry
func (p *RegistryTokenProvider) RegistryCredentials(ctx context.Context, registry string) (*entities.RegistryCredentials, error) {
	out, err := p.client.GetAuthorizationTokenWithContext(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get registry token: %w", err)
	}
	if len(out.AuthorizationData) == 0 {
		return nil, fmt.Errorf("unable to get registry credentials")
	}

	data := out.AuthorizationData[0]
	decoded, err := base64.StdEncoding.DecodeString(aws.StringValue(data.AuthorizationToken))
	if err != nil {
		return nil, fmt.Errorf("invalid registry credentials obtained from API: %w", err)
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil, fmt.Errorf("invalid registry credentials obtained from API")
	}

	if registry == "" {
		registry = strings.TrimPrefix(aws.StringValue(data.ProxyEndpoint), "https://")
	}

	return &entities.RegistryCredentials{
		Registry: registry,
		Username: username,
		Password: password,
	}, nil
}
