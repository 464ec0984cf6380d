// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// RepositoryGateway defines read operations against the upstream repository API
type RepositoryGateway interface {
	// GetLanguages returns the language histogram of a repository, largest first
	GetLanguages(ctx context.Context, org, repo string) (entities.Languages, error)

	// GetRepository returns repository details such as the creation date
	GetRepository(ctx context.Context, org, repo string) (*entities.RepositoryInfo, error)
}
