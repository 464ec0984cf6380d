// Package services defines interfaces for domain service contracts.
package services

import (
	"context"
	"time"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// AcquisitionService produces the component list of a working tree
type AcquisitionService interface {
	AcquireSBOM(ctx context.Context, path string, creds entities.RegistryCredentials) ([]entities.Component, error)
}

// MetadataService collects repository activity figures and languages
type MetadataService interface {
	Collect(ctx context.Context, org, repo, branch string) (*entities.RepositoryMetadata, error)
	Languages(ctx context.Context, org, repo string) (entities.Languages, error)
}

// CompressorService normalizes scanner output into the report schema
type CompressorService interface {
	Compress(repo string, metadata entities.RepositoryMetadata, languages entities.Languages, components []entities.Component) *entities.SBOMReport
}

// PersistenceService stores reports locally and remotely.
// The date names the report; callers pass the same date to both channels.
type PersistenceService interface {
	PersistLocal(repo string, date time.Time, report *entities.SBOMReport) (string, error)
	PersistRemote(ctx context.Context, repo string, date time.Time, report *entities.SBOMReport, target RemoteTarget) (string, error)
}

// RemoteTarget names the bucket and the role used to write into it
type RemoteTarget struct {
	Bucket     string
	RoleARN    string
	ExternalID string
}
