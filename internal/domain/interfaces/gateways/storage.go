package gateways

import (
	"context"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// RoleAssumer exchanges a role for temporary credentials
type RoleAssumer interface {
	AssumeRole(ctx context.Context, role entities.RoleAssumption) (*entities.TemporaryCredentials, error)
}

// ObjectStore uploads objects to a bucket using the given credentials
type ObjectStore interface {
	PutObject(ctx context.Context, creds *entities.TemporaryCredentials, bucket, key string, body []byte) error
}

// ReportSigner produces detached signatures for persisted reports
type ReportSigner interface {
	// Sign returns an armored detached signature of data
	Sign(data []byte) ([]byte, error)
}
