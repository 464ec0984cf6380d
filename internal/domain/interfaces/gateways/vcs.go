package gateways

import (
	"context"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// CommitLog lists commit timestamps of a branch, newest first
type CommitLog interface {
	CommitTimestamps(ctx context.Context, branch string) (entities.CommitHistory, error)
}
