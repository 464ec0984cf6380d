package gateways

import (
	"context"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// SBOMScanner runs the external SBOM scanner.
// Source is a filesystem path or an image reference.
type SBOMScanner interface {
	// Scan returns the decoded CycloneDX report.
	// A non-zero scanner exit yields *entities.ScannerInvocationError.
	Scan(ctx context.Context, source string) (*entities.CycloneDXDocument, error)
}

// ContainerBuilder drives the container tooling used by the fallback scan
type ContainerBuilder interface {
	// Login authenticates against a registry, the password is passed on stdin
	Login(ctx context.Context, creds entities.RegistryCredentials) error

	// Build builds contextDir/dockerfile into an image tagged tag
	Build(ctx context.Context, contextDir, dockerfile, tag string) error
}

// FileLocator finds files by pattern under a directory tree
type FileLocator interface {
	// FindFiles returns relative, '/'-joined paths whose start matches pattern
	FindFiles(pattern, rootDir string) ([]string, error)
}
