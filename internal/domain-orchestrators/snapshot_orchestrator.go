// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/services"
)

// RegistryCredentialResolver fetches registry credentials when none were configured
type RegistryCredentialResolver interface {
	RegistryCredentials(ctx context.Context, registry string) (*entities.RegistryCredentials, error)
}

// SnapshotOrchestrator coordinates the complete snapshot workflow
type SnapshotOrchestrator struct {
	metadata    services.MetadataService
	acquisition services.AcquisitionService
	compressor  services.CompressorService
	persistence services.PersistenceService
	resolver    RegistryCredentialResolver
	logger      interfaces.Logger
	now         func() time.Time
}

// SnapshotOrchestratorConfig holds the optional collaborators of the orchestrator
type SnapshotOrchestratorConfig struct {
	Resolver RegistryCredentialResolver
	Logger   interfaces.Logger
	Now      func() time.Time // defaults to time.Now
}

// NewSnapshotOrchestrator creates a new snapshot orchestrator
func NewSnapshotOrchestrator(
	metadata services.MetadataService,
	acquisition services.AcquisitionService,
	compressor services.CompressorService,
	persistence services.PersistenceService,
	config SnapshotOrchestratorConfig,
) *SnapshotOrchestrator {
	o := &SnapshotOrchestrator{
		metadata:    metadata,
		acquisition: acquisition,
		compressor:  compressor,
		persistence: persistence,
		resolver:    config.Resolver,
		logger:      interfaces.OrNoOp(config.Logger),
		now:         config.Now,
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// SnapshotRequest describes one repository snapshot
type SnapshotRequest struct {
	Org      string
	Repo     string
	Branch   string
	ScanPath string
	Registry entities.RegistryCredentials
	Target   services.RemoteTarget
}

// SnapshotResult contains the outcome of a snapshot
type SnapshotResult struct {
	Report           *entities.SBOMReport
	Components       int
	LocalPath        string
	RemoteKey        string
	WorkflowDuration time.Duration
}

// Run executes the snapshot workflow: metadata, acquisition, languages,
// compression, then local and remote persistence
func (o *SnapshotOrchestrator) Run(ctx context.Context, req SnapshotRequest) (*SnapshotResult, error) {
	startTime := time.Now()
	runDate := o.now().UTC()
	result := &SnapshotResult{}

	// Step 1: Repository metadata
	metadata, err := o.metadata.Collect(ctx, req.Org, req.Repo, req.Branch)
	if err != nil {
		return nil, fmt.Errorf("metadata collection failed: %w", err)
	}

	// Step 2: SBOM acquisition, with the container fallback when needed
	creds := o.resolveRegistry(ctx, req.Registry)
	components, err := o.acquisition.AcquireSBOM(ctx, req.ScanPath, creds)
	if err != nil {
		return nil, fmt.Errorf("SBOM acquisition failed: %w", err)
	}
	result.Components = len(components)

	// Step 3: Languages
	languages, err := o.metadata.Languages(ctx, req.Org, req.Repo)
	if err != nil {
		o.logger.Warn("Could not read languages, continuing without them", interfaces.F("error", err))
		languages = entities.Languages{}
	}

	// Step 4: Normalize
	result.Report = o.compressor.Compress(req.Repo, *metadata, languages, components)

	// Step 5: Persist locally, then remotely
	result.LocalPath, err = o.persistence.PersistLocal(req.Repo, runDate, result.Report)
	if err != nil {
		return nil, fmt.Errorf("local persistence failed: %w", err)
	}

	result.RemoteKey, err = o.persistence.PersistRemote(ctx, req.Repo, runDate, result.Report, req.Target)
	if err != nil {
		return nil, fmt.Errorf("remote persistence failed: %w", err)
	}

	result.WorkflowDuration = time.Since(startTime)
	o.logger.Info("Snapshot complete",
		interfaces.F("repo", req.Repo),
		interfaces.F("packages", len(result.Report.Packages)),
		interfaces.F("key", result.RemoteKey),
		interfaces.F("duration", result.WorkflowDuration))

	return result, nil
}

// Scan runs the acquisition step alone
func (o *SnapshotOrchestrator) Scan(ctx context.Context, path string, registry entities.RegistryCredentials) ([]entities.Component, error) {
	components, err := o.acquisition.AcquireSBOM(ctx, path, o.resolveRegistry(ctx, registry))
	if err != nil {
		return nil, fmt.Errorf("SBOM acquisition failed: %w", err)
	}
	return components, nil
}

// resolveRegistry fills in a missing registry password through the resolver.
// Resolution failures are logged and the original credentials are kept.
func (o *SnapshotOrchestrator) resolveRegistry(ctx context.Context, creds entities.RegistryCredentials) entities.RegistryCredentials {
	if creds.Password != "" || creds.Registry == "" || o.resolver == nil {
		return creds
	}

	resolved, err := o.resolver.RegistryCredentials(ctx, creds.Registry)
	if err != nil {
		o.logger.Warn("Could not resolve registry credentials", interfaces.F("registry", creds.Registry), interfaces.F("error", err))
		return creds
	}

	o.logger.Debug("Registry credentials resolved", interfaces.F("registry", resolved.Registry))
	return *resolved
}

// GetSnapshotSummary generates a human-readable summary
func (o *SnapshotOrchestrator) GetSnapshotSummary(result *SnapshotResult) string {
	summary := fmt.Sprintf("Snapshot of %s\n", result.Report.Repo)
	summary += fmt.Sprintf("   Age: %.1f months, commit rate: %.2f\n", result.Report.Metadata.Age, result.Report.Metadata.CommitRate)
	summary += fmt.Sprintf("   Components: %d (packages: %d)\n", result.Components, len(result.Report.Packages))
	if most, ok := result.Report.Languages.MostUsed(); ok {
		summary += fmt.Sprintf("   Most used language: %s\n", most)
	}
	summary += fmt.Sprintf("   Local: %s\n", result.LocalPath)
	summary += fmt.Sprintf("   Remote: %s\n", result.RemoteKey)
	return summary
}
