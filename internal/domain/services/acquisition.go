// Package services implements domain business logic and use cases.
package services

import (
	"context"
	"fmt"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/services"
)

const (
	// MinimumComponents is the smallest direct scan accepted without fallback
	MinimumComponents = 10

	// DockerfilePattern selects the Dockerfile-like files used by the fallback
	DockerfilePattern = ".*Dockerfile.*"
)

// ScanVerdict tags the outcome of a direct scan
type ScanVerdict int

const (
	// Accepted means the direct scan is used as is
	Accepted ScanVerdict = iota
	// NeedsFallback means the direct scan saw too little and images must be scanned
	NeedsFallback
)

func (v ScanVerdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case NeedsFallback:
		return "needs-fallback"
	default:
		return fmt.Sprintf("ScanVerdict(%d)", int(v))
	}
}

// ScanDecision is the verdict on a direct scan together with its components
type ScanDecision struct {
	Verdict    ScanVerdict
	Components []entities.Component
}

// Decide accepts a direct scan with at least MinimumComponents components.
// Smaller results, including empty ones, need the container fallback.
func Decide(components []entities.Component) ScanDecision {
	return decide(components, MinimumComponents)
}

func decide(components []entities.Component, threshold int) ScanDecision {
	if len(components) > 0 && len(components) >= threshold {
		return ScanDecision{Verdict: Accepted, Components: components}
	}
	return ScanDecision{Verdict: NeedsFallback, Components: components}
}

// acquisitionService implements AcquisitionService
type acquisitionService struct {
	scanner   gateways.SBOMScanner
	builder   gateways.ContainerBuilder
	locator   gateways.FileLocator
	logger    interfaces.Logger
	threshold int
}

// NewAcquisitionService creates a new acquisition service with dependency injection
func NewAcquisitionService(
	scanner gateways.SBOMScanner,
	builder gateways.ContainerBuilder,
	locator gateways.FileLocator,
	logger interfaces.Logger,
) services.AcquisitionService {
	return &acquisitionService{
		scanner:   scanner,
		builder:   builder,
		locator:   locator,
		logger:    interfaces.OrNoOp(logger),
		threshold: MinimumComponents,
	}
}

// AcquireSBOM scans path directly and falls back to scanning images built from
// the Dockerfiles under path when the direct scan is insufficient.
func (s *acquisitionService) AcquireSBOM(ctx context.Context, path string, creds entities.RegistryCredentials) ([]entities.Component, error) {
	doc, err := s.scanner.Scan(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("direct scan failed: %w", err)
	}

	decision := decide(doc.Components, s.threshold)
	if decision.Verdict == Accepted {
		s.logger.Info("Direct scan accepted", interfaces.F("components", len(decision.Components)))
		return decision.Components, nil
	}

	s.logger.Info("Direct scan found too few components, scanning container images",
		interfaces.F("components", len(decision.Components)),
		interfaces.F("threshold", s.threshold))

	return s.scanImages(ctx, path, creds)
}

// scanImages builds every Dockerfile under path and concatenates the image scans.
// Build failures are skipped, a scan failure aborts.
func (s *acquisitionService) scanImages(ctx context.Context, path string, creds entities.RegistryCredentials) ([]entities.Component, error) {
	dockerfiles, err := s.locator.FindFiles(DockerfilePattern, path)
	if err != nil {
		return nil, fmt.Errorf("failed to locate Dockerfiles: %w", err)
	}

	components := []entities.Component{}
	if len(dockerfiles) == 0 {
		s.logger.Warn("No Dockerfiles found for container fallback", interfaces.F("path", path))
		return components, nil
	}

	s.login(ctx, creds)

	var images []entities.BuiltImage
	for i, dockerfile := range dockerfiles {
		image := entities.BuiltImage{Index: i, Dockerfile: dockerfile, Tag: entities.BuiltImageTag(i)}
		if err := s.builder.Build(ctx, path, dockerfile, image.Tag); err != nil {
			s.logger.Warn("Image build failed, skipping",
				interfaces.F("dockerfile", dockerfile),
				interfaces.F("error", err))
			continue
		}
		images = append(images, image)
	}

	for _, image := range images {
		doc, err := s.scanner.Scan(ctx, image.Tag)
		if err != nil {
			return nil, fmt.Errorf("image scan failed for %s: %w", image.Dockerfile, err)
		}
		components = append(components, doc.Components...)
	}

	s.logger.Info("Container fallback complete",
		interfaces.F("dockerfiles", len(dockerfiles)),
		interfaces.F("images", len(images)),
		interfaces.F("components", len(components)))

	return components, nil
}

// login is best-effort, failures are only logged
func (s *acquisitionService) login(ctx context.Context, creds entities.RegistryCredentials) {
	if creds.Registry == "" {
		s.logger.Debug("No registry configured, skipping login")
		return
	}
	if err := s.builder.Login(ctx, creds); err != nil {
		s.logger.Warn("Registry login failed", interfaces.F("registry", creds.Registry), interfaces.F("error", err))
	}
}
